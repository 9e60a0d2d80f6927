package storage

// Schema creates the eleven profile tables. Column order matches
// internal/catalog so that SELECT lists and PRAGMA table_info agree.
const Schema = `
CREATE TABLE IF NOT EXISTS persona (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    name          TEXT NOT NULL,
    gender        TEXT,
    personality   TEXT,
    avatar_url    TEXT,
    bio           TEXT,
    privacy_level TEXT CHECK(privacy_level IN ('public', 'private')) DEFAULT 'public',
    created_time  TIMESTAMP,
    updated_time  TIMESTAMP
);

CREATE TABLE IF NOT EXISTS category (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    first_level   TEXT NOT NULL,
    second_level  TEXT NOT NULL,
    description   TEXT,
    is_active     BOOLEAN DEFAULT true,
    privacy_level TEXT CHECK(privacy_level IN ('public', 'private')) DEFAULT 'public',
    created_time  TIMESTAMP,
    updated_time  TIMESTAMP
);

CREATE TABLE IF NOT EXISTS relations (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    source_table  TEXT NOT NULL,
    source_id     INTEGER NOT NULL,
    target_table  TEXT NOT NULL,
    target_id     INTEGER NOT NULL,
    relation_type TEXT NOT NULL,
    strength      TEXT CHECK(strength IN ('strong', 'medium', 'weak')),
    note          TEXT,
    privacy_level TEXT CHECK(privacy_level IN ('public', 'private')) DEFAULT 'public',
    created_time  TIMESTAMP,
    updated_time  TIMESTAMP
);

CREATE TABLE IF NOT EXISTS viewpoint (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    content        TEXT NOT NULL,
    source_people  TEXT,
    keywords       TEXT,
    source_app     TEXT DEFAULT 'unknown',
    related_event  TEXT,
    reference_urls TEXT,
    category_id    INTEGER REFERENCES category(id),
    privacy_level  TEXT CHECK(privacy_level IN ('public', 'private')) DEFAULT 'public',
    created_time   TIMESTAMP,
    updated_time   TIMESTAMP
);

CREATE TABLE IF NOT EXISTS insight (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    content        TEXT NOT NULL,
    source_people  TEXT,
    keywords       TEXT,
    source_app     TEXT DEFAULT 'unknown',
    category_id    INTEGER REFERENCES category(id),
    reference_urls TEXT,
    privacy_level  TEXT CHECK(privacy_level IN ('public', 'private')) DEFAULT 'public',
    created_time   TIMESTAMP,
    updated_time   TIMESTAMP
);

CREATE TABLE IF NOT EXISTS focus (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    content       TEXT NOT NULL,
    priority      INTEGER CHECK(priority >= 1 AND priority <= 10),
    status        TEXT CHECK(status IN ('active', 'paused', 'completed')),
    context       TEXT,
    keywords      TEXT,
    source_app    TEXT DEFAULT 'unknown',
    category_id   INTEGER REFERENCES category(id),
    deadline      DATE,
    privacy_level TEXT CHECK(privacy_level IN ('public', 'private')) DEFAULT 'public',
    created_time  TIMESTAMP,
    updated_time  TIMESTAMP
);

CREATE TABLE IF NOT EXISTS goal (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    content       TEXT NOT NULL,
    type          TEXT CHECK(type IN ('long_term', 'short_term', 'plan', 'todo')),
    deadline      DATE,
    status        TEXT CHECK(status IN ('planning', 'in_progress', 'completed', 'abandoned')),
    keywords      TEXT,
    source_app    TEXT DEFAULT 'unknown',
    category_id   INTEGER REFERENCES category(id),
    privacy_level TEXT CHECK(privacy_level IN ('public', 'private')) DEFAULT 'public',
    created_time  TIMESTAMP,
    updated_time  TIMESTAMP
);

CREATE TABLE IF NOT EXISTS preference (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    content       TEXT NOT NULL,
    context       TEXT,
    keywords      TEXT,
    source_app    TEXT DEFAULT 'unknown',
    category_id   INTEGER REFERENCES category(id),
    privacy_level TEXT CHECK(privacy_level IN ('public', 'private')) DEFAULT 'public',
    created_time  TIMESTAMP,
    updated_time  TIMESTAMP
);

CREATE TABLE IF NOT EXISTS methodology (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    content        TEXT NOT NULL,
    type           TEXT,
    effectiveness  TEXT CHECK(effectiveness IN ('proven', 'experimental', 'theoretical')),
    use_cases      TEXT,
    keywords       TEXT,
    source_app     TEXT DEFAULT 'unknown',
    reference_urls TEXT,
    category_id    INTEGER REFERENCES category(id),
    privacy_level  TEXT CHECK(privacy_level IN ('public', 'private')) DEFAULT 'public',
    created_time   TIMESTAMP,
    updated_time   TIMESTAMP
);

CREATE TABLE IF NOT EXISTS prediction (
    id                  INTEGER PRIMARY KEY AUTOINCREMENT,
    content             TEXT NOT NULL,
    timeframe           TEXT,
    basis               TEXT,
    verification_status TEXT CHECK(verification_status IN ('pending', 'correct', 'incorrect', 'partial')),
    keywords            TEXT,
    source_app          TEXT DEFAULT 'unknown',
    reference_urls      TEXT,
    category_id         INTEGER REFERENCES category(id),
    privacy_level       TEXT CHECK(privacy_level IN ('public', 'private')) DEFAULT 'public',
    created_time        TIMESTAMP,
    updated_time        TIMESTAMP
);

CREATE TABLE IF NOT EXISTS memory (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    content        TEXT NOT NULL,
    memory_type    TEXT CHECK(memory_type IN ('experience', 'event', 'learning', 'interaction', 'achievement', 'mistake')),
    importance     INTEGER CHECK(importance >= 1 AND importance <= 10),
    related_people TEXT,
    location       TEXT,
    memory_date    DATE,
    keywords       TEXT,
    source_app     TEXT DEFAULT 'unknown',
    reference_urls TEXT,
    category_id    INTEGER REFERENCES category(id),
    privacy_level  TEXT CHECK(privacy_level IN ('public', 'private')) DEFAULT 'public',
    created_time   TIMESTAMP,
    updated_time   TIMESTAMP
);
`

// Indexes are kept apart from Schema so that an older file without some of
// them picks them up on the next open.
const Indexes = `
CREATE INDEX IF NOT EXISTS idx_persona_privacy ON persona(privacy_level);

CREATE INDEX IF NOT EXISTS idx_category_levels ON category(first_level, second_level);
CREATE INDEX IF NOT EXISTS idx_category_active ON category(is_active);

CREATE INDEX IF NOT EXISTS idx_relations_source ON relations(source_table, source_id);
CREATE INDEX IF NOT EXISTS idx_relations_target ON relations(target_table, target_id);
CREATE INDEX IF NOT EXISTS idx_relations_type ON relations(relation_type);

CREATE INDEX IF NOT EXISTS idx_viewpoint_source_people ON viewpoint(source_people);
CREATE INDEX IF NOT EXISTS idx_viewpoint_category ON viewpoint(category_id);
CREATE INDEX IF NOT EXISTS idx_viewpoint_time ON viewpoint(created_time);

CREATE INDEX IF NOT EXISTS idx_insight_category ON insight(category_id);
CREATE INDEX IF NOT EXISTS idx_insight_time ON insight(created_time);

CREATE INDEX IF NOT EXISTS idx_focus_priority ON focus(priority);
CREATE INDEX IF NOT EXISTS idx_focus_status ON focus(status);
CREATE INDEX IF NOT EXISTS idx_focus_deadline ON focus(deadline);

CREATE INDEX IF NOT EXISTS idx_goal_type ON goal(type);
CREATE INDEX IF NOT EXISTS idx_goal_status ON goal(status);
CREATE INDEX IF NOT EXISTS idx_goal_deadline ON goal(deadline);

CREATE INDEX IF NOT EXISTS idx_preference_category ON preference(category_id);

CREATE INDEX IF NOT EXISTS idx_methodology_type ON methodology(type);
CREATE INDEX IF NOT EXISTS idx_methodology_effectiveness ON methodology(effectiveness);

CREATE INDEX IF NOT EXISTS idx_prediction_timeframe ON prediction(timeframe);
CREATE INDEX IF NOT EXISTS idx_prediction_verification ON prediction(verification_status);

CREATE INDEX IF NOT EXISTS idx_memory_type ON memory(memory_type);
CREATE INDEX IF NOT EXISTS idx_memory_importance ON memory(importance);
CREATE INDEX IF NOT EXISTS idx_memory_date ON memory(memory_date);
CREATE INDEX IF NOT EXISTS idx_memory_category ON memory(category_id);
`

// pragmas is appended to the DSN; ncruces applies each on every new
// connection.
var pragmas = []string{
	"journal_mode(WAL)",
	"busy_timeout(5000)",
	"synchronous(NORMAL)",
	"foreign_keys(ON)",
	"cache_size(-64000)",
}

type seedCategory struct {
	first, second, description string
}

var defaultCategories = []seedCategory{
	{"Technology", "Programming Development", "Software development related technologies"},
	{"Technology", "System Architecture", "System design and architecture"},
	{"Life", "Interpersonal Relations", "Interpersonal communication and relationship management"},
	{"Life", "Health Management", "Physical and mental health"},
	{"Business", "Investment Finance", "Investment and financial management"},
	{"Business", "Entrepreneurship Management", "Entrepreneurship and enterprise management"},
	{"Learning", "Knowledge Management", "Knowledge acquisition and management"},
	{"Learning", "Skill Development", "Personal skill development"},
}
