package catalog

// Column order mirrors the DDL in internal/storage/schema.go.

func bounded(min, max int) (*int, *int) { return &min, &max }

var (
	privacyEnum = []string{PrivacyPublic, PrivacyPrivate}

	colID          = Column{Name: "id", Type: TypeInteger}
	colContent     = Column{Name: "content", Type: TypeText, NotNull: true}
	colKeywords    = Column{Name: "keywords", Type: TypeText, JSONList: true}
	colRefURLs     = Column{Name: "reference_urls", Type: TypeText, JSONList: true}
	colSourceApp   = Column{Name: "source_app", Type: TypeText}
	colCategoryID  = Column{Name: "category_id", Type: TypeInteger, ForeignKey: "category.id"}
	colPrivacy     = Column{Name: "privacy_level", Type: TypeText, Enum: privacyEnum}
	colCreatedTime = Column{Name: "created_time", Type: TypeTimestamp}
	colUpdatedTime = Column{Name: "updated_time", Type: TypeTimestamp}
)

func rangeColumn(name string, min, max int) Column {
	lo, hi := bounded(min, max)
	return Column{Name: name, Type: TypeInteger, Min: lo, Max: hi}
}

func enumColumn(name string, values ...string) Column {
	return Column{Name: name, Type: TypeText, Enum: values}
}

func text(name string) Column { return Column{Name: name, Type: TypeText} }

func date(name string) Column { return Column{Name: name, Type: TypeDate} }

var tables = []Table{
	{
		Name:        "persona",
		Description: "Personal Profile",
		Columns: []Column{
			colID,
			{Name: "name", Type: TypeText, NotNull: true},
			text("gender"),
			text("personality"),
			text("avatar_url"),
			text("bio"),
			colPrivacy,
			colCreatedTime,
			colUpdatedTime,
		},
	},
	{
		Name:        "category",
		Description: "Category System",
		Columns: []Column{
			colID,
			{Name: "first_level", Type: TypeText, NotNull: true},
			{Name: "second_level", Type: TypeText, NotNull: true},
			text("description"),
			{Name: "is_active", Type: TypeBoolean},
			colPrivacy,
			colCreatedTime,
			colUpdatedTime,
		},
	},
	{
		Name:        "relations",
		Description: "General Relations",
		Columns: []Column{
			colID,
			{Name: "source_table", Type: TypeText, NotNull: true},
			{Name: "source_id", Type: TypeInteger, NotNull: true},
			{Name: "target_table", Type: TypeText, NotNull: true},
			{Name: "target_id", Type: TypeInteger, NotNull: true},
			{Name: "relation_type", Type: TypeText, NotNull: true},
			enumColumn("strength", "strong", "medium", "weak"),
			text("note"),
			colPrivacy,
			colCreatedTime,
			colUpdatedTime,
		},
	},
	{
		Name:        "viewpoint",
		Description: "Viewpoints",
		Content:     true,
		Columns: []Column{
			colID,
			colContent,
			text("source_people"),
			colKeywords,
			colSourceApp,
			text("related_event"),
			colRefURLs,
			colCategoryID,
			colPrivacy,
			colCreatedTime,
			colUpdatedTime,
		},
	},
	{
		Name:        "insight",
		Description: "Insights",
		Content:     true,
		Columns: []Column{
			colID,
			colContent,
			text("source_people"),
			colKeywords,
			colSourceApp,
			colCategoryID,
			colRefURLs,
			colPrivacy,
			colCreatedTime,
			colUpdatedTime,
		},
	},
	{
		Name:        "focus",
		Description: "Focus Points",
		Content:     true,
		Columns: []Column{
			colID,
			colContent,
			rangeColumn("priority", 1, 10),
			enumColumn("status", "active", "paused", "completed"),
			text("context"),
			colKeywords,
			colSourceApp,
			colCategoryID,
			date("deadline"),
			colPrivacy,
			colCreatedTime,
			colUpdatedTime,
		},
	},
	{
		Name:        "goal",
		Description: "Goals",
		Content:     true,
		Columns: []Column{
			colID,
			colContent,
			enumColumn("type", "long_term", "short_term", "plan", "todo"),
			date("deadline"),
			enumColumn("status", "planning", "in_progress", "completed", "abandoned"),
			colKeywords,
			colSourceApp,
			colCategoryID,
			colPrivacy,
			colCreatedTime,
			colUpdatedTime,
		},
	},
	{
		Name:        "preference",
		Description: "Preferences",
		Content:     true,
		Columns: []Column{
			colID,
			colContent,
			text("context"),
			colKeywords,
			colSourceApp,
			colCategoryID,
			colPrivacy,
			colCreatedTime,
			colUpdatedTime,
		},
	},
	{
		Name:        "methodology",
		Description: "Methodologies",
		Content:     true,
		Columns: []Column{
			colID,
			colContent,
			text("type"),
			enumColumn("effectiveness", "proven", "experimental", "theoretical"),
			text("use_cases"),
			colKeywords,
			colSourceApp,
			colRefURLs,
			colCategoryID,
			colPrivacy,
			colCreatedTime,
			colUpdatedTime,
		},
	},
	{
		Name:        "prediction",
		Description: "Predictions",
		Content:     true,
		Columns: []Column{
			colID,
			colContent,
			text("timeframe"),
			text("basis"),
			enumColumn("verification_status", "pending", "correct", "incorrect", "partial"),
			colKeywords,
			colSourceApp,
			colRefURLs,
			colCategoryID,
			colPrivacy,
			colCreatedTime,
			colUpdatedTime,
		},
	},
	{
		Name:        "memory",
		Description: "Memories",
		Content:     true,
		Columns: []Column{
			colID,
			colContent,
			enumColumn("memory_type", "experience", "event", "learning", "interaction", "achievement", "mistake"),
			rangeColumn("importance", 1, 10),
			text("related_people"),
			text("location"),
			date("memory_date"),
			colKeywords,
			colSourceApp,
			colRefURLs,
			colCategoryID,
			colPrivacy,
			colCreatedTime,
			colUpdatedTime,
		},
	},
}
