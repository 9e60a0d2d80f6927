package models

// Record is one row in its semantic form: column name to value, with list
// columns decoded to []string.
type Record map[string]any

// QueryResult is one page of a filtered query.
type QueryResult struct {
	Records    []Record `json:"records"`
	TotalCount int64    `json:"total_count"`
	Limit      int      `json:"limit"`
	Offset     int      `json:"offset"`
}

// Category is an active entry of the two-level category tree.
type Category struct {
	ID          int64  `json:"id"`
	FirstLevel  string `json:"first_level"`
	SecondLevel string `json:"second_level"`
	Description string `json:"description,omitempty"`
}

// RelationInput describes a new edge between two records.
type RelationInput struct {
	SourceTable  string `json:"source_table"`
	SourceID     int64  `json:"source_id"`
	TargetTable  string `json:"target_table"`
	TargetID     int64  `json:"target_id"`
	RelationType string `json:"relation_type"`
	Strength     string `json:"strength,omitempty"`
	Note         string `json:"note,omitempty"`
}

// Relation is a stored edge.
type Relation struct {
	ID           int64  `json:"id"`
	SourceTable  string `json:"source_table"`
	SourceID     int64  `json:"source_id"`
	TargetTable  string `json:"target_table"`
	TargetID     int64  `json:"target_id"`
	RelationType string `json:"relation_type"`
	Strength     string `json:"strength"`
	Note         string `json:"note,omitempty"`
	CreatedTime  string `json:"created_time"`
}

// ColumnInfo is one row of PRAGMA table_info.
type ColumnInfo struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	NotNull      bool    `json:"not_null"`
	DefaultValue *string `json:"default_value"`
	PrimaryKey   bool    `json:"primary_key"`
}

type TableSchema struct {
	Table       string       `json:"table"`
	Description string       `json:"description"`
	Columns     []ColumnInfo `json:"columns"`
}

// SQLResult is the outcome of a statement run through the custom SQL escape
// hatch. Rows is set only for fetching statements.
type SQLResult struct {
	Rows         []Record `json:"rows,omitempty"`
	Count        int      `json:"count"`
	RowsAffected int64    `json:"rows_affected"`
	LastInsertID int64    `json:"last_insert_id,omitempty"`
}
