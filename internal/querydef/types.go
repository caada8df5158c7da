package querydef

// File is the top level of a definition file.
type File struct {
	Query Definition `json:"query" yaml:"query"`
}

// Definition describes one select or insert statement. Exactly one of
// Select and Insert is set.
type Definition struct {
	Tables map[string]TableDef `json:"tables" yaml:"tables"`
	Select *SelectDef          `json:"select,omitempty" yaml:"select,omitempty"`
	Insert *InsertDef          `json:"insert,omitempty" yaml:"insert,omitempty"`
}

// TableDef declares a table under a key used by field references.
type TableDef struct {
	Name   string   `json:"name" yaml:"name"`
	Fields []string `json:"fields" yaml:"fields"`
}

// SelectDef describes a select statement. Field references are written
// "<tableKey>.<field>".
type SelectDef struct {
	From    []FromDef      `json:"from" yaml:"from"`
	Project []string       `json:"project,omitempty" yaml:"project,omitempty"` // table keys; all declared fields
	Fields  []string       `json:"fields,omitempty" yaml:"fields,omitempty"`
	Where   []PredicateDef `json:"where,omitempty" yaml:"where,omitempty"`
	OrderBy []string       `json:"orderBy,omitempty" yaml:"orderBy,omitempty"`
}

// FromDef is one FROM entry: a table optionally followed by joins.
type FromDef struct {
	Table string    `json:"table" yaml:"table"`
	Joins []JoinDef `json:"joins,omitempty" yaml:"joins,omitempty"`
}

// JoinDef joins a table onto the entry built so far.
type JoinDef struct {
	Type  string        `json:"type,omitempty" yaml:"type,omitempty"` // left (default) | inner
	Table string        `json:"table" yaml:"table"`
	On    *PredicateDef `json:"on,omitempty" yaml:"on,omitempty"`
}

// PredicateDef sets exactly one of its fields.
type PredicateDef struct {
	Equals     []OperandDef   `json:"equals,omitempty" yaml:"equals,omitempty"`
	LessThan   []OperandDef   `json:"lessThan,omitempty" yaml:"lessThan,omitempty"`
	Like       *MatchDef      `json:"like,omitempty" yaml:"like,omitempty"`
	StartsWith *MatchDef      `json:"startsWith,omitempty" yaml:"startsWith,omitempty"`
	IsNull     string         `json:"isNull,omitempty" yaml:"isNull,omitempty"`
	FullText   *FullTextDef   `json:"fullText,omitempty" yaml:"fullText,omitempty"`
	And        []PredicateDef `json:"and,omitempty" yaml:"and,omitempty"`
	Or         []PredicateDef `json:"or,omitempty" yaml:"or,omitempty"`
}

// MatchDef is the operand of like and startsWith.
type MatchDef struct {
	Field string `json:"field" yaml:"field"`
	Text  string `json:"text" yaml:"text"`
}

// FullTextDef is the operand of fullText.
type FullTextDef struct {
	Text   string   `json:"text" yaml:"text"`
	Fields []string `json:"fields" yaml:"fields"`
}

// OperandDef sets exactly one of its fields. Decimal, DateTime (RFC 3339)
// and GUID are written as strings.
type OperandDef struct {
	Field    string  `json:"field,omitempty" yaml:"field,omitempty"`
	Int      *int32  `json:"int,omitempty" yaml:"int,omitempty"`
	Long     *int64  `json:"long,omitempty" yaml:"long,omitempty"`
	Bool     *bool   `json:"bool,omitempty" yaml:"bool,omitempty"`
	String   *string `json:"string,omitempty" yaml:"string,omitempty"`
	Decimal  string  `json:"decimal,omitempty" yaml:"decimal,omitempty"`
	DateTime string  `json:"dateTime,omitempty" yaml:"dateTime,omitempty"`
	GUID     string  `json:"guid,omitempty" yaml:"guid,omitempty"`
	NullOf   string  `json:"nullOf,omitempty" yaml:"nullOf,omitempty"`
}

// InsertDef describes an insert statement. Table is a table key or, when
// no such key exists, a literal table name.
type InsertDef struct {
	Table  string           `json:"table" yaml:"table"`
	Values []InsertValueDef `json:"values" yaml:"values"`
}

// InsertValueDef is one inserted column.
type InsertValueDef struct {
	Field     string     `json:"field" yaml:"field"`
	Value     OperandDef `json:"value" yaml:"value"`
	MaxLength int        `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
}
