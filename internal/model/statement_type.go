package model

// Labels of the statement types seeded at schema creation. Built-in types
// cannot be edited or deleted.
const (
	BuiltinStatementLabel  = "Statement"
	BuiltinAnnotationLabel = "Annotation"
)

// StatementType defines a category of statements together with the ordered
// set of variables a statement of that type carries.
type StatementType struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Label string `gorm:"not null;unique"`
	Red   int    `gorm:"not null;default:0"`
	Green int    `gorm:"not null;default:0"`
	Blue  int    `gorm:"not null;default:0"`

	Variables []Variable `gorm:"foreignKey:StatementTypeID;constraint:OnDelete:CASCADE"`
}

// IsBuiltin reports whether the type is one of the seeded built-ins.
func (s *StatementType) IsBuiltin() bool {
	return s.Label == BuiltinStatementLabel || s.Label == BuiltinAnnotationLabel
}

// Variable is a named, typed field on a statement type.
type Variable struct {
	ID              int64    `gorm:"primaryKey;autoIncrement"`
	Name            string   `gorm:"not null;uniqueIndex:idx_variables_type_name"`
	DataType        DataType `gorm:"not null"`
	StatementTypeID int64    `gorm:"not null;uniqueIndex:idx_variables_type_name;index"`
}

// VariableLink is a directed link between two variables, used to express
// that entities of the source variable relate to entities of the target.
type VariableLink struct {
	ID               int64     `gorm:"primaryKey;autoIncrement"`
	SourceVariableID int64     `gorm:"not null;index"`
	TargetVariableID int64     `gorm:"not null;index"`
	SourceVariable   *Variable `gorm:"foreignKey:SourceVariableID;constraint:OnDelete:CASCADE"`
	TargetVariable   *Variable `gorm:"foreignKey:TargetVariableID;constraint:OnDelete:CASCADE"`
}

// Regex is a highlighter term: any text matching Label is tinted with the
// given color in the document view.
type Regex struct {
	Label string `gorm:"primaryKey"`
	Red   int    `gorm:"not null;default:0"`
	Green int    `gorm:"not null;default:0"`
	Blue  int    `gorm:"not null;default:0"`
}

// Setting is a free-form string key/value pair, used for schema version and
// application defaults.
type Setting struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}
