package model

import "time"

// Statement is a coded annotation over a character span of a document.
// The span invariant start < stop is checked before any write.
type Statement struct {
	ID              int64          `gorm:"primaryKey;autoIncrement"`
	StatementTypeID int64          `gorm:"not null;index"`
	StatementType   *StatementType `gorm:"foreignKey:StatementTypeID;constraint:OnDelete:CASCADE"`
	DocumentID      int64          `gorm:"not null;index"`
	Document        *Document      `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE"`
	Start           int64          `gorm:"not null"`
	Stop            int64          `gorm:"not null"`
	CoderID         int64          `gorm:"not null;index"`
	Coder           *Coder         `gorm:"foreignKey:CoderID;constraint:OnDelete:CASCADE"`
}

// Valid reports whether the span invariant holds.
func (s *Statement) Valid() bool {
	return s.Start < s.Stop
}

// DataBoolean holds one boolean value of one statement.
type DataBoolean struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	StatementID int64      `gorm:"not null;uniqueIndex:idx_data_boolean_pair;index"`
	VariableID  int64      `gorm:"not null;uniqueIndex:idx_data_boolean_pair"`
	Statement   *Statement `gorm:"foreignKey:StatementID;constraint:OnDelete:CASCADE"`
	Variable    *Variable  `gorm:"foreignKey:VariableID;constraint:OnDelete:CASCADE"`
	Value       int        `gorm:"not null;default:1"` // 0 or 1
}

func (DataBoolean) TableName() string { return "data_boolean" }

// DataInteger holds one integer value of one statement.
type DataInteger struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	StatementID int64      `gorm:"not null;uniqueIndex:idx_data_integer_pair;index"`
	VariableID  int64      `gorm:"not null;uniqueIndex:idx_data_integer_pair"`
	Statement   *Statement `gorm:"foreignKey:StatementID;constraint:OnDelete:CASCADE"`
	Variable    *Variable  `gorm:"foreignKey:VariableID;constraint:OnDelete:CASCADE"`
	Value       int        `gorm:"not null;default:0"`
}

func (DataInteger) TableName() string { return "data_integer" }

// DataShortText references the entity dictionary instead of storing the
// literal, so equal literals share one entity row per variable.
type DataShortText struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	StatementID int64      `gorm:"not null;uniqueIndex:idx_data_short_text_pair;index"`
	VariableID  int64      `gorm:"not null;uniqueIndex:idx_data_short_text_pair"`
	EntityID    int64      `gorm:"not null;index"`
	Statement   *Statement `gorm:"foreignKey:StatementID;constraint:OnDelete:CASCADE"`
	Variable    *Variable  `gorm:"foreignKey:VariableID;constraint:OnDelete:CASCADE"`
	Entity      *Entity    `gorm:"foreignKey:EntityID"`
}

func (DataShortText) TableName() string { return "data_short_text" }

// DataLongText holds one free-text value of one statement, not deduplicated.
type DataLongText struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	StatementID int64      `gorm:"not null;uniqueIndex:idx_data_long_text_pair;index"`
	VariableID  int64      `gorm:"not null;uniqueIndex:idx_data_long_text_pair"`
	Statement   *Statement `gorm:"foreignKey:StatementID;constraint:OnDelete:CASCADE"`
	Variable    *Variable  `gorm:"foreignKey:VariableID;constraint:OnDelete:CASCADE"`
	Value       string     `gorm:"not null;default:''"`
}

func (DataLongText) TableName() string { return "data_long_text" }

// FullStatement is a statement assembled for display: the row itself, the
// joined type and coder info, and one value per variable of its type.
type FullStatement struct {
	Statement

	TypeLabel    string
	TypeRed      int
	TypeGreen    int
	TypeBlue     int
	CoderName    string
	CoderRed     int
	CoderGreen   int
	CoderBlue    int
	DocumentDate time.Time

	Values []VariableValue
}

// Value returns the value stored for the named variable, or nil.
func (f *FullStatement) Value(name string) Value {
	for _, v := range f.Values {
		if v.Name == name {
			return v.Value
		}
	}
	return nil
}
