package model

// Entity is a deduplicated short-text value scoped to a variable. At most
// one row exists per (variable, literal) pair, including the empty literal.
type Entity struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	VariableID int64  `gorm:"not null;uniqueIndex:idx_entities_variable_value;index"`
	Value      string `gorm:"not null;uniqueIndex:idx_entities_variable_value"`
	Red        int    `gorm:"not null;default:0"`
	Green      int    `gorm:"not null;default:0"`
	Blue       int    `gorm:"not null;default:0"`

	// ChildOf points at an optional parent entity of the same variable.
	// A row never references itself; cycles are prevented at write time.
	ChildOf *int64  `gorm:"index"`
	Parent  *Entity `gorm:"foreignKey:ChildOf;constraint:OnDelete:SET NULL"`

	// InUse and Attributes are resolved on read, not stored columns.
	InUse      bool              `gorm:"-"`
	Attributes map[string]string `gorm:"-"`
}

// AttributeVariable is a named attribute slot scoped to a variable, e.g.
// "Type", "Alias" and "Notes" on a person variable.
type AttributeVariable struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	VariableID int64     `gorm:"not null;uniqueIndex:idx_attribute_variables_name;index"`
	Name       string    `gorm:"not null;uniqueIndex:idx_attribute_variables_name"`
	Variable   *Variable `gorm:"foreignKey:VariableID;constraint:OnDelete:CASCADE"`
}

// AttributeValue stores one attribute of one entity. Every entity carries
// exactly one row per attribute variable of its variable; missing rows are
// backfilled with the empty string whenever the entity is touched.
type AttributeValue struct {
	ID                  int64              `gorm:"primaryKey;autoIncrement"`
	EntityID            int64              `gorm:"not null;uniqueIndex:idx_attribute_values_pair;index"`
	AttributeVariableID int64              `gorm:"not null;uniqueIndex:idx_attribute_values_pair;index"`
	Value               string             `gorm:"not null;default:''"`
	Entity              *Entity            `gorm:"foreignKey:EntityID;constraint:OnDelete:CASCADE"`
	AttributeVariable   *AttributeVariable `gorm:"foreignKey:AttributeVariableID;constraint:OnDelete:CASCADE"`
}
