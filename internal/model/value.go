package model

// DataType enumerates the four value kinds a variable can hold. Each kind
// maps to its own per-type data table.
type DataType string

const (
	DataTypeBoolean   DataType = "boolean"
	DataTypeInteger   DataType = "integer"
	DataTypeLongText  DataType = "long text"
	DataTypeShortText DataType = "short text"
)

// Value is the closed union of statement value variants. Exactly one variant
// exists per data table; there is no string dispatch on the payload itself.
type Value interface {
	DataType() DataType
	isValue()
}

// BoolValue maps to the data_boolean table.
type BoolValue struct {
	V bool
}

func (BoolValue) DataType() DataType { return DataTypeBoolean }
func (BoolValue) isValue()           {}

// IntValue maps to the data_integer table.
type IntValue struct {
	V int
}

func (IntValue) DataType() DataType { return DataTypeInteger }
func (IntValue) isValue()           {}

// LongTextValue maps to the data_long_text table. Long text is stored
// verbatim per statement, never deduplicated.
type LongTextValue struct {
	V string
}

func (LongTextValue) DataType() DataType { return DataTypeLongText }
func (LongTextValue) isValue()           {}

// EntityRef maps to the data_short_text table. Short text is stored as a
// reference into the shared entity dictionary; the embedded entity is the
// resolved row, including its attribute map when read back.
type EntityRef struct {
	Entity Entity
}

func (EntityRef) DataType() DataType { return DataTypeShortText }
func (EntityRef) isValue()           {}

// Literal returns the short-text literal of the referenced entity.
func (e EntityRef) Literal() string { return e.Entity.Value }

// VariableValue pairs a variable with the value a statement holds for it.
type VariableValue struct {
	VariableID int64
	Name       string
	Value      Value
}
