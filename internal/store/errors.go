package store

import "errors"

var (
	// ErrEntityInUse is returned when a deletion would remove entities that
	// are still referenced by statement values.
	ErrEntityInUse = errors.New("entity is referenced by statement values")
	// ErrInvalidSpan is returned when a statement's start offset is not
	// strictly smaller than its stop offset.
	ErrInvalidSpan = errors.New("statement start must be smaller than stop")
	// ErrSelfParent is returned when an entity would become its own parent.
	ErrSelfParent = errors.New("entity cannot be its own parent")
	// ErrBuiltinStatementType is returned when a built-in statement type
	// would be modified or deleted.
	ErrBuiltinStatementType = errors.New("built-in statement types cannot be changed")
)
