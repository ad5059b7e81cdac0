package circuit

import "errors"

var (
	// ErrUnassignedCell is returned when reading a cell that holds no value.
	ErrUnassignedCell = errors.New("cell not assigned")
	// ErrRowOutOfRange is returned when an assignment or query falls outside
	// the 2^k grid rows.
	ErrRowOutOfRange = errors.New("row out of range")
	// ErrColumnNotPermuted is returned when an equality constraint is
	// requested on a column that EnableEquality was never called on.
	ErrColumnNotPermuted = errors.New("column not enabled for equality")
	// ErrShadowing is returned when a cell is re-assigned a different value.
	ErrShadowing = errors.New("cell already assigned a different value")
	// ErrTableNotLoaded is returned when a lookup references a table column
	// with missing rows.
	ErrTableNotLoaded = errors.New("table not fully loaded")
	// ErrNoConstantColumn is returned by constant loading when no fixed
	// column was designated with EnableConstant.
	ErrNoConstantColumn = errors.New("no fixed column enabled for constants")
)
