package hive

import "fmt"

// ArgumentError reports an invalid request shape: a type override naming a
// column that is not part of the import, or a partition key colliding with
// an imported column.
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string {
	return e.Msg
}

// UnsupportedTypeError reports a source column whose type has no Hive
// mapping, explicit or inferred.
type UnsupportedTypeError struct {
	Column string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("Hive does not support the SQL type for column %s", e.Column)
}

// DelimiterRangeError reports a delimiter code outside the range Hive can
// express in its octal escape syntax.
type DelimiterRangeError struct {
	Code int
}

func (e *DelimiterRangeError) Error() string {
	return fmt.Sprintf("character %d is an out-of-range delimiter", e.Code)
}

// ResolutionError reports a failure of the filesystem path-qualification
// collaborator. The underlying cause is preserved, not reinterpreted.
type ResolutionError struct {
	Path string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("qualifying path %s: %v", e.Path, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
