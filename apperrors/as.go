package apperrors

import stderrors "errors"

// As is errors.As re-exported so callers importing this package don't need
// both.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Is is errors.Is re-exported.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}
