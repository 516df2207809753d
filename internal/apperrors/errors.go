package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that a concurrent writer won the race for the same
// row: a guarded write affected zero rows even though the preceding read
// passed. Callers should retry with fresh data.
var ErrConflict = errors.New("conflicting concurrent update")

// ErrForbidden indicates the caller is authenticated but not allowed to
// perform the operation.
var ErrForbidden = errors.New("operation not allowed")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates an unexpected internal failure whose detail should
// not be exposed to the caller.
var ErrInternal = errors.New("internal error")
