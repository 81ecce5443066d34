package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrCategoryInUse indicates that a category cannot be deleted because active
// transactions still reference it. There is no cascade for categories.
var ErrCategoryInUse = errors.New("category is referenced by active transactions")

// ErrCascadeRequired indicates that an account delete would orphan active
// transactions and the caller has not confirmed the cascade.
var ErrCascadeRequired = errors.New("account has transactions, cascade confirmation required")

// ErrConfirmationRequired indicates that a destructive operation was requested
// without the explicit confirmation it needs.
var ErrConfirmationRequired = errors.New("explicit confirmation required")

// ErrNothingToExport indicates that an export was requested with no active
// transactions to write.
var ErrNothingToExport = errors.New("no transactions to export")
