package domain

import "errors"

// ErrTransactionNotFound is returned when a transaction id is unknown.
var ErrTransactionNotFound = errors.New("transaction not found")

// ErrProjectNotFound is returned when a referenced project id is unknown.
var ErrProjectNotFound = errors.New("project not found")

// ErrCategoryNotFound is returned when a category id is unknown.
var ErrCategoryNotFound = errors.New("category not found")

// ErrAllocationTarget is returned when an allocation entry names neither
// a project nor a client.
var ErrAllocationTarget = errors.New("allocation must reference a project or a client")

// ErrAllocationEmpty is returned when an allocation entry carries neither
// a percentage nor an amount and the single-entry shorthand does not apply.
var ErrAllocationEmpty = errors.New("allocation needs a percentage or an amount")

// ErrAllocationInconsistent is returned when a stated amount does not
// reconcile with the stated percentage within a cent.
var ErrAllocationInconsistent = errors.New("allocation percentage and amount disagree")

// ErrAllocationPercentageSum is returned when the percentages of a
// proposed allocation set do not sum to 100 within 0.01.
var ErrAllocationPercentageSum = errors.New("allocation percentages must sum to 100")

// ErrSystemCategory is returned on an attempt to delete a system category.
var ErrSystemCategory = errors.New("system categories cannot be deleted")
