// Package common defines sentinel errors shared across the storekeeper
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Record store errors.
	ErrUnsupportedContainerKind = errors.New("unsupported container kind")
	ErrUnsupportedFormat        = errors.New("unsupported container format")
	ErrHeaderMismatch           = errors.New("container header mismatch")

	// Data faults: a persisted row that cannot be decoded into its entity.
	ErrMalformedRecord = errors.New("malformed record")

	// Reporting conditions. These are expected states, not failures.
	ErrNoDataForBranch  = errors.New("no sales data for branch")
	ErrNoDataForProduct = errors.New("no sales data for product")

	// Referential faults between sales and branches.
	ErrUnknownBranchReference = errors.New("sale references unknown branch")

	// Command dispatch errors.
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidAmount  = errors.New("amount must be a positive integer")

	// Auth errors.
	ErrorUnauthorized = errors.New("unauthorized")
)
