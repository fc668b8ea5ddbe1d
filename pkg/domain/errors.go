package domain

import "errors"

var (
	// ErrStudentNotFound is returned when a balance reconciliation targets a
	// student that does not exist. Callers are expected to log and continue;
	// the payment record itself still persists.
	ErrStudentNotFound = errors.New("student not found")

	// ErrPaymentNotFound is returned when a payment operation references a
	// payment id that does not exist.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrExpenseNotFound is returned when an expense operation references an
	// expense id that does not exist.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrUnknownAccount indicates an allocation was requested for an account
	// with no configured percentage table. The allocation engine treats this
	// as an empty allocation, not a hard failure.
	ErrUnknownAccount = errors.New("unknown receipt-book account")

	// ErrAllocationSumMismatch indicates a payment's stored allocation
	// amounts do not sum to the payment amount within tolerance. Surfaced
	// during validation only; production paths stay permissive.
	ErrAllocationSumMismatch = errors.New("allocation amounts do not sum to payment amount")

	// ErrCeilingExceeded indicates a payment amount is above the receipt
	// book's configured maximum.
	ErrCeilingExceeded = errors.New("payment exceeds receipt-book ceiling")
)
