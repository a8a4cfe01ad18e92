package apperrors

import "errors"

// ErrNotFound indicates that a requested resource (account, transaction, loan)
// could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks,
// e.g. a non-positive amount.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientFunds indicates a debit that would take an account balance below zero.
// The offending transaction is still persisted in FAILED state; the balance is untouched.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrAlreadyProcessed indicates an attempt to process a transaction that is
// already in a terminal state. Balances are never applied twice.
var ErrAlreadyProcessed = errors.New("transaction already processed")

// ErrInvalidOperation indicates an operation that is structurally forbidden,
// e.g. refunding a charge or deleting a transaction that has moved money.
var ErrInvalidOperation = errors.New("invalid operation")

// ErrUnknownStrategy indicates an unrecognized charge strategy type on a chargeable.
// No partial charge is applied.
var ErrUnknownStrategy = errors.New("unknown charge strategy")
