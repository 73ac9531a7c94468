package database

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrEmailTaken           = errors.New("email already registered")
	ErrDuplicateTransaction = errors.New("transaction already recorded")
)

// pq unique_violation
const codeUniqueViolation = "23505"
