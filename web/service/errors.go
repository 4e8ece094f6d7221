package service

import "errors"

var (
	// ErrDuplicateUser marks a username or email unique-constraint violation.
	// The registration form reports it and never retries the insert.
	ErrDuplicateUser = errors.New("username or email already exists")

	// ErrInvalidPage rejects listing requests with page < 1.
	ErrInvalidPage = errors.New("page must be >= 1")
)
