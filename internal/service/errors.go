package service

import "errors"

var (
	// Registration field validation.
	ErrMissingFields = errors.New("name, email and address are required")

	// Auth failures.
	ErrUnknownEmail = errors.New("no account matches that email")
	ErrEmailTaken   = errors.New("an account with that email already exists")

	// Cart conflict: the candidate line belongs to a different restaurant than
	// the cart's current binding and needs explicit resolution.
	ErrCartConflict = errors.New("cart holds items from another restaurant")

	// Order placement preconditions.
	ErrNotLoggedIn = errors.New("no active user session")
	ErrEmptyCart   = errors.New("cart is empty")
)
