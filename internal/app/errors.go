package app

import "errors"

// Sentinel errors for common application errors
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrListingExists   = errors.New("a listing with this URL already exists")
	ErrNoProfile       = errors.New("no student profile; run 'internly profile set' first")
)
