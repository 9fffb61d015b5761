package services

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already exists")
	ErrTestNotFound    = errors.New("test not found")
	ErrSportNotFound   = errors.New("sport not found")
)
