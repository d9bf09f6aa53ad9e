package service

import "errors"

var (
	ErrMissingUser   = errors.New("user is required")
	ErrMissingWord   = errors.New("word is required")
	ErrInvalidEvent  = errors.New("invalid event")
	ErrEmptyWordList = errors.New("word list is empty")
)
