package domain

import "errors"

var (
	// ErrDuplicate means an article with the same URL hash already exists.
	// Duplicates are an expected outcome of every run, not a failure.
	ErrDuplicate = errors.New("article already exists")
	// ErrNotFound means the requested article is absent from storage.
	ErrNotFound = errors.New("article not found")
)
