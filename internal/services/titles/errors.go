package titles

import "errors"

var (
	ErrTitleNotFound    = errors.New("title not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrGenreNotFound    = errors.New("genre not found")
	ErrYearInFuture     = errors.New("year must not be greater than the current year")
	ErrSlugAlreadyTaken = errors.New("slug is already taken")
)
