package reviews

import "errors"

var (
	ErrTitleNotFound       = errors.New("title not found")
	ErrReviewNotFound      = errors.New("review not found")
	ErrCommentNotFound     = errors.New("comment not found")
	ErrReviewAlreadyExists = errors.New("review already exists")
)
