package storerrors

import "errors"

var (
	ErrBookNotFound   = errors.New("book does not exist")
	ErrAuthorNotFound = errors.New("author does not exist")
)
