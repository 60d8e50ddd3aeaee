package domain

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrProjectNotFound     = errors.New("project not found")
	ErrDuplicateUser       = errors.New("user with this id already exists")
	ErrInsufficientCredits = errors.New("insufficient credits")
)
