package vcs

import "errors"

var (
	ErrMessageRequired = errors.New("message is required")
	ErrTitleRequired   = errors.New("title is required")
)
