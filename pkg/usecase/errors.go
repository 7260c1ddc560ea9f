package usecase

import "errors"

var (
	ErrUnauthorizedEnrollment = errors.New("email is not on the enrollment allow-list")
	ErrUnknownRunLabel        = errors.New("run label is not configured")
)
