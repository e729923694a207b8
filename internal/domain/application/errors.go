package application

import "errors"

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrApplicationExists   = errors.New("an application already exists for this user")
	ErrNotPending          = errors.New("application is not in a pending state")
	ErrNotDraft            = errors.New("application has already been submitted")
	ErrNotApplicationOwner = errors.New("not authorized to access this application")
)
