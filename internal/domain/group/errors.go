package group

import "errors"

var (
	ErrGroupNotFound      = errors.New("group not found")
	ErrGroupNameExists    = errors.New("a group with this name already exists")
	ErrAlreadyMember      = errors.New("user is already a member of this group")
	ErrMembershipNotFound = errors.New("user is not a member of this group")
	ErrNotGroupAdmin      = errors.New("group admin access required")
)
