package hourlog

import "errors"

var (
	ErrEntryNotFound   = errors.New("hour log entry not found")
	ErrAlreadyApproved = errors.New("hour log entry has already been approved")
	ErrNotGroupMember  = errors.New("not a member of the referenced group")
)
