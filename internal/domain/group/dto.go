package group

import (
	"time"

	"github.com/communityroots/volunteer-backend-go/internal/pkg/validator"
)

type CreateGroupRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (r *CreateGroupRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AddMemberRequest struct {
	GroupID string `json:"-"`
	UserID  string `json:"user_id"`
	Role    string `json:"role"`
}

func (r *AddMemberRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.GroupID) {
		errs = append(errs, validator.ValidationError{
			Field:   "group_id",
			Message: "group id is required",
		})
	}
	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if validator.IsEmpty(r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role is required",
		})
	} else if !validator.IsInSlice(r.Role, []string{string(MemberRoleAdmin), string(MemberRoleMember)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be admin or member",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type GroupResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	MemberCount int64   `json:"member_count"`
	CreatedAt   string  `json:"created_at"`
}

func ToResponse(g Group) GroupResponse {
	resp := GroupResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		CreatedAt:   g.CreatedAt.Format(time.RFC3339),
	}
	if g.MemberCount != nil {
		resp.MemberCount = *g.MemberCount
	}
	return resp
}

type MembershipResponse struct {
	ID          string  `json:"id"`
	GroupID     string  `json:"group_id"`
	UserID      string  `json:"user_id"`
	Role        string  `json:"role"`
	MemberName  *string `json:"member_name,omitempty"`
	MemberEmail *string `json:"member_email,omitempty"`
}

func ToMembershipResponse(m Membership) MembershipResponse {
	return MembershipResponse{
		ID:          m.ID,
		GroupID:     m.GroupID,
		UserID:      m.UserID,
		Role:        string(m.Role),
		MemberName:  m.MemberName,
		MemberEmail: m.MemberEmail,
	}
}
