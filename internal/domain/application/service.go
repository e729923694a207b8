package application

import "context"

// ApplicationService defines business logic for the intake approval gate
type ApplicationService interface {
	// SaveDraft creates or updates the caller's incomplete application
	SaveDraft(ctx context.Context, req SubmitApplicationRequest) (ApplicationResponse, error)

	// Submit validates the caller's draft and moves it to pending
	Submit(ctx context.Context, req SubmitApplicationRequest) (ApplicationResponse, error)

	// MyApplication returns the caller's own application
	MyApplication(ctx context.Context) (ApplicationResponse, error)

	// ListPending lists applications awaiting review (admin)
	ListPending(ctx context.Context) ([]ApplicationResponse, error)

	// GetApplication retrieves any application by ID (admin)
	GetApplication(ctx context.Context, id string) (ApplicationResponse, error)

	// Approve transitions pending -> approved, promotes the linked pending
	// user to volunteer and creates their profile, all in one transaction.
	// A notification is enqueued and delivered after commit.
	Approve(ctx context.Context, applicationID string) (ApplicationResponse, error)

	// Reject transitions pending -> rejected with an optional reason. The
	// user account is kept; the volunteer may re-apply.
	Reject(ctx context.Context, req RejectApplicationRequest) (ApplicationResponse, error)
}
