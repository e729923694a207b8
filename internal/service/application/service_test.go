package application

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/communityroots/volunteer-backend-go/internal/domain/application"
	"github.com/communityroots/volunteer-backend-go/internal/domain/user"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/database"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/migrate"
	"github.com/communityroots/volunteer-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testApplicationDB *database.DB

func applicationTestInit(t *testing.T) {
	if testApplicationDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	var err error
	testApplicationDB, err = database.NewPostgreSQLDB(ctx, dsn)
	if err != nil {
		t.Skip("test database unavailable: " + err.Error())
	}
	require.NoError(t, migrate.Up(ctx, testApplicationDB))
}

func truncateApplicationTables(t *testing.T, ctx context.Context) {
	tables := []string{"notification_outbox", "profiles", "applications", "users"}
	for _, table := range tables {
		_, err := testApplicationDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createApplicationTestUser(t *testing.T, ctx context.Context, role user.Role) string {
	var userID string
	email := fmt.Sprintf("user-%d@example.com", time.Now().UnixNano())
	err := testApplicationDB.QueryRow(ctx, `
		INSERT INTO users (id, email, first_name, last_name, role, active, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, 'Test', 'User', $2, TRUE, NOW(), NOW())
		RETURNING id
	`, email, string(role)).Scan(&userID)
	require.NoError(t, err)
	return userID
}

func applicationAuthedContext(t *testing.T, ctx context.Context, userID string, role user.Role) context.Context {
	ja := jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id": userID,
		"email":   "test@example.com",
		"role":    string(role),
		"type":    "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(ctx, token, nil)
}

func newTestApplicationService() application.ApplicationService {
	applicationRepo := postgresql.NewApplicationRepository(testApplicationDB)
	userRepo := postgresql.NewUserRepository(testApplicationDB)
	profileRepo := postgresql.NewProfileRepository(testApplicationDB)
	outboxRepo := postgresql.NewOutboxRepository(testApplicationDB)
	return NewApplicationService(testApplicationDB, applicationRepo, userRepo, profileRepo, outboxRepo)
}

func validSubmitRequest() application.SubmitApplicationRequest {
	return application.SubmitApplicationRequest{
		Phone:            "+447700900000",
		AddressLine1:     "12 Elm Road",
		City:             "Bristol",
		Postcode:         "BS1 4DJ",
		EmergencyContact: "Pat Smith",
		EmergencyPhone:   "+447700900123",
		Motivation:       "I want to give back to my local community.",
	}
}

func TestApplicationService_SubmitAndApprove(t *testing.T) {
	applicationTestInit(t)
	ctx := context.Background()
	truncateApplicationTables(t, ctx)

	applicantID := createApplicationTestUser(t, ctx, user.RolePending)
	adminID := createApplicationTestUser(t, ctx, user.RoleAdmin)
	service := newTestApplicationService()

	req := validSubmitRequest()
	req.Phone = "+447700900456"
	submitted, err := service.Submit(applicationAuthedContext(t, ctx, applicantID, user.RolePending), req)
	require.NoError(t, err)
	assert.Equal(t, "pending", submitted.Status)
	assert.NotNil(t, submitted.SubmittedAt)

	adminCtx := applicationAuthedContext(t, ctx, adminID, user.RoleAdmin)
	approved, err := service.Approve(adminCtx, submitted.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)

	// Approval promotes the applicant, copies the form into a profile and
	// queues the notification email
	var role string
	require.NoError(t, testApplicationDB.QueryRow(ctx, `SELECT role FROM users WHERE id = $1`, applicantID).Scan(&role))
	assert.Equal(t, "volunteer", role)

	var profilePhone string
	require.NoError(t, testApplicationDB.QueryRow(ctx, `SELECT phone FROM profiles WHERE user_id = $1`, applicantID).Scan(&profilePhone))
	assert.Equal(t, "+447700900456", profilePhone)

	var queued int
	require.NoError(t, testApplicationDB.QueryRow(ctx, `
		SELECT COUNT(*) FROM notification_outbox WHERE template = 'application_approved' AND status = 'pending'
	`).Scan(&queued))
	assert.Equal(t, 1, queued)

	_, err = service.Approve(adminCtx, submitted.ID)
	assert.ErrorIs(t, err, application.ErrNotPending)
}

func TestApplicationService_Reject_AllowsResubmission(t *testing.T) {
	applicationTestInit(t)
	ctx := context.Background()
	truncateApplicationTables(t, ctx)

	applicantID := createApplicationTestUser(t, ctx, user.RolePending)
	adminID := createApplicationTestUser(t, ctx, user.RoleAdmin)
	service := newTestApplicationService()

	applicantCtx := applicationAuthedContext(t, ctx, applicantID, user.RolePending)
	req := validSubmitRequest()
	req.Phone = "+447700900789"
	submitted, err := service.Submit(applicantCtx, req)
	require.NoError(t, err)

	reason := "References missing"
	rejected, err := service.Reject(applicationAuthedContext(t, ctx, adminID, user.RoleAdmin), application.RejectApplicationRequest{
		ApplicationID: submitted.ID,
		Reason:        &reason,
	})
	require.NoError(t, err)
	assert.Equal(t, "rejected", rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, reason, *rejected.RejectionReason)

	// A rejected application can be reworked and submitted again
	resubmitted, err := service.Submit(applicantCtx, req)
	require.NoError(t, err)
	assert.Equal(t, "pending", resubmitted.Status)
	assert.Nil(t, resubmitted.RejectionReason)
}

func TestApplicationService_SaveDraft_ThenSubmit(t *testing.T) {
	applicationTestInit(t)
	ctx := context.Background()
	truncateApplicationTables(t, ctx)

	applicantID := createApplicationTestUser(t, ctx, user.RolePending)
	service := newTestApplicationService()
	applicantCtx := applicationAuthedContext(t, ctx, applicantID, user.RolePending)

	// Drafts save without full validation
	draft, err := service.SaveDraft(applicantCtx, application.SubmitApplicationRequest{Phone: "+447700900123"})
	require.NoError(t, err)
	assert.Equal(t, "incomplete", draft.Status)
	assert.Nil(t, draft.SubmittedAt)

	req := validSubmitRequest()
	req.Phone = "+447700900123"
	submitted, err := service.Submit(applicantCtx, req)
	require.NoError(t, err)
	assert.Equal(t, "pending", submitted.Status)

	// Pending applications cannot be edited as drafts
	_, err = service.SaveDraft(applicantCtx, application.SubmitApplicationRequest{Phone: "+447700900999"})
	assert.ErrorIs(t, err, application.ErrNotDraft)

	_, err = service.Submit(applicantCtx, req)
	assert.ErrorIs(t, err, application.ErrApplicationExists)
}
