package shift

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/communityroots/volunteer-backend-go/internal/domain/shift"
	"github.com/communityroots/volunteer-backend-go/internal/domain/user"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/database"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/migrate"
	"github.com/communityroots/volunteer-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testShiftDB *database.DB

func shiftTestInit(t *testing.T) {
	if testShiftDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	var err error
	testShiftDB, err = database.NewPostgreSQLDB(ctx, dsn)
	if err != nil {
		t.Skip("test database unavailable: " + err.Error())
	}
	require.NoError(t, migrate.Up(ctx, testShiftDB))
}

func truncateShiftTables(t *testing.T, ctx context.Context) {
	tables := []string{"signups", "shifts", "users"}
	for _, table := range tables {
		_, err := testShiftDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createShiftTestUser(t *testing.T, ctx context.Context, role user.Role) string {
	var userID string
	email := fmt.Sprintf("user-%d@example.com", time.Now().UnixNano())
	err := testShiftDB.QueryRow(ctx, `
		INSERT INTO users (id, email, first_name, last_name, role, active, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, 'Test', 'User', $2, TRUE, NOW(), NOW())
		RETURNING id
	`, email, string(role)).Scan(&userID)
	require.NoError(t, err)
	return userID
}

// authedContext builds a request context carrying the claims the service
// reads, the same shape the JWT middleware produces.
func authedContext(t *testing.T, ctx context.Context, userID string, role user.Role) context.Context {
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

func newTestShiftService() shift.ShiftService {
	shiftRepo := postgresql.NewShiftRepository(testShiftDB)
	signupRepo := postgresql.NewSignupRepository(testShiftDB)
	return NewShiftService(testShiftDB, shiftRepo, signupRepo)
}

func TestShiftService_CreateAndGet(t *testing.T) {
	shiftTestInit(t)
	ctx := context.Background()
	truncateShiftTables(t, ctx)

	adminID := createShiftTestUser(t, ctx, user.RoleAdmin)
	service := newTestShiftService()

	req := shift.CreateShiftRequest{
		Title:    "Food Bank Sorting",
		Location: "Main Warehouse",
		StartsAt: time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
		EndsAt:   time.Now().Add(28 * time.Hour).UTC().Format(time.RFC3339),
		Capacity: 2,
	}
	created, err := service.CreateShift(authedContext(t, ctx, adminID, user.RoleAdmin), req)
	require.NoError(t, err)
	assert.Equal(t, "open", created.Status)
	assert.Equal(t, 2, created.Capacity)

	fetched, err := service.GetShift(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Food Bank Sorting", fetched.Title)
	assert.Equal(t, int64(0), fetched.SignupCount)
}

func TestShiftService_SignUp_FillsShift(t *testing.T) {
	shiftTestInit(t)
	ctx := context.Background()
	truncateShiftTables(t, ctx)

	adminID := createShiftTestUser(t, ctx, user.RoleAdmin)
	volunteerA := createShiftTestUser(t, ctx, user.RoleVolunteer)
	volunteerB := createShiftTestUser(t, ctx, user.RoleVolunteer)
	service := newTestShiftService()

	created, err := service.CreateShift(authedContext(t, ctx, adminID, user.RoleAdmin), shift.CreateShiftRequest{
		Title:    "Soup Kitchen",
		Location: "Church Hall",
		StartsAt: time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
		EndsAt:   time.Now().Add(27 * time.Hour).UTC().Format(time.RFC3339),
		Capacity: 1,
	})
	require.NoError(t, err)

	_, err = service.SignUp(authedContext(t, ctx, volunteerA, user.RoleVolunteer), created.ID)
	require.NoError(t, err)

	// Filling the last slot flips the shift to full
	fetched, err := service.GetShift(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "full", fetched.Status)
	assert.Equal(t, int64(1), fetched.SignupCount)

	_, err = service.SignUp(authedContext(t, ctx, volunteerB, user.RoleVolunteer), created.ID)
	assert.ErrorIs(t, err, shift.ErrCapacityExceeded)
}

func TestShiftService_SignUp_Duplicate(t *testing.T) {
	shiftTestInit(t)
	ctx := context.Background()
	truncateShiftTables(t, ctx)

	adminID := createShiftTestUser(t, ctx, user.RoleAdmin)
	volunteerID := createShiftTestUser(t, ctx, user.RoleVolunteer)
	service := newTestShiftService()

	created, err := service.CreateShift(authedContext(t, ctx, adminID, user.RoleAdmin), shift.CreateShiftRequest{
		Title:    "Park Cleanup",
		Location: "Riverside Park",
		StartsAt: time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
		EndsAt:   time.Now().Add(27 * time.Hour).UTC().Format(time.RFC3339),
		Capacity: 5,
	})
	require.NoError(t, err)

	volCtx := authedContext(t, ctx, volunteerID, user.RoleVolunteer)
	_, err = service.SignUp(volCtx, created.ID)
	require.NoError(t, err)

	_, err = service.SignUp(volCtx, created.ID)
	assert.ErrorIs(t, err, shift.ErrAlreadySignedUp)
}

func TestShiftService_CancelSignup_ReopensFullShift(t *testing.T) {
	shiftTestInit(t)
	ctx := context.Background()
	truncateShiftTables(t, ctx)

	adminID := createShiftTestUser(t, ctx, user.RoleAdmin)
	volunteerID := createShiftTestUser(t, ctx, user.RoleVolunteer)
	service := newTestShiftService()

	created, err := service.CreateShift(authedContext(t, ctx, adminID, user.RoleAdmin), shift.CreateShiftRequest{
		Title:    "Charity Shop",
		Location: "High Street",
		StartsAt: time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
		EndsAt:   time.Now().Add(30 * time.Hour).UTC().Format(time.RFC3339),
		Capacity: 1,
	})
	require.NoError(t, err)

	volCtx := authedContext(t, ctx, volunteerID, user.RoleVolunteer)
	_, err = service.SignUp(volCtx, created.ID)
	require.NoError(t, err)

	require.NoError(t, service.CancelSignup(volCtx, created.ID))

	fetched, err := service.GetShift(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "open", fetched.Status)
	assert.Equal(t, int64(0), fetched.SignupCount)
}

func TestShiftService_SignUp_ParallelNeverExceedsCapacity(t *testing.T) {
	shiftTestInit(t)
	ctx := context.Background()
	truncateShiftTables(t, ctx)

	const capacity = 3
	const contenders = 8

	adminID := createShiftTestUser(t, ctx, user.RoleAdmin)
	service := newTestShiftService()

	created, err := service.CreateShift(authedContext(t, ctx, adminID, user.RoleAdmin), shift.CreateShiftRequest{
		Title:    "Festival Stewarding",
		Location: "Town Square",
		StartsAt: time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
		EndsAt:   time.Now().Add(30 * time.Hour).UTC().Format(time.RFC3339),
		Capacity: capacity,
	})
	require.NoError(t, err)

	volunteers := make([]string, contenders)
	for i := range volunteers {
		volunteers[i] = createShiftTestUser(t, ctx, user.RoleVolunteer)
	}

	// All volunteers race for the slots; the row lock serialises them
	errs := make(chan error, contenders)
	var wg sync.WaitGroup
	for _, volunteerID := range volunteers {
		wg.Add(1)
		go func(volunteerID string) {
			defer wg.Done()
			_, err := service.SignUp(authedContext(t, ctx, volunteerID, user.RoleVolunteer), created.ID)
			errs <- err
		}(volunteerID)
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, shift.ErrCapacityExceeded)
	}
	assert.Equal(t, capacity, succeeded)

	fetched, err := service.GetShift(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "full", fetched.Status)
	assert.Equal(t, int64(capacity), fetched.SignupCount)
}

func TestShiftService_CancelShift_Terminal(t *testing.T) {
	shiftTestInit(t)
	ctx := context.Background()
	truncateShiftTables(t, ctx)

	adminID := createShiftTestUser(t, ctx, user.RoleAdmin)
	service := newTestShiftService()
	adminCtx := authedContext(t, ctx, adminID, user.RoleAdmin)

	created, err := service.CreateShift(adminCtx, shift.CreateShiftRequest{
		Title:    "Night Shelter",
		Location: "Community Centre",
		StartsAt: time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
		EndsAt:   time.Now().Add(32 * time.Hour).UTC().Format(time.RFC3339),
		Capacity: 3,
	})
	require.NoError(t, err)

	cancelled, err := service.CancelShift(adminCtx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)

	_, err = service.CancelShift(adminCtx, created.ID)
	assert.ErrorIs(t, err, shift.ErrShiftNotCancelable)
}
