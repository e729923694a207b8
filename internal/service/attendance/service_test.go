package attendance

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/communityroots/volunteer-backend-go/internal/domain/attendance"
	"github.com/communityroots/volunteer-backend-go/internal/domain/user"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/database"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/migrate"
	"github.com/communityroots/volunteer-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAttendanceDB *database.DB

func attendanceTestInit(t *testing.T) {
	if testAttendanceDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	var err error
	testAttendanceDB, err = database.NewPostgreSQLDB(ctx, dsn)
	if err != nil {
		t.Skip("test database unavailable: " + err.Error())
	}
	require.NoError(t, migrate.Up(ctx, testAttendanceDB))
}

func truncateAttendanceTables(t *testing.T, ctx context.Context) {
	tables := []string{"hour_log_entries", "attendance_sessions", "signups", "shifts", "users"}
	for _, table := range tables {
		_, err := testAttendanceDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createAttendanceTestUser(t *testing.T, ctx context.Context, role user.Role) string {
	var userID string
	email := fmt.Sprintf("user-%d@example.com", time.Now().UnixNano())
	err := testAttendanceDB.QueryRow(ctx, `
		INSERT INTO users (id, email, first_name, last_name, role, active, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, 'Test', 'User', $2, TRUE, NOW(), NOW())
		RETURNING id
	`, email, string(role)).Scan(&userID)
	require.NoError(t, err)
	return userID
}

func createAttendanceTestShift(t *testing.T, ctx context.Context, createdBy string, startsAt, endsAt time.Time) string {
	var shiftID string
	err := testAttendanceDB.QueryRow(ctx, `
		INSERT INTO shifts (id, title, location, starts_at, ends_at, capacity, status, created_by, created_at, updated_at)
		VALUES (gen_random_uuid(), 'Test Shift', 'Test Hall', $1, $2, 10, 'open', $3, NOW(), NOW())
		RETURNING id
	`, startsAt, endsAt, createdBy).Scan(&shiftID)
	require.NoError(t, err)
	return shiftID
}

func createAttendanceTestSignup(t *testing.T, ctx context.Context, volunteerID, shiftID string) {
	_, err := testAttendanceDB.Exec(ctx, `
		INSERT INTO signups (id, volunteer_id, shift_id, created_at)
		VALUES (gen_random_uuid(), $1, $2, NOW())
	`, volunteerID, shiftID)
	require.NoError(t, err)
}

func attendanceAuthedContext(t *testing.T, ctx context.Context, userID string, role user.Role) context.Context {
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

func newTestAttendanceService() attendance.AttendanceService {
	sessionRepo := postgresql.NewSessionRepository(testAttendanceDB)
	shiftRepo := postgresql.NewShiftRepository(testAttendanceDB)
	signupRepo := postgresql.NewSignupRepository(testAttendanceDB)
	entryRepo := postgresql.NewHourLogRepository(testAttendanceDB)
	return NewAttendanceService(testAttendanceDB, sessionRepo, shiftRepo, signupRepo, entryRepo)
}

func TestAttendanceService_CheckIn_RequiresSignup(t *testing.T) {
	attendanceTestInit(t)
	ctx := context.Background()
	truncateAttendanceTables(t, ctx)

	adminID := createAttendanceTestUser(t, ctx, user.RoleAdmin)
	volunteerID := createAttendanceTestUser(t, ctx, user.RoleVolunteer)
	shiftID := createAttendanceTestShift(t, ctx, adminID, time.Now().Add(-time.Hour), time.Now().Add(3*time.Hour))
	service := newTestAttendanceService()

	volCtx := attendanceAuthedContext(t, ctx, volunteerID, user.RoleVolunteer)
	_, err := service.CheckIn(volCtx, attendance.CheckInRequest{ShiftID: shiftID})
	assert.ErrorIs(t, err, attendance.ErrNotSignedUp)
}

func TestAttendanceService_CheckIn_SecondOpenSessionRejected(t *testing.T) {
	attendanceTestInit(t)
	ctx := context.Background()
	truncateAttendanceTables(t, ctx)

	adminID := createAttendanceTestUser(t, ctx, user.RoleAdmin)
	volunteerID := createAttendanceTestUser(t, ctx, user.RoleVolunteer)
	shiftID := createAttendanceTestShift(t, ctx, adminID, time.Now().Add(-time.Hour), time.Now().Add(3*time.Hour))
	createAttendanceTestSignup(t, ctx, volunteerID, shiftID)
	service := newTestAttendanceService()

	volCtx := attendanceAuthedContext(t, ctx, volunteerID, user.RoleVolunteer)
	session, err := service.CheckIn(volCtx, attendance.CheckInRequest{ShiftID: shiftID})
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Nil(t, session.CheckOutAt)

	_, err = service.CheckIn(volCtx, attendance.CheckInRequest{ShiftID: shiftID})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestAttendanceService_CheckIn_ParallelOpensOneSession(t *testing.T) {
	attendanceTestInit(t)
	ctx := context.Background()
	truncateAttendanceTables(t, ctx)

	const contenders = 6

	adminID := createAttendanceTestUser(t, ctx, user.RoleAdmin)
	volunteerID := createAttendanceTestUser(t, ctx, user.RoleVolunteer)
	shiftID := createAttendanceTestShift(t, ctx, adminID, time.Now().Add(-time.Hour), time.Now().Add(3*time.Hour))
	createAttendanceTestSignup(t, ctx, volunteerID, shiftID)
	service := newTestAttendanceService()

	// Concurrent check-ins race past the service checks; the partial unique
	// index lets exactly one through
	volCtx := attendanceAuthedContext(t, ctx, volunteerID, user.RoleVolunteer)
	errs := make(chan error, contenders)
	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.CheckIn(volCtx, attendance.CheckInRequest{ShiftID: shiftID})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	}
	assert.Equal(t, 1, succeeded)

	var open int
	err := testAttendanceDB.QueryRow(ctx, `
		SELECT COUNT(*) FROM attendance_sessions
		WHERE volunteer_id = $1 AND check_out_at IS NULL
	`, volunteerID).Scan(&open)
	require.NoError(t, err)
	assert.Equal(t, 1, open)
}

func TestAttendanceService_CheckOut_RecordsHours(t *testing.T) {
	attendanceTestInit(t)
	ctx := context.Background()
	truncateAttendanceTables(t, ctx)

	adminID := createAttendanceTestUser(t, ctx, user.RoleAdmin)
	volunteerID := createAttendanceTestUser(t, ctx, user.RoleVolunteer)
	shiftID := createAttendanceTestShift(t, ctx, adminID, time.Now().Add(-time.Hour), time.Now().Add(3*time.Hour))
	createAttendanceTestSignup(t, ctx, volunteerID, shiftID)
	service := newTestAttendanceService()

	volCtx := attendanceAuthedContext(t, ctx, volunteerID, user.RoleVolunteer)
	session, err := service.CheckIn(volCtx, attendance.CheckInRequest{ShiftID: shiftID})
	require.NoError(t, err)

	closed, err := service.CheckOut(volCtx, attendance.CheckOutRequest{SessionID: session.ID})
	require.NoError(t, err)
	assert.NotNil(t, closed.CheckOutAt)
	require.NotNil(t, closed.DurationMinutes)
	assert.GreaterOrEqual(t, *closed.DurationMinutes, 0)

	// Closing the session writes an unapproved hour log entry
	var count int
	err = testAttendanceDB.QueryRow(ctx, `
		SELECT COUNT(*) FROM hour_log_entries
		WHERE volunteer_id = $1 AND source = 'attendance' AND NOT approved
	`, volunteerID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = service.CheckOut(volCtx, attendance.CheckOutRequest{SessionID: session.ID})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestAttendanceService_CheckOut_OwnerOnly(t *testing.T) {
	attendanceTestInit(t)
	ctx := context.Background()
	truncateAttendanceTables(t, ctx)

	adminID := createAttendanceTestUser(t, ctx, user.RoleAdmin)
	volunteerID := createAttendanceTestUser(t, ctx, user.RoleVolunteer)
	otherID := createAttendanceTestUser(t, ctx, user.RoleVolunteer)
	shiftID := createAttendanceTestShift(t, ctx, adminID, time.Now().Add(-time.Hour), time.Now().Add(3*time.Hour))
	createAttendanceTestSignup(t, ctx, volunteerID, shiftID)
	service := newTestAttendanceService()

	session, err := service.CheckIn(attendanceAuthedContext(t, ctx, volunteerID, user.RoleVolunteer), attendance.CheckInRequest{ShiftID: shiftID})
	require.NoError(t, err)

	// Another volunteer cannot close the session; an admin can
	_, err = service.CheckOut(attendanceAuthedContext(t, ctx, otherID, user.RoleVolunteer), attendance.CheckOutRequest{SessionID: session.ID})
	assert.ErrorIs(t, err, attendance.ErrNotSessionOwner)

	_, err = service.CheckOut(attendanceAuthedContext(t, ctx, adminID, user.RoleAdmin), attendance.CheckOutRequest{SessionID: session.ID})
	assert.NoError(t, err)
}

func TestAttendanceService_CheckOut_CompletesEndedShift(t *testing.T) {
	attendanceTestInit(t)
	ctx := context.Background()
	truncateAttendanceTables(t, ctx)

	adminID := createAttendanceTestUser(t, ctx, user.RoleAdmin)
	volunteerID := createAttendanceTestUser(t, ctx, user.RoleVolunteer)
	// Shift window already over; check-in happens against a past shift
	shiftID := createAttendanceTestShift(t, ctx, adminID, time.Now().Add(-4*time.Hour), time.Now().Add(-time.Minute))
	createAttendanceTestSignup(t, ctx, volunteerID, shiftID)
	service := newTestAttendanceService()

	volCtx := attendanceAuthedContext(t, ctx, volunteerID, user.RoleVolunteer)
	session, err := service.CheckIn(volCtx, attendance.CheckInRequest{ShiftID: shiftID})
	require.NoError(t, err)

	_, err = service.CheckOut(volCtx, attendance.CheckOutRequest{SessionID: session.ID})
	require.NoError(t, err)

	var status string
	err = testAttendanceDB.QueryRow(ctx, `SELECT status FROM shifts WHERE id = $1`, shiftID).Scan(&status)
	require.NoError(t, err)
	assert.Equal(t, "completed", status)
}
