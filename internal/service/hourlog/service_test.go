package hourlog

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/communityroots/volunteer-backend-go/internal/domain/hourlog"
	"github.com/communityroots/volunteer-backend-go/internal/domain/user"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/database"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/migrate"
	"github.com/communityroots/volunteer-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testHourLogDB *database.DB

func hourLogTestInit(t *testing.T) {
	if testHourLogDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	var err error
	testHourLogDB, err = database.NewPostgreSQLDB(ctx, dsn)
	if err != nil {
		t.Skip("test database unavailable: " + err.Error())
	}
	require.NoError(t, migrate.Up(ctx, testHourLogDB))
}

func truncateHourLogTables(t *testing.T, ctx context.Context) {
	tables := []string{"hour_log_entries", "group_memberships", "groups", "users"}
	for _, table := range tables {
		_, err := testHourLogDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createHourLogTestUser(t *testing.T, ctx context.Context, role user.Role) string {
	var userID string
	email := fmt.Sprintf("user-%d@example.com", time.Now().UnixNano())
	err := testHourLogDB.QueryRow(ctx, `
		INSERT INTO users (id, email, first_name, last_name, role, active, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, 'Test', 'User', $2, TRUE, NOW(), NOW())
		RETURNING id
	`, email, string(role)).Scan(&userID)
	require.NoError(t, err)
	return userID
}

func createHourLogTestGroup(t *testing.T, ctx context.Context) string {
	var groupID string
	name := fmt.Sprintf("Gardening Crew %d", time.Now().UnixNano())
	err := testHourLogDB.QueryRow(ctx, `
		INSERT INTO groups (id, name, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, NOW(), NOW())
		RETURNING id
	`, name).Scan(&groupID)
	require.NoError(t, err)
	return groupID
}

func addHourLogTestMember(t *testing.T, ctx context.Context, groupID, userID string) {
	_, err := testHourLogDB.Exec(ctx, `
		INSERT INTO group_memberships (id, group_id, user_id, role, created_at)
		VALUES (gen_random_uuid(), $1, $2, 'member', NOW())
	`, groupID, userID)
	require.NoError(t, err)
}

func hourLogAuthedContext(t *testing.T, ctx context.Context, userID string, role user.Role) context.Context {
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

func newTestHourLogService() hourlog.HourLogService {
	entryRepo := postgresql.NewHourLogRepository(testHourLogDB)
	membershipRepo := postgresql.NewMembershipRepository(testHourLogDB)
	return NewHourLogService(testHourLogDB, entryRepo, membershipRepo)
}

func TestHourLogService_LogAndAggregate(t *testing.T) {
	hourLogTestInit(t)
	ctx := context.Background()
	truncateHourLogTables(t, ctx)

	volunteerID := createHourLogTestUser(t, ctx, user.RoleVolunteer)
	service := newTestHourLogService()
	volCtx := hourLogAuthedContext(t, ctx, volunteerID, user.RoleVolunteer)

	_, err := service.LogManualHours(volCtx, hourlog.LogHoursRequest{
		Hours:       2,
		Minutes:     30,
		Description: "Community garden maintenance",
		Date:        "2026-04-12",
	})
	require.NoError(t, err)

	_, err = service.LogManualHours(volCtx, hourlog.LogHoursRequest{
		Hours:       1,
		Minutes:     45,
		Description: "Litter picking",
		Date:        "2026-04-13",
	})
	require.NoError(t, err)

	// 2h30 + 1h45 normalises to 4h15
	total, err := service.AggregateHours(ctx, volunteerID)
	require.NoError(t, err)
	assert.Equal(t, 4, total.Hours)
	assert.Equal(t, 15, total.Minutes)
	assert.Equal(t, 2, total.EntryCount)
}

func TestHourLogService_LogHours_GroupMembershipRequired(t *testing.T) {
	hourLogTestInit(t)
	ctx := context.Background()
	truncateHourLogTables(t, ctx)

	volunteerID := createHourLogTestUser(t, ctx, user.RoleVolunteer)
	groupID := createHourLogTestGroup(t, ctx)
	service := newTestHourLogService()
	volCtx := hourLogAuthedContext(t, ctx, volunteerID, user.RoleVolunteer)

	req := hourlog.LogHoursRequest{
		Hours:       1,
		Minutes:     0,
		Description: "Group outing support",
		Date:        "2026-04-14",
		GroupID:     &groupID,
	}

	_, err := service.LogManualHours(volCtx, req)
	assert.ErrorIs(t, err, hourlog.ErrNotGroupMember)

	addHourLogTestMember(t, ctx, groupID, volunteerID)
	entry, err := service.LogManualHours(volCtx, req)
	require.NoError(t, err)
	require.NotNil(t, entry.GroupID)
	assert.Equal(t, groupID, *entry.GroupID)
}

func TestHourLogService_Approve(t *testing.T) {
	hourLogTestInit(t)
	ctx := context.Background()
	truncateHourLogTables(t, ctx)

	volunteerID := createHourLogTestUser(t, ctx, user.RoleVolunteer)
	adminID := createHourLogTestUser(t, ctx, user.RoleAdmin)
	service := newTestHourLogService()

	entry, err := service.LogManualHours(hourLogAuthedContext(t, ctx, volunteerID, user.RoleVolunteer), hourlog.LogHoursRequest{
		Hours:       3,
		Minutes:     0,
		Description: "Charity shop cover",
		Date:        "2026-04-15",
	})
	require.NoError(t, err)
	assert.False(t, entry.Approved)

	adminCtx := hourLogAuthedContext(t, ctx, adminID, user.RoleAdmin)
	approved, err := service.Approve(adminCtx, entry.ID)
	require.NoError(t, err)
	assert.True(t, approved.Approved)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, adminID, *approved.ApprovedBy)

	_, err = service.Approve(adminCtx, entry.ID)
	assert.ErrorIs(t, err, hourlog.ErrAlreadyApproved)
}
