package complaintController_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hostelcare/config"
	"hostelcare/database"
	authRoutes "hostelcare/routers/authRoutes"
	complaintRoutes "hostelcare/routers/complaintRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type complaintRow struct {
	ID        uint      `json:"ID"`
	CreatedAt time.Time `json:"CreatedAt"`
	UpdatedAt time.Time `json:"UpdatedAt"`
	UserID    uint      `json:"user_id"`
	Category  string    `json:"category"`
	Priority  string    `json:"priority"`
	Status    string    `json:"status"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	UserRoom  string    `json:"user_room"`
}

type listResponse struct {
	Data struct {
		Complaints []complaintRow `json:"complaints"`
	} `json:"data"`
}

type complaintResponse struct {
	Data struct {
		Complaint complaintRow `json:"complaint"`
	} `json:"data"`
}

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	complaintRoutes.SetupComplaintRoutes(app)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, token, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func register(t *testing.T, app *fiber.App, body string) string {
	t.Helper()
	resp := doRequest(t, app, "POST", "/auth/register", "", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &out))
	require.NotEmpty(t, out.Data.Token)
	return out.Data.Token
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, out))
}

func registerAsha(t *testing.T, app *fiber.App) string {
	return register(t, app, `{"name":"Asha","email":"asha@example.com","password":"secret123","room_number":"A-204"}`)
}

func registerRavi(t *testing.T, app *fiber.App) string {
	return register(t, app, `{"name":"Ravi","email":"ravi@example.com","password":"secret123","room_number":"B-101"}`)
}

func registerWarden(t *testing.T, app *fiber.App) string {
	return register(t, app, `{"name":"Warden","email":"warden@example.com","password":"secret123","role":"admin"}`)
}

func submitComplaint(t *testing.T, app *fiber.App, token, body string) complaintRow {
	t.Helper()
	resp := doRequest(t, app, "POST", "/complaints", token, body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var out complaintResponse
	decode(t, resp, &out)
	return out.Data.Complaint
}

func TestCreateComplaintDefaults(t *testing.T) {
	app := setupTestApp(t)
	asha := registerAsha(t, app)

	created := submitComplaint(t, app, asha, `{"category":"Plumbing","description":"Leaking tap in room"}`)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, "medium", created.Priority)
	assert.NotZero(t, created.ID)
	assert.NotZero(t, created.UserID)
}

func TestCreateComplaintRequiresAuth(t *testing.T) {
	app := setupTestApp(t)

	resp := doRequest(t, app, "POST", "/complaints", "", `{"category":"Plumbing","description":"Leaking tap in room"}`)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCreateComplaintAdminForbidden(t *testing.T) {
	app := setupTestApp(t)
	warden := registerWarden(t, app)

	resp := doRequest(t, app, "POST", "/complaints", warden, `{"category":"Plumbing","description":"Leaking tap in room"}`)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestStudentListIsOwnerScoped(t *testing.T) {
	app := setupTestApp(t)
	asha := registerAsha(t, app)
	ravi := registerRavi(t, app)

	mine := submitComplaint(t, app, asha, `{"category":"Plumbing","description":"Leaking tap in room"}`)
	submitComplaint(t, app, ravi, `{"category":"Electrical","description":"Fan not working at all"}`)

	// Filters cannot widen a student's scope
	resp := doRequest(t, app, "GET", "/complaints?category=Electrical", asha, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var filtered listResponse
	decode(t, resp, &filtered)
	assert.Empty(t, filtered.Data.Complaints)

	resp = doRequest(t, app, "GET", "/complaints", asha, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var all listResponse
	decode(t, resp, &all)
	require.Len(t, all.Data.Complaints, 1)
	assert.Equal(t, mine.ID, all.Data.Complaints[0].ID)
	assert.Equal(t, mine.UserID, all.Data.Complaints[0].UserID)
}

func TestAdminListJoinsOwnerAndFilters(t *testing.T) {
	app := setupTestApp(t)
	asha := registerAsha(t, app)
	ravi := registerRavi(t, app)
	warden := registerWarden(t, app)

	submitComplaint(t, app, asha, `{"category":"Plumbing","description":"Leaking tap in room"}`)
	time.Sleep(5 * time.Millisecond)
	submitComplaint(t, app, ravi, `{"category":"Plumbing","description":"Shower drain is blocked"}`)
	time.Sleep(5 * time.Millisecond)
	submitComplaint(t, app, ravi, `{"category":"Electrical","description":"Fan not working at all"}`)

	resp := doRequest(t, app, "GET", "/complaints?status=pending&category=Plumbing", warden, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out listResponse
	decode(t, resp, &out)
	require.Len(t, out.Data.Complaints, 2)

	// Newest first
	assert.False(t, out.Data.Complaints[0].CreatedAt.Before(out.Data.Complaints[1].CreatedAt))

	// Owner details joined for display
	assert.Equal(t, "Ravi", out.Data.Complaints[0].UserName)
	assert.Equal(t, "B-101", out.Data.Complaints[0].UserRoom)
	assert.Equal(t, "Asha", out.Data.Complaints[1].UserName)
	assert.Equal(t, "A-204", out.Data.Complaints[1].UserRoom)
	for _, row := range out.Data.Complaints {
		assert.Equal(t, "pending", row.Status)
		assert.Equal(t, "Plumbing", row.Category)
	}
}

func TestUpdateStatusLifecycle(t *testing.T) {
	app := setupTestApp(t)
	asha := registerAsha(t, app)
	warden := registerWarden(t, app)

	created := submitComplaint(t, app, asha, `{"category":"Plumbing","description":"Leaking tap in room"}`)
	time.Sleep(10 * time.Millisecond)

	resp := doRequest(t, app, "PUT", fmt.Sprintf("/complaints/%d", created.ID), warden, `{"status":"in_progress"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated complaintResponse
	decode(t, resp, &updated)
	assert.Equal(t, "in_progress", updated.Data.Complaint.Status)
	assert.True(t, updated.Data.Complaint.UpdatedAt.After(created.UpdatedAt))

	// The owner sees the new status
	resp = doRequest(t, app, "GET", "/complaints", asha, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list listResponse
	decode(t, resp, &list)
	require.Len(t, list.Data.Complaints, 1)
	assert.Equal(t, "in_progress", list.Data.Complaints[0].Status)
}

func TestUpdateStatusStudentForbidden(t *testing.T) {
	app := setupTestApp(t)
	asha := registerAsha(t, app)

	created := submitComplaint(t, app, asha, `{"category":"Plumbing","description":"Leaking tap in room"}`)

	resp := doRequest(t, app, "PUT", fmt.Sprintf("/complaints/%d", created.ID), asha, `{"status":"resolved"}`)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestUpdateStatusInvalidValueLeavesRowUnchanged(t *testing.T) {
	app := setupTestApp(t)
	asha := registerAsha(t, app)
	warden := registerWarden(t, app)

	created := submitComplaint(t, app, asha, `{"category":"Plumbing","description":"Leaking tap in room"}`)

	resp := doRequest(t, app, "PUT", fmt.Sprintf("/complaints/%d", created.ID), warden, `{"status":"closed"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, "GET", "/complaints", asha, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list listResponse
	decode(t, resp, &list)
	require.Len(t, list.Data.Complaints, 1)
	assert.Equal(t, "pending", list.Data.Complaints[0].Status)
}

func TestUpdateStatusNotFound(t *testing.T) {
	app := setupTestApp(t)
	warden := registerWarden(t, app)

	resp := doRequest(t, app, "PUT", "/complaints/9999", warden, `{"status":"resolved"}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestComplaintStats(t *testing.T) {
	app := setupTestApp(t)
	asha := registerAsha(t, app)
	warden := registerWarden(t, app)

	first := submitComplaint(t, app, asha, `{"category":"Plumbing","description":"Leaking tap in room"}`)
	submitComplaint(t, app, asha, `{"category":"Electrical","description":"Fan not working at all"}`)

	resp := doRequest(t, app, "PUT", fmt.Sprintf("/complaints/%d", first.ID), warden, `{"status":"resolved"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "GET", "/complaints/stats", warden, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Data struct {
			Total      int64 `json:"total"`
			Pending    int64 `json:"pending"`
			InProgress int64 `json:"in_progress"`
			Resolved   int64 `json:"resolved"`
		} `json:"data"`
	}
	decode(t, resp, &out)
	assert.Equal(t, int64(2), out.Data.Total)
	assert.Equal(t, int64(1), out.Data.Pending)
	assert.Equal(t, int64(0), out.Data.InProgress)
	assert.Equal(t, int64(1), out.Data.Resolved)
}

func TestComplaintStatsStudentForbidden(t *testing.T) {
	app := setupTestApp(t)
	asha := registerAsha(t, app)

	resp := doRequest(t, app, "GET", "/complaints/stats", asha, "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

// Full walkthrough: student registers and submits, admin triages, student
// sees the update and nothing else.
func TestComplaintWorkflow(t *testing.T) {
	app := setupTestApp(t)
	asha := registerAsha(t, app)
	ravi := registerRavi(t, app)
	warden := registerWarden(t, app)

	submitComplaint(t, app, ravi, `{"category":"Electrical","description":"Fan not working at all"}`)
	created := submitComplaint(t, app, asha, `{"category":"Plumbing","description":"Leaking tap in room"}`)
	assert.Equal(t, "pending", created.Status)

	// Admin sees Asha's complaint with her room number
	resp := doRequest(t, app, "GET", "/complaints?category=Plumbing", warden, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var adminList listResponse
	decode(t, resp, &adminList)
	require.Len(t, adminList.Data.Complaints, 1)
	assert.Equal(t, "A-204", adminList.Data.Complaints[0].UserRoom)

	// Admin moves it forward
	resp = doRequest(t, app, "PUT", fmt.Sprintf("/complaints/%d", created.ID), warden, `{"status":"in_progress"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Asha sees only her own complaint, now in progress
	resp = doRequest(t, app, "GET", "/complaints", asha, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var ashaList listResponse
	decode(t, resp, &ashaList)
	require.Len(t, ashaList.Data.Complaints, 1)
	assert.Equal(t, created.ID, ashaList.Data.Complaints[0].ID)
	assert.Equal(t, "in_progress", ashaList.Data.Complaints[0].Status)
}
