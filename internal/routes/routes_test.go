package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woffu/woffu/internal/config"
	"github.com/woffu/woffu/internal/database"
	"github.com/woffu/woffu/internal/models"
	"github.com/woffu/woffu/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestServer(t *testing.T) (*gin.Engine, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	database.DB = db

	cfg := &config.Config{
		JWTSecret:      "test-secret",
		JWTExpiration:  1,
		DueSoonDays:    3,
		AppName:        "WOFFU",
		LeaderEmail:    "leader@woffu.local",
		LeaderPassword: "leader-pass",
		LeaderName:     "Lead",
	}

	authService := services.NewAuthService(cfg, db)
	require.NoError(t, SeedLeader(cfg, authService))

	return SetupRouter(cfg), cfg
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func loginAs(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeBody(t, w)["token"].(string)
}

func registerMember(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":        email,
		"password":     "member-pass",
		"display_name": "Member",
		"department":   "VIDEO",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody(t, w)["token"].(string)
}

func createTestProject(t *testing.T, router *gin.Engine, leaderToken string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/projects", leaderToken, gin.H{
		"title":          "Spring teaser",
		"type":           "VIDEO",
		"brand":          "Acme",
		"video_priority": "HIGH",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	project := decodeBody(t, w)["project"].(map[string]interface{})
	return project["id"].(string)
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	router, _ := setupTestServer(t)

	for _, path := range []string{"/api/projects", "/api/dashboard", "/api/approvals", "/api/members"} {
		w := doJSON(t, router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestProjectCreateIsLeaderOnly(t *testing.T) {
	router, cfg := setupTestServer(t)
	leaderToken := loginAs(t, router, cfg.LeaderEmail, cfg.LeaderPassword)
	memberToken := registerMember(t, router, "m1@woffu.local")

	w := doJSON(t, router, http.MethodPost, "/api/projects", memberToken, gin.H{
		"title": "Nope",
		"type":  "VIDEO",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	createTestProject(t, router, leaderToken)
}

func TestStatusRequestWorkflowEndToEnd(t *testing.T) {
	router, cfg := setupTestServer(t)
	leaderToken := loginAs(t, router, cfg.LeaderEmail, cfg.LeaderPassword)
	memberToken := registerMember(t, router, "m2@woffu.local")
	projectID := createTestProject(t, router, leaderToken)

	// Member files a request.
	w := doJSON(t, router, http.MethodPost, "/api/projects/"+projectID+"/request-status", memberToken, gin.H{
		"from_status": "TODO",
		"to_status":   "IN_PROGRESS",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "REQUESTED", body["mode"])

	// Member cannot see the approval queue.
	w = doJSON(t, router, http.MethodGet, "/api/approvals", memberToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Leader sees exactly one pending request.
	w = doJSON(t, router, http.MethodGet, "/api/approvals", leaderToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	pending := data["pending"].([]interface{})
	require.Len(t, pending, 1)
	requestID := pending[0].(map[string]interface{})["id"].(string)

	// Member approval attempts are forbidden.
	w = doJSON(t, router, http.MethodPost, "/api/approvals/"+requestID+"/approve", memberToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Leader approves; project status follows.
	w = doJSON(t, router, http.MethodPost, "/api/approvals/"+requestID+"/approve", leaderToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/projects/"+projectID, memberToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	project := decodeBody(t, w)["project"].(map[string]interface{})
	assert.Equal(t, "IN_PROGRESS", project["status"])

	// Second approve reports the resolved state.
	w = doJSON(t, router, http.MethodPost, "/api/approvals/"+requestID+"/approve", leaderToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "APPROVED")

	// Reject after resolution is an idempotent success.
	w = doJSON(t, router, http.MethodPost, "/api/approvals/"+requestID+"/reject", leaderToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// History clear leaves nothing pending behind.
	w = doJSON(t, router, http.MethodPost, "/api/approvals/history/clear", leaderToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/approvals", leaderToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeBody(t, w)["data"].(map[string]interface{})
	assert.Empty(t, data["history"])
}

func TestLeaderDirectTransitionApplied(t *testing.T) {
	router, cfg := setupTestServer(t)
	leaderToken := loginAs(t, router, cfg.LeaderEmail, cfg.LeaderPassword)
	projectID := createTestProject(t, router, leaderToken)

	w := doJSON(t, router, http.MethodPost, "/api/projects/"+projectID+"/request-status", leaderToken, gin.H{
		"from_status": "TODO",
		"to_status":   "BLOCKED",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "APPLIED", decodeBody(t, w)["mode"])

	// Log trail records the applied change.
	w = doJSON(t, router, http.MethodGet, "/api/projects/"+projectID+"/logs", leaderToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	logs := decodeBody(t, w)["logs"].([]interface{})
	require.NotEmpty(t, logs)
	assert.Equal(t, models.ActionStatusApproved, logs[0].(map[string]interface{})["action"])
}

func TestInvalidIdentifiers(t *testing.T) {
	router, cfg := setupTestServer(t)
	leaderToken := loginAs(t, router, cfg.LeaderEmail, cfg.LeaderPassword)

	for _, id := range []string{"undefined", "null", "not-a-uuid"} {
		w := doJSON(t, router, http.MethodGet, "/api/projects/"+id, leaderToken, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, id)
	}

	w := doJSON(t, router, http.MethodPost, "/api/approvals/undefined/approve", leaderToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardEndpoint(t *testing.T) {
	router, cfg := setupTestServer(t)
	leaderToken := loginAs(t, router, cfg.LeaderEmail, cfg.LeaderPassword)
	memberToken := registerMember(t, router, "m3@woffu.local")
	projectID := createTestProject(t, router, leaderToken)

	w := doJSON(t, router, http.MethodPost, "/api/projects/"+projectID+"/request-status", memberToken, gin.H{
		"to_status": "IN_PROGRESS",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/dashboard", leaderToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decodeBody(t, w)["stats"].(map[string]interface{})
	assert.EqualValues(t, 1, stats["total_projects"])
	assert.EqualValues(t, 1, stats["pending_approvals"])

	w = doJSON(t, router, http.MethodGet, "/api/dashboard", memberToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats = decodeBody(t, w)["stats"].(map[string]interface{})
	assert.EqualValues(t, 0, stats["pending_approvals"])
}

func TestProjectReportDownload(t *testing.T) {
	router, cfg := setupTestServer(t)
	leaderToken := loginAs(t, router, cfg.LeaderEmail, cfg.LeaderPassword)
	projectID := createTestProject(t, router, leaderToken)

	w := doJSON(t, router, http.MethodGet, "/api/projects/"+projectID+"/report", leaderToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestMemberRoleChangeRequiresLeader(t *testing.T) {
	router, cfg := setupTestServer(t)
	leaderToken := loginAs(t, router, cfg.LeaderEmail, cfg.LeaderPassword)
	memberToken := registerMember(t, router, "m4@woffu.local")

	w := doJSON(t, router, http.MethodGet, "/api/auth/me", memberToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	memberID := decodeBody(t, w)["member"].(map[string]interface{})["id"].(string)

	// Member may edit their own descriptive fields.
	w = doJSON(t, router, http.MethodPatch, "/api/members/"+memberID, memberToken, gin.H{
		"display_name": "Renamed",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// But not their own role.
	w = doJSON(t, router, http.MethodPatch, "/api/members/"+memberID, memberToken, gin.H{
		"role": "LEADER",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// A leader can.
	w = doJSON(t, router, http.MethodPatch, "/api/members/"+memberID, leaderToken, gin.H{
		"role": "LEADER",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}
