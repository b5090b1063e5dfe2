package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cityworks/complaint-service/internal/api/http/handlers"
	"github.com/cityworks/complaint-service/internal/auth"
	"github.com/cityworks/complaint-service/internal/config"
	"github.com/cityworks/complaint-service/internal/events"
	"github.com/cityworks/complaint-service/internal/observability"
	"github.com/cityworks/complaint-service/internal/repository"
	"github.com/cityworks/complaint-service/internal/seed"
	"github.com/cityworks/complaint-service/internal/service"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	users := repository.NewMemoryUserRepository(seed.Users())
	complaints := seed.Complaints()
	revoked := auth.NewMemoryRevocationList()

	var cfg config.Config
	cfg.Auth.JWTSecret = "router-secret"
	cfg.Auth.AccessTokenTTLMinutes = 5

	authService := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo:    users,
		Revocations: revoked,
		Logger:      logger,
	})
	complaintService := service.NewComplaintService(service.ComplaintDependencies{
		ComplaintRepo: repository.NewMemoryComplaintRepository(complaints),
		IDs:           repository.NewMemorySequence(seed.MaxComplaintSequence(complaints)),
		Dispatcher:    events.NewInMemoryDispatcher(logger),
		Logger:        logger,
	})

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("complaint-service", "test", nil, metrics),
		Session:        handlers.NewSessionHandler(authService),
		Complaints:     handlers.NewComplaintsHandler(complaintService),
		Leaderboard:    handlers.NewLeaderboardHandler(service.NewLeaderboardService(users)),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), users, revoked, logger),
	})
	return app
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func do(t *testing.T, app *fiber.App, method, path, token, body string) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	status, env := do(t, app, fiber.MethodPost, "/auth/login", "", `{"email":"`+email+`"}`)
	require.Equal(t, fiber.StatusOK, status)

	var data struct {
		Auth struct {
			Token string `json:"token"`
		} `json:"auth"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Auth.Token)
	return data.Auth.Token
}

type complaintJSON struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	UserID    string `json:"userId"`
	UserEmail string `json:"userEmail"`
}

func decodeComplaints(t *testing.T, raw json.RawMessage) []complaintJSON {
	t.Helper()
	var items []complaintJSON
	require.NoError(t, json.Unmarshal(raw, &items))
	return items
}

func ids(items []complaintJSON) []string {
	out := make([]string, 0, len(items))
	for _, c := range items {
		out = append(out, c.ID)
	}
	return out
}

func TestLoginUnknownEmail(t *testing.T) {
	app := newTestApp(t)

	status, env := do(t, app, fiber.MethodPost, "/auth/login", "", `{"email":"nobody@example.com"}`)
	assert.Equal(t, fiber.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestLoginIsCaseInsensitive(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "  USER1@Example.com ")

	status, env := do(t, app, fiber.MethodGet, "/auth/me", token, "")
	require.Equal(t, fiber.StatusOK, status)

	var me struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "user-1", me.User.ID)
	assert.Equal(t, "user", me.Role)
}

func TestLogoutRevokesToken(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "user2@example.com")

	status, _ := do(t, app, fiber.MethodPost, "/auth/logout", token, "")
	require.Equal(t, fiber.StatusNoContent, status)

	status, env := do(t, app, fiber.MethodGet, "/auth/me", token, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
}

func TestCreateComplaintThenListMine(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "user2@example.com")

	body := `{"title":"Graffiti","description":"Wall near the library","location":{"lat":1.5,"lng":2.5,"address":"Library Rd"}}`
	status, env := do(t, app, fiber.MethodPost, "/complaints", token, body)
	require.Equal(t, fiber.StatusCreated, status)

	var created complaintJSON
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "CMPT-005", created.ID)
	assert.Equal(t, "Pending", created.Status)
	assert.Equal(t, "user-2", created.UserID)
	assert.Equal(t, "user2@example.com", created.UserEmail)

	status, env = do(t, app, fiber.MethodGet, "/me/complaints", token, "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, []string{"CMPT-005", "CMPT-003"}, ids(decodeComplaints(t, env.Data)))

	status, env = do(t, app, fiber.MethodGet, "/me/complaints?status=Resolved", token, "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, []string{"CMPT-003"}, ids(decodeComplaints(t, env.Data)))

	status, env = do(t, app, fiber.MethodGet, "/me/stats", token, "")
	require.Equal(t, fiber.StatusOK, status)
	var stats struct {
		Pending  int `json:"pending"`
		Resolved int `json:"resolved"`
		Total    int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Resolved)
	assert.Equal(t, 2, stats.Total)
}

func TestCreateComplaintRequiresTitleAndDescription(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "user1@example.com")

	status, env := do(t, app, fiber.MethodPost, "/complaints", token, `{"title":"  ","description":""}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.ElementsMatch(t, []any{"title", "description"}, env.Error.Details["missing"])

	status, env = do(t, app, fiber.MethodGet, "/admin/complaints", login(t, app, "admin@example.com"), "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decodeComplaints(t, env.Data), 4)
}

func TestCreateComplaintRequiresSignIn(t *testing.T) {
	app := newTestApp(t)

	status, _ := do(t, app, fiber.MethodPost, "/complaints", "", `{"title":"a","description":"b"}`)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAdminRoutesRejectCitizens(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "user1@example.com")

	status, env := do(t, app, fiber.MethodPatch, "/admin/complaints/CMPT-001/status", token, `{"status":"Resolved"}`)
	assert.Equal(t, fiber.StatusForbidden, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	status, _ = do(t, app, fiber.MethodGet, "/admin/stats", token, "")
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestAdminUpdateStatus(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "admin@example.com")

	status, env := do(t, app, fiber.MethodPatch, "/admin/complaints/CMPT-001/status", token, `{"status":"In Progress"}`)
	require.Equal(t, fiber.StatusOK, status)
	var updated complaintJSON
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "CMPT-001", updated.ID)
	assert.Equal(t, "In Progress", updated.Status)

	status, env = do(t, app, fiber.MethodGet, "/complaints/cmpt-001", "", "")
	require.Equal(t, fiber.StatusOK, status)
	var fetched complaintJSON
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, "In Progress", fetched.Status)

	status, env = do(t, app, fiber.MethodGet, "/admin/stats", token, "")
	require.Equal(t, fiber.StatusOK, status)
	var stats struct {
		Pending    int `json:"pending"`
		InProgress int `json:"inProgress"`
		Resolved   int `json:"resolved"`
		Total      int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 2, stats.InProgress)
	assert.Equal(t, 1, stats.Resolved)
	assert.Equal(t, 4, stats.Total)
}

func TestAdminUpdateStatusErrors(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "admin@example.com")

	status, env := do(t, app, fiber.MethodPatch, "/admin/complaints/CMPT-999/status", token, `{"status":"Resolved"}`)
	assert.Equal(t, fiber.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	status, env = do(t, app, fiber.MethodPatch, "/admin/complaints/CMPT-001/status", token, `{"status":"Closed"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)

	status, env = do(t, app, fiber.MethodGet, "/admin/complaints?status=Closed", token, "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	require.NotNil(t, env.Error)
}

func TestGetComplaintMissing(t *testing.T) {
	app := newTestApp(t)

	status, env := do(t, app, fiber.MethodGet, "/complaints/CMPT-404", "", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CMPT-404", env.Error.Details["id"])
}

func TestTrack(t *testing.T) {
	app := newTestApp(t)

	cases := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "by email", query: "USER1@example.com", want: []string{"CMPT-002", "CMPT-001"}},
		{name: "by id", query: "cmpt-003", want: []string{"CMPT-003"}},
		{name: "unknown id", query: "CMPT-042", want: []string{}},
		{name: "empty", query: "", want: []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, env := do(t, app, fiber.MethodGet, "/track?q="+tc.query, "", "")
			require.Equal(t, fiber.StatusOK, status)
			assert.Equal(t, tc.want, ids(decodeComplaints(t, env.Data)))
		})
	}
}

func TestLeaderboard(t *testing.T) {
	app := newTestApp(t)

	status, env := do(t, app, fiber.MethodGet, "/leaderboard", "", "")
	require.Equal(t, fiber.StatusOK, status)

	var rows []struct {
		Rank       int    `json:"rank"`
		UserID     string `json:"userId"`
		TotalScore int    `json:"totalScore"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "user-3", rows[0].UserID)
	assert.Equal(t, 10, rows[0].TotalScore)
	assert.Equal(t, "user-1", rows[1].UserID)
	assert.Equal(t, 8, rows[1].TotalScore)
	assert.Equal(t, "user-2", rows[2].UserID)
	assert.Equal(t, 3, rows[2].Rank)
}

func TestUnknownRouteUsesErrorEnvelope(t *testing.T) {
	app := newTestApp(t)

	status, env := do(t, app, fiber.MethodGet, "/nowhere", "", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestHealthMetricsCountsRequests(t *testing.T) {
	app := newTestApp(t)

	status, _ := do(t, app, fiber.MethodGet, "/health/live", "", "")
	require.Equal(t, fiber.StatusOK, status)

	req := httptest.NewRequest(fiber.MethodGet, "/health/metrics", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var snap struct {
		TotalRequests int64 `json:"total_requests"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.GreaterOrEqual(t, snap.TotalRequests, int64(1))
}
