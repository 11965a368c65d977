package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"vitrine/internal/config"
	"vitrine/internal/database"
	"vitrine/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Port:              "8080",
		Env:               "test",
		SessionTTLHours:   720,
		UploadDir:         t.TempDir(),
		UploadMaxSizeMB:   10,
		UploadImageMaxDim: 1080,
		PrecoMensal:       2990,
		Preco3Meses:       6990,
		Preco6Meses:       11990,
		Preco12Meses:      19990,
		PixProvider:       "simulado",
		CheckoutHost:      "https://pay.vitrine.test",
		IABaseURL:         "http://127.0.0.1:0",
		IAModel:           "gpt-4o-mini",
		IAMaxTokens:       256,
	}
}

// newTestServer wires a full server against in-memory SQLite and miniredis
// and returns a Fiber app with the production routes registered.
func newTestServer(t *testing.T, cfg *config.Config) (*fiber.App, *Server) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	s, err := NewServerWithDeps(cfg, db, rdb)
	require.NoError(t, err)

	app := fiber.New()
	s.SetupRoutes(app)
	return app, s
}

// doJSON performs a JSON request against the test app. An empty token omits
// the session header.
func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(SessionTokenHeader, token)
	}

	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// promoteToAdmin flips the admin flag directly in the store. Sessions pick it
// up on the next request since the auth gate reloads the user every call.
func promoteToAdmin(t *testing.T, s *Server, login string) {
	t.Helper()
	require.NoError(t, s.db.Model(&models.User{}).
		Where("login = ?", login).
		Update("is_admin", true).Error)
}

// signupAndLogin creates an account through the API and returns its token.
func signupAndLogin(t *testing.T, app *fiber.App, email, login string) string {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/create-user", fiber.Map{
		"email": email,
		"login": login,
		"senha": "segredo",
		"plano": "mensal",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/login", fiber.Map{
		"email": email,
		"senha": "segredo",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}
