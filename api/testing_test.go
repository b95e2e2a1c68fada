package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rpupo63/student-directory-backend/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDatabase opens a seeded in-memory store.
func newTestDatabase(t *testing.T) database.Database {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	d := database.New(db)
	require.NoError(t, d.Migrate())
	require.NoError(t, d.Seed())
	return d
}

// newTestRouter mounts the full route tree over a seeded store.
func newTestRouter(t *testing.T, extraConfig map[string]string) (http.Handler, database.Database) {
	t.Helper()

	d := newTestDatabase(t)
	c := map[string]string{}
	for key, value := range extraConfig {
		c[key] = value
	}
	router := newRouter(d, withConfig(c), withStartupTime(time.Now()))
	return router, d
}

// doRequest runs one request through the router, JSON-encoding body when
// present.
func doRequest(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// decodeBody unmarshals a recorded JSON response into target.
func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), target))
}

// loginAs returns the user id the login endpoint reports for the given
// credentials.
func loginAs(t *testing.T, router http.Handler, username, password string) uint {
	t.Helper()

	rr := doRequest(t, router, http.MethodPost, "/api/login", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var response struct {
		Success bool   `json:"success"`
		UserID  uint   `json:"user_id"`
		Token   string `json:"token"`
	}
	decodeBody(t, rr, &response)
	require.True(t, response.Success)
	require.NotZero(t, response.UserID)
	return response.UserID
}
