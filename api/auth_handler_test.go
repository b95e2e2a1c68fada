package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resultResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func TestRegisterLoginProfileFlow(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rr := doRequest(t, router, http.MethodPost, "/api/register", map[string]any{
		"username": "newcomer",
		"password": "secret1",
		"email":    "newcomer@example.com",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var created resultResponse
	decodeBody(t, rr, &created)
	assert.True(t, created.Success)
	assert.Equal(t, "Account created successfully! Please log in.", created.Message)

	userID := loginAs(t, router, "newcomer", "secret1")

	rr = doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/profile/%d", userID), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var profile map[string]any
	decodeBody(t, rr, &profile)
	assert.Nil(t, profile["full_name"])
	assert.Nil(t, profile["branch"])
	assert.Nil(t, profile["institute_name"])
	assert.Equal(t, "newcomer@example.com", profile["email"])
	assert.Equal(t, []any{}, profile["skills"])
	assert.Equal(t, []any{}, profile["projects"])
	assert.Equal(t, fmt.Sprintf("https://i.pravatar.cc/100?img=%d", userID), profile["image"])
}

func TestRegisterValidation(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	t.Run("missing required fields", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodPost, "/api/register", map[string]any{
			"username": "halfway",
		})
		require.Equal(t, http.StatusBadRequest, rr.Code)

		var response resultResponse
		decodeBody(t, rr, &response)
		assert.False(t, response.Success)
		assert.Equal(t, "Username, password, and email are required.", response.Message)
	})

	t.Run("short password", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodPost, "/api/register", map[string]any{
			"username": "halfway",
			"password": "tiny",
			"email":    "halfway@example.com",
		})
		require.Equal(t, http.StatusBadRequest, rr.Code)

		var response resultResponse
		decodeBody(t, rr, &response)
		assert.Equal(t, "Password must be at least 6 characters.", response.Message)
	})
}

func TestRegisterDuplicates(t *testing.T) {
	router, d := newTestRouter(t, nil)

	rr := doRequest(t, router, http.MethodPost, "/api/register", map[string]any{
		"username": "first",
		"password": "secret1",
		"email":    "first@example.com",
		"phone":    "+911234500000",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	cases := []struct {
		name    string
		payload map[string]any
		message string
	}{
		{
			name: "username taken",
			payload: map[string]any{
				"username": "first",
				"password": "secret1",
				"email":    "other@example.com",
			},
			message: "Username already taken.",
		},
		{
			name: "email registered",
			payload: map[string]any{
				"username": "second",
				"password": "secret1",
				"email":    "first@example.com",
			},
			message: "Email already registered.",
		},
		{
			name: "phone registered",
			payload: map[string]any{
				"username": "second",
				"password": "secret1",
				"email":    "second@example.com",
				"phone":    "+911234500000",
			},
			message: "Phone number already registered.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := doRequest(t, router, http.MethodPost, "/api/register", tc.payload)
			require.Equal(t, http.StatusBadRequest, rr.Code)

			var response resultResponse
			decodeBody(t, rr, &response)
			assert.Equal(t, tc.message, response.Message)
		})
	}

	// None of the rejected attempts left a row behind.
	user, err := d.UserRepo().FindByUsername("second")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestRegisterAttachesKnownSkillsOnly(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rr := doRequest(t, router, http.MethodPost, "/api/register", map[string]any{
		"username":       "skilled",
		"password":       "secret1",
		"email":          "skilled@example.com",
		"institute_name": "IIT Bombay",
		"skills": []map[string]any{
			{"name": "Python", "rating": 4},
			{"name": "Underwater Basket Weaving", "rating": 5},
			{"name": "HTML", "rating": 9},
		},
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	userID := loginAs(t, router, "skilled", "secret1")
	rr = doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/profile/%d", userID), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var profile struct {
		InstituteName *string `json:"institute_name"`
		Skills        []struct {
			Name   string `json:"name"`
			Rating int    `json:"rating"`
		} `json:"skills"`
	}
	decodeBody(t, rr, &profile)

	require.NotNil(t, profile.InstituteName)
	assert.Equal(t, "IIT Bombay", *profile.InstituteName)

	ratings := map[string]int{}
	for _, s := range profile.Skills {
		ratings[s.Name] = s.Rating
	}
	// The unknown skill is dropped and the out-of-range rating clamped.
	assert.Equal(t, map[string]int{"Python": 4, "HTML": 5}, ratings)
}

func TestRegisterCollapsesRepeatedSkillNames(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rr := doRequest(t, router, http.MethodPost, "/api/register", map[string]any{
		"username": "repeater",
		"password": "secret1",
		"email":    "repeater@example.com",
		"skills": []map[string]any{
			{"name": "Python", "rating": 3},
			{"name": "Python", "rating": 5},
		},
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	userID := loginAs(t, router, "repeater", "secret1")
	rr = doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/profile/%d", userID), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var profile struct {
		Skills []struct {
			Name   string `json:"name"`
			Rating int    `json:"rating"`
		} `json:"skills"`
	}
	decodeBody(t, rr, &profile)

	// The repeated name stores one row, carrying the last rating given.
	require.Len(t, profile.Skills, 1)
	assert.Equal(t, "Python", profile.Skills[0].Name)
	assert.Equal(t, 5, profile.Skills[0].Rating)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	t.Run("wrong password", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodPost, "/api/login", map[string]string{
			"username": "lakshmi",
			"password": "wrong",
		})
		require.Equal(t, http.StatusUnauthorized, rr.Code)

		var response resultResponse
		decodeBody(t, rr, &response)
		assert.Equal(t, "Invalid username or password.", response.Message)
	})

	t.Run("unknown user", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodPost, "/api/login", map[string]string{
			"username": "nobody",
			"password": "secret1",
		})
		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodPost, "/api/login", map[string]string{
			"username": "lakshmi",
		})
		require.Equal(t, http.StatusBadRequest, rr.Code)

		var response resultResponse
		decodeBody(t, rr, &response)
		assert.Equal(t, "Username and password required", response.Message)
	})
}

func TestLoginIssuesUsableToken(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rr := doRequest(t, router, http.MethodPost, "/api/login", map[string]string{
		"username": "lakshmi",
		"password": "123",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var response struct {
		UserID uint   `json:"user_id"`
		Token  string `json:"token"`
	}
	decodeBody(t, rr, &response)
	require.NotEmpty(t, response.Token)

	claimedID, err := parseToken([]byte(defaultJWTSecret), response.Token)
	require.NoError(t, err)
	assert.Equal(t, response.UserID, claimedID)
}
