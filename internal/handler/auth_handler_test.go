package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"revu/config"
	"revu/internal/router"
	"revu/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:      "0",
			Env:       "test",
			RateLimit: 1000,
		},
		Session: config.SessionConfig{
			TTL:        time.Hour,
			CookieName: "revu_session",
		},
	}
	db := testutil.NewDB(t)
	engine, _ := router.Setup(cfg, db, nil, zerolog.Nop())
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func register(t *testing.T, engine *gin.Engine, username, role string) []*http.Cookie {
	t.Helper()
	rec := doJSON(t, engine, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username":         username,
		"email":            username + "@example.com",
		"password":         "password123",
		"confirm_password": "password123",
		"name":             username,
		"role":             role,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func TestRegisterIssuesSession(t *testing.T) {
	engine := newServer(t)

	cookies := register(t, engine, "alice", "influencer")
	require.Equal(t, "revu_session", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	rec := doJSON(t, engine, http.MethodGet, "/api/v1/auth/me", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	var me map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "alice", me["username"])
	assert.NotContains(t, me, "password_hash")

	rec = doJSON(t, engine, http.MethodPost, "/api/v1/auth/logout", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	// the session is revoked server-side, not just cookie-cleared
	rec = doJSON(t, engine, http.MethodGet, "/api/v1/auth/me", nil, cookies)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin(t *testing.T) {
	engine := newServer(t)
	register(t, engine, "alice", "influencer")

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "alice",
		"password": "wrong-password",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "alice",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Result().Cookies())
}

func TestMeRequiresSession(t *testing.T) {
	engine := newServer(t)
	rec := doJSON(t, engine, http.MethodGet, "/api/v1/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/api/v1/auth/me", nil, []*http.Cookie{
		{Name: "revu_session", Value: "not-a-real-token"},
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestApplicationFlowOverHTTP(t *testing.T) {
	engine := newServer(t)
	advCookies := register(t, engine, "brand", "advertiser")
	infCookies := register(t, engine, "alice", "influencer")

	// influencers cannot create campaigns
	rec := doJSON(t, engine, http.MethodPost, "/api/v1/campaigns", gin.H{
		"title":       "nope",
		"description": "nope",
		"category":    "restaurant",
		"capacity":    1,
		"start_date":  time.Now().Format(time.RFC3339),
		"end_date":    time.Now().AddDate(0, 1, 0).Format(time.RFC3339),
	}, infCookies)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, engine, http.MethodPost, "/api/v1/campaigns", gin.H{
		"title":       "Spring tasting",
		"description": "Visit and review our new menu",
		"category":    "restaurant",
		"capacity":    3,
		"start_date":  time.Now().Format(time.RFC3339),
		"end_date":    time.Now().AddDate(0, 1, 0).Format(time.RFC3339),
	}, advCookies)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var campaign struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &campaign))
	require.NotZero(t, campaign.ID)

	rec = doJSON(t, engine, http.MethodPost, "/api/v1/applications", gin.H{
		"campaign_id": campaign.ID,
		"message":     "I love this place",
	}, infCookies)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var app struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &app))

	// unknown status strings are rejected before the lifecycle runs
	rec = doJSON(t, engine, http.MethodPatch, "/api/v1/applications/"+strconv.FormatUint(uint64(app.ID), 10)+"/status", gin.H{
		"status": "BOGUS",
	}, advCookies)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// applying again to the same campaign is rejected
	rec = doJSON(t, engine, http.MethodPost, "/api/v1/applications", gin.H{
		"campaign_id": campaign.ID,
	}, infCookies)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// advertisers cannot apply
	rec = doJSON(t, engine, http.MethodPost, "/api/v1/applications", gin.H{
		"campaign_id": campaign.ID,
	}, advCookies)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/api/v1/applications/me", nil, infCookies)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	assert.Len(t, mine, 1)
}
