package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkovacev/apartment-manager/internal/config"
	"github.com/dkovacev/apartment-manager/internal/model"
	"github.com/dkovacev/apartment-manager/internal/utils"
)

// fakeUserStore serves users from a map keyed by email.
type fakeUserStore struct {
	byEmail map[string]model.User
}

func (f *fakeUserStore) Create(_ context.Context, email, _, _ string, _ int) (uint64, error) {
	return 0, sql.ErrConnDone // registration is not under test here
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, sql.ErrNoRows
}

// fakeTokenStore records every revocation it is asked to perform.
type fakeTokenStore struct {
	validHashes   map[string]uint64
	storedHashes  []string
	revokedHashes []string
	revokedAllFor []uint64
}

func (f *fakeTokenStore) StoreRefresh(_ context.Context, _ uint64, hash string, _ time.Time) error {
	f.storedHashes = append(f.storedHashes, hash)
	return nil
}

func (f *fakeTokenStore) ValidateRefresh(_ context.Context, hash string) (uint64, error) {
	uid, ok := f.validHashes[hash]
	if !ok {
		return 0, sql.ErrNoRows
	}
	return uid, nil
}

func (f *fakeTokenStore) RevokeByHash(_ context.Context, hash string) error {
	f.revokedHashes = append(f.revokedHashes, hash)
	return nil
}

func (f *fakeTokenStore) RevokeAllForUser(_ context.Context, userID uint64) error {
	f.revokedAllFor = append(f.revokedAllFor, userID)
	return nil
}

func testAuthConfig() config.Config {
	return config.Config{
		JWTSecret:      "auth-test-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 30,
		BcryptCost:     4, // minimal cost keeps the test fast
	}
}

func postJSON(t *testing.T, h func(echo.Context) error, path, body, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

// An unknown email and a wrong password must be indistinguishable to the
// caller, or the endpoint leaks which accounts exist.
func TestLoginFailuresAreUniform(t *testing.T) {
	cfg := testAuthConfig()
	hash, err := utils.HashPassword("right-password", cfg.BcryptCost)
	require.NoError(t, err)

	h := NewAuthHandler(cfg, &fakeUserStore{byEmail: map[string]model.User{
		"alice@example.com": {ID: 1, Email: "alice@example.com", PasswordHash: hash, Role: model.RoleUser},
	}}, &fakeTokenStore{})

	unknown := postJSON(t, h.Login, "/v1/auth/login",
		`{"email":"nobody@example.com","password":"whatever"}`, "")
	wrongPass := postJSON(t, h.Login, "/v1/auth/login",
		`{"email":"alice@example.com","password":"wrong-password"}`, "")

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, unknown.Body.String(), wrongPass.Body.String())
}

func TestLoginSucceedsAndStoresRefresh(t *testing.T) {
	cfg := testAuthConfig()
	hash, err := utils.HashPassword("right-password", cfg.BcryptCost)
	require.NoError(t, err)

	tokens := &fakeTokenStore{}
	h := NewAuthHandler(cfg, &fakeUserStore{byEmail: map[string]model.User{
		"alice@example.com": {ID: 1, Email: "alice@example.com", PasswordHash: hash, Role: model.RoleUser},
	}}, tokens)

	rec := postJSON(t, h.Login, "/v1/auth/login",
		`{"email":"Alice@Example.com","password":"right-password"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, tokens.storedHashes, 1)
}

func TestLogoutSingleSession(t *testing.T) {
	tokens := &fakeTokenStore{validHashes: map[string]uint64{
		utils.HashRefreshRaw("raw-refresh"): 7,
	}}
	h := NewAuthHandler(testAuthConfig(), &fakeUserStore{}, tokens)

	rec := postJSON(t, h.Logout, "/v1/auth/logout", `{"refresh_token":"raw-refresh"}`, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{utils.HashRefreshRaw("raw-refresh")}, tokens.revokedHashes)
	assert.Empty(t, tokens.revokedAllFor)

	rec = postJSON(t, h.Logout, "/v1/auth/logout", `{"refresh_token":"bogus"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// A bearer access token with no refresh token in the body revokes every
// session of that user.
func TestLogoutAllSessionsWithBearer(t *testing.T) {
	cfg := testAuthConfig()
	access, err := utils.NewAccessToken(cfg.JWTSecret, 7, model.RoleUser, cfg.AccessTTLMin)
	require.NoError(t, err)

	tokens := &fakeTokenStore{}
	h := NewAuthHandler(cfg, &fakeUserStore{}, tokens)

	rec := postJSON(t, h.Logout, "/v1/auth/logout", `{}`, "Bearer "+access.Token)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []uint64{7}, tokens.revokedAllFor)
	assert.Empty(t, tokens.revokedHashes)
}

func TestLogoutWithoutCredentials(t *testing.T) {
	tokens := &fakeTokenStore{}
	h := NewAuthHandler(testAuthConfig(), &fakeUserStore{}, tokens)

	rec := postJSON(t, h.Logout, "/v1/auth/logout", `{}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// A token signed with another secret must not revoke anything.
	forged, err := utils.NewAccessToken("some-other-secret", 7, model.RoleUser, 15)
	require.NoError(t, err)
	rec = postJSON(t, h.Logout, "/v1/auth/logout", `{}`, "Bearer "+forged.Token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, tokens.revokedAllFor)
}
