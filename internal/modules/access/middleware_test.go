package access

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/livestockhub/internal/entity"
	"anoa.com/livestockhub/internal/modules/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	router  *gin.Engine
	issuer  *session.TokenIssuer
	store   *session.Store
	roles   *fakeRoles
	onboard *fakeOnboarding
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := &harness{
		issuer:  session.NewTokenIssuer("test-secret", time.Hour),
		store:   session.NewStore(nil),
		roles:   &fakeRoles{roles: map[uuid.UUID][]entity.Role{}},
		onboard: &fakeOnboarding{flags: map[uuid.UUID]bool{}},
	}
	mw := NewMiddleware(h.issuer, h.store, NewRoleResolver(h.roles, nil, 0, nil), h.onboard, nil)
	handler := NewHandler(NewGate(false, h.onboard), mw)

	r := gin.New()
	r.GET("/api/routes/check", mw.OptionalAuth(), handler.CheckRoute)

	farm := r.Group("/api/animals", mw.RequireAuth(), mw.RequireFeature(FeatureFarm), mw.RequireOnboarding())
	farm.GET("", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	admin := r.Group("/api/admin", mw.RequireAuth(), mw.RequireFeature(FeatureAdmin))
	admin.GET("/users", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	h.router = r
	return h
}

func (h *harness) user(t *testing.T, onboarded bool, roles ...entity.Role) (uuid.UUID, string) {
	t.Helper()
	id := uuid.New()
	h.roles.roles[id] = roles
	h.onboard.flags[id] = onboarded
	token, _, err := h.issuer.Issue(id, nil)
	require.NoError(t, err)
	return id, token
}

func (h *harness) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRequireAuth_NoToken(t *testing.T) {
	h := newHarness(t)

	w := h.get("/api/animals", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "/auth", w.Header().Get("Location"))
	assert.Equal(t, "/auth", decode(t, w)["redirect"])
}

func TestRequireAuth_RevokedSession(t *testing.T) {
	h := newHarness(t)
	_, token := h.user(t, true, entity.RoleFarmer)
	sess, err := h.issuer.Parse(token)
	require.NoError(t, err)
	require.NoError(t, h.store.Revoke(t.Context(), sess))

	w := h.get("/api/animals", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireFeature_NonAdminRedirectsToDashboard(t *testing.T) {
	h := newHarness(t)
	_, token := h.user(t, true, entity.RoleFarmer)

	w := h.get("/api/admin/users", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "/dashboard", decode(t, w)["redirect"])

	_, adminToken := h.user(t, true, entity.RoleAdmin)
	assert.Equal(t, http.StatusOK, h.get("/api/admin/users", adminToken).Code)
}

func TestRequireOnboarding_FarmerBlockedUntilComplete(t *testing.T) {
	h := newHarness(t)
	id, token := h.user(t, false, entity.RoleFarmer)

	w := h.get("/api/animals", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "/onboarding", decode(t, w)["redirect"])

	h.onboard.flags[id] = true
	assert.Equal(t, http.StatusOK, h.get("/api/animals", token).Code)
}

func TestCheckRoute(t *testing.T) {
	h := newHarness(t)
	_, farmer := h.user(t, false, entity.RoleFarmer)
	_, vet := h.user(t, false, entity.RoleVeterinaryOfficer)

	tests := []struct {
		name     string
		path     string
		token    string
		outcome  string
		redirect string
	}{
		{"anonymous dashboard", "/dashboard", "", "redirect", "/auth"},
		{"anonymous landing", "/", "", "allow", ""},
		{"farmer not onboarded", "/dashboard", farmer, "redirect", "/onboarding"},
		{"farmer onboarding page", "/onboarding", farmer, "allow", ""},
		{"farmer admin page", "/admin", farmer, "redirect", "/dashboard"},
		{"farmer admin page upper case", "/ADMIN/", farmer, "redirect", "/dashboard"},
		{"farmer admin page dot segments", "/admin/../admin/users", farmer, "redirect", "/dashboard"},
		{"anonymous unknown page", "/no-such-page", "", "redirect", "/auth"},
		{"vet on vet page", "/vet/cases", vet, "allow", ""},
		{"vet skips onboarding", "/dashboard", vet, "allow", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := h.get("/api/routes/check?path="+tt.path, tt.token)
			require.Equal(t, http.StatusOK, w.Code)
			body := decode(t, w)
			assert.Equal(t, tt.outcome, body["outcome"])
			if tt.redirect == "" {
				assert.Nil(t, body["redirect"])
			} else {
				assert.Equal(t, tt.redirect, body["redirect"])
			}
		})
	}

	assert.Equal(t, http.StatusBadRequest, h.get("/api/routes/check", "").Code)
}
