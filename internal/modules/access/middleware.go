package access

import (
	"net/http"
	"strings"

	"anoa.com/livestockhub/internal/modules/session"
	"anoa.com/livestockhub/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const rolesContextKey = "roles"

type Middleware struct {
	issuer     *session.TokenIssuer
	store      *session.Store
	resolver   *RoleResolver
	onboarding OnboardingLookup
	log        *zap.Logger
}

func NewMiddleware(issuer *session.TokenIssuer, store *session.Store, resolver *RoleResolver, onboarding OnboardingLookup, log *zap.Logger) *Middleware {
	if log == nil {
		log = zap.NewNop()
	}
	return &Middleware{issuer: issuer, store: store, resolver: resolver, onboarding: onboarding, log: log}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}

	// Fallback to query parameter "token" (useful for WebSockets)
	return c.Query("token")
}

// authenticate returns the live session behind the request token, or nil.
func (m *Middleware) authenticate(c *gin.Context) *session.Session {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return nil
	}

	sess, err := m.issuer.Parse(tokenString)
	if err != nil {
		return nil
	}

	revoked, err := m.store.IsRevoked(c.Request.Context(), sess.ID)
	if err != nil {
		m.log.Warn("revocation check failed", zap.String("session_id", sess.ID), zap.Error(err))
		return nil
	}
	if revoked {
		return nil
	}
	return sess
}

// RequireAuth rejects requests without a live session with a redirect to the
// sign-in page.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := m.authenticate(c)
		if sess == nil {
			response.Redirect(c, http.StatusUnauthorized, "authorization required", PathAuth)
			return
		}
		session.Set(c, sess)
		c.Next()
	}
}

// OptionalAuth attaches the session when a valid token is present.
func (m *Middleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess := m.authenticate(c); sess != nil {
			session.Set(c, sess)
		}
		c.Next()
	}
}

// Roles resolves and memoizes the role set of the request session.
func (m *Middleware) Roles(c *gin.Context) RoleSet {
	if v, ok := c.Get(rolesContextKey); ok {
		if set, ok := v.(RoleSet); ok {
			return set
		}
	}
	sess, ok := session.FromContext(c)
	if !ok {
		return NewRoleSet()
	}
	set := m.resolver.Resolve(c.Request.Context(), sess)
	c.Set(rolesContextKey, set)
	return set
}

// RequireFeature must run after RequireAuth.
func (m *Middleware) RequireFeature(f Feature) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.Roles(c).Intersects(AllowedRoles(f)) {
			response.Redirect(c, http.StatusForbidden, "you do not have access to this feature", PathDashboard)
			return
		}
		c.Next()
	}
}

// RequireOnboarding blocks farmers that have not finished onboarding.
func (m *Middleware) RequireOnboarding() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session.FromContext(c)
		state := EvaluateOnboarding(c.Request.Context(), OnboardingInput{
			UserID:  userIDOf(sess),
			Present: ok,
			Roles:   m.Roles(c),
			Path:    c.Request.URL.Path,
		}, m.onboarding)

		if state != OnboardingClear {
			response.Redirect(c, http.StatusForbidden, "onboarding required", PathOnboarding)
			return
		}
		c.Next()
	}
}

// RolesFromContext returns the role set resolved earlier in the chain.
func RolesFromContext(c *gin.Context) RoleSet {
	if v, ok := c.Get(rolesContextKey); ok {
		if set, ok := v.(RoleSet); ok {
			return set
		}
	}
	return NewRoleSet()
}
