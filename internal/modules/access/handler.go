package access

import (
	"net/http"

	"anoa.com/livestockhub/internal/modules/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RouteCheckResponse struct {
	Path     string   `json:"path"`
	Outcome  Outcome  `json:"outcome"`
	Redirect string   `json:"redirect,omitempty"`
	Roles    []string `json:"roles"`
}

type Handler struct {
	gate *Gate
	mw   *Middleware
}

func NewHandler(gate *Gate, mw *Middleware) *Handler {
	return &Handler{gate: gate, mw: mw}
}

// CheckRoute answers GET /api/routes/check?path=... for the page router.
// It expects OptionalAuth to have run.
func (h *Handler) CheckRoute(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
		return
	}

	subj := Subject{}
	if sess, ok := session.FromContext(c); ok {
		subj.Authenticated = true
		subj.UserID = sess.UserID
		subj.Roles = h.mw.Roles(c)
	}

	decision := h.gate.Decide(c.Request.Context(), path, subj)

	roles := make([]string, 0, len(subj.Roles))
	for _, r := range subj.Roles.Slice() {
		roles = append(roles, string(r))
	}

	c.JSON(http.StatusOK, RouteCheckResponse{
		Path:     normalize(path),
		Outcome:  decision.Outcome,
		Redirect: decision.Redirect,
		Roles:    roles,
	})
}

func userIDOf(s *session.Session) uuid.UUID {
	if s == nil {
		return uuid.Nil
	}
	return s.UserID
}
