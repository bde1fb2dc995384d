package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/hospitalms/hospital-api/internal/model"
	apperrors "github.com/hospitalms/hospital-api/pkg/errors"
)

type stubAuthService struct {
	user  *model.User
	err   error
	calls int
}

func (s *stubAuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	return nil, nil
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*model.TokenResponse, error) {
	return nil, nil
}

func (s *stubAuthService) ResolveToken(ctx context.Context, token string) (*model.User, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func newTestRouter(svc *stubAuthService, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(svc)

	r := gin.New()
	handlers := append([]gin.HandlerFunc{m.Authenticate()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": UserFromContext(c).Username})
	})
	r.GET("/protected", handlers...)
	return r
}

func doRequest(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticateMissingHeader(t *testing.T) {
	r := newTestRouter(&stubAuthService{})

	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateBadFormat(t *testing.T) {
	r := newTestRouter(&stubAuthService{})

	w := doRequest(r, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	r := newTestRouter(&stubAuthService{err: apperrors.InvalidToken(nil)})

	w := doRequest(r, "Bearer bad-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateInactiveUser(t *testing.T) {
	r := newTestRouter(&stubAuthService{err: apperrors.UserInactive("dormant")})

	w := doRequest(r, "Bearer some-token")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// A deactivated account keeps passing on an already-cached token until the
// cache entry expires, but any token not yet cached is re-resolved and
// rejected immediately.
func TestAuthenticateDeactivationWindow(t *testing.T) {
	svc := &stubAuthService{user: &model.User{Username: "alice", Role: model.RoleUser, Active: true}}
	r := newTestRouter(svc)

	w := doRequest(r, "Bearer cached-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.calls)

	// Account deactivated after the first resolution.
	svc.err = apperrors.UserInactive("dormant")

	w = doRequest(r, "Bearer cached-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.calls)

	w = doRequest(r, "Bearer fresh-token")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 2, svc.calls)
}

func TestAuthenticateSetsUser(t *testing.T) {
	r := newTestRouter(&stubAuthService{user: &model.User{Username: "alice", Role: model.RoleUser, Active: true}})

	w := doRequest(r, "Bearer good-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

func TestRequireRoleForbidden(t *testing.T) {
	svc := &stubAuthService{user: &model.User{Username: "alice", Role: model.RoleUser, Active: true}}
	m := NewAuthMiddleware(svc)
	r := newTestRouter(svc, m.RequireRole(model.RoleAdmin))

	w := doRequest(r, "Bearer good-token")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoleAdmin(t *testing.T) {
	svc := &stubAuthService{user: &model.User{Username: "root", Role: model.RoleAdmin, Active: true}}
	m := NewAuthMiddleware(svc)
	r := newTestRouter(svc, m.RequireRole(model.RoleAdmin))

	w := doRequest(r, "Bearer good-token")
	assert.Equal(t, http.StatusOK, w.Code)
}
