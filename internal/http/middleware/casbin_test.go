package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestEnforcer creates a Casbin enforcer with the dashboard model
func createTestEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()

	modelText := `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch(r.obj, p.obj) && regexMatch(r.act, p.act)
`
	m, err := model.NewModelFromString(modelText)
	require.NoError(t, err)
	e, err := casbin.NewEnforcer(m)
	require.NoError(t, err)
	return e
}

func TestCasbinMW_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		setupEnforcer  func(t *testing.T) *casbin.Enforcer
		setupContext   func(*gin.Context)
		method         string
		path           string
		expectedStatus int
	}{
		{
			name: "missing credentials",
			setupEnforcer: func(t *testing.T) *casbin.Enforcer {
				return createTestEnforcer(t)
			},
			setupContext:   func(c *gin.Context) {},
			method:         "GET",
			path:           "/api/employees",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "customer denied on admin surface",
			setupEnforcer: func(t *testing.T) *casbin.Enforcer {
				e := createTestEnforcer(t)
				e.AddPolicy("role_admin", "/api/*", "(GET|POST|PUT|DELETE)")
				return e
			},
			setupContext: func(c *gin.Context) {
				c.Set("account_id", "2")
				c.Set("account_role", "customer")
			},
			method:         "GET",
			path:           "/api/employees",
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "admin allowed by wildcard policy",
			setupEnforcer: func(t *testing.T) *casbin.Enforcer {
				e := createTestEnforcer(t)
				e.AddPolicy("role_admin", "/api/*", "(GET|POST|PUT|DELETE)")
				return e
			},
			setupContext: func(c *gin.Context) {
				c.Set("account_id", "1")
				c.Set("account_role", "admin")
			},
			method:         "POST",
			path:           "/api/employees",
			expectedStatus: http.StatusOK,
		},
		{
			name: "customer allowed on own profile route",
			setupEnforcer: func(t *testing.T) *casbin.Enforcer {
				e := createTestEnforcer(t)
				e.AddPolicy("role_customer", "/api/usermanagement/me", "GET")
				return e
			},
			setupContext: func(c *gin.Context) {
				c.Set("account_id", "2")
				c.Set("account_role", "customer")
			},
			method:         "GET",
			path:           "/api/usermanagement/me",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := NewCasbinMW(tt.setupEnforcer(t))

			router := gin.New()
			router.Use(func(c *gin.Context) {
				tt.setupContext(c)
				c.Next()
			})
			router.Handle(tt.method, tt.path, mw.Enforce(), func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"ok": true})
			})

			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code, "body: %s", w.Body.String())
		})
	}
}
