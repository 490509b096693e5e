package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/Dilshan221/bakery-management/internal/http/handlers"
	"github.com/Dilshan221/bakery-management/internal/http/middleware"
)

func BuildRouter(
	ph *handlers.ProductHandlers,
	eh *handlers.EmployeeHandlers,
	th *handlers.AttendanceHandlers,
	ah *handlers.AccountHandlers,
	jwtmw *middleware.AuthMW,
	cb *middleware.CasbinMW,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	ok := func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) }
	r.GET("/health", ok)
	r.GET("/api/health", ok)

	api := r.Group("/api")

	// Public storefront and auth endpoints
	api.GET("/products", ph.List)
	api.GET("/products/:id", ph.GetByID)
	api.POST("/usermanagement/register", ah.Register)
	api.POST("/usermanagement/login", ah.Login)
	api.POST("/usermanagement/refresh", ah.Refresh)

	// Authenticated account endpoints; customer access comes from the
	// seeded role_customer policies, admin from the /api/* wildcard
	me := api.Group("/usermanagement").Use(jwtmw.WithJWT(), cb.Enforce())
	me.GET("/me", ah.Me)
	me.POST("/logout", ah.Logout)

	// Admin dashboard surface
	adm := api.Group("/").Use(jwtmw.WithJWT(), cb.Enforce())

	adm.POST("/products", ph.Create)
	adm.PUT("/products/:id", ph.Update)
	adm.DELETE("/products/:id", ph.Delete)

	adm.POST("/employees", eh.Create)
	adm.GET("/employees", eh.List)
	adm.PUT("/employees/:id", eh.Update)
	adm.DELETE("/employees/:id", eh.Delete)
	adm.POST("/employees/:id/otp/send", eh.SendOTP)
	adm.POST("/employees/:id/otp/verify", eh.VerifyOTP)

	adm.POST("/attendance", th.Mark)
	adm.GET("/attendance", th.List)
	adm.GET("/attendance/user/:employeeId", th.ListByEmployee)
	adm.PUT("/attendance/:id", th.Update)
	adm.DELETE("/attendance/:id", th.Delete)

	adm.GET("/usermanagement/all", ah.List)
	adm.GET("/usermanagement/:id", ah.GetByID)
	adm.PUT("/usermanagement/:id", ah.Update)
	adm.DELETE("/usermanagement/:id", ah.Delete)

	return r
}
