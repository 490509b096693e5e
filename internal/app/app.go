package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dilshan221/bakery-management/internal/config"
	httpx "github.com/Dilshan221/bakery-management/internal/http"
	"github.com/Dilshan221/bakery-management/internal/http/handlers"
	"github.com/Dilshan221/bakery-management/internal/http/middleware"
	"github.com/Dilshan221/bakery-management/internal/infrastructure/auth"
	"github.com/Dilshan221/bakery-management/internal/infrastructure/database"
	"github.com/Dilshan221/bakery-management/internal/infrastructure/notifications"
	"github.com/Dilshan221/bakery-management/internal/infrastructure/repositories"
	"github.com/Dilshan221/bakery-management/internal/services"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}
	cas, err := auth.NewCasbinService(gdb, cfg.CasbinModelPath)
	if err != nil {
		return err
	}
	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return err
	}

	// Infrastructure services
	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	notificationSvc := notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom)

	// Repositories
	productRepo := repositories.NewProductRepository(gdb)
	employeeRepo := repositories.NewEmployeeRepository(gdb)
	attendanceRepo := repositories.NewAttendanceRepository(gdb)
	accountRepo := repositories.NewAccountRepository(gdb)
	sessionRepo := repositories.NewSessionRepository(rdb, cfg.RefreshTTL)

	// Services
	otpConfig := services.OTPConfig{
		TTL:          cfg.OTP_TTL,
		MaxAttempts:  cfg.OTP_MaxAttempts,
		LiveDispatch: cfg.IsProduction() && cfg.TwilioConfigured(),
	}
	otpSvc := services.NewOTPService(employeeRepo, notificationSvc, otpConfig)
	accountSvc := services.NewAccountService(accountRepo, sessionRepo, passwordSvc, tokenSvc, cfg.RefreshTTL, cfg.AccessTTL)

	// Handlers
	productH := handlers.NewProductHandlers(productRepo)
	employeeH := handlers.NewEmployeeHandlers(employeeRepo, otpSvc)
	attendanceH := handlers.NewAttendanceHandlers(attendanceRepo, employeeRepo)
	accountH := handlers.NewAccountHandlers(accountSvc, accountRepo, passwordSvc)

	// Middleware
	jwtMW := middleware.NewAuthMW(tokenSvc, sessionRepo)
	casbinMW := middleware.NewCasbinMW(cas.E)

	r := httpx.BuildRouter(productH, employeeH, attendanceH, accountH, jwtMW, casbinMW)

	policies, _ := cas.E.GetPolicy()
	if len(policies) == 0 {
		cas.E.AddPolicy("role_admin", "/api/*", "(GET|POST|PUT|DELETE)")
		cas.E.AddPolicy("role_customer", "/api/usermanagement/me", "GET")
		cas.E.AddPolicy("role_customer", "/api/usermanagement/logout", "POST")
		_ = cas.E.SavePolicy()
		log.Println("casbin: seeded default policies")
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
