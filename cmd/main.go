package main

import (
	"net/http"
	"os"
	"time"

	"memberbase/api/handler"
	apiMiddleware "memberbase/api/middleware"
	"memberbase/api/routes"
	"memberbase/config"
	"memberbase/internal/repository"
	"memberbase/internal/service"
	"memberbase/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		logger.WithError(err).Fatal("configuration failed")
	}
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	}

	db, err := config.ConnectDB(&cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("database connection failed")
	}
	if err := config.Migrate(db); err != nil {
		logger.WithError(err).Fatal("database migration failed")
	}

	validate := validator.New()

	jwtManager := utils.JWTManager{
		Secret:   []byte(cfg.Auth.JWTSecret),
		Issuer:   cfg.Auth.Issuer,
		TokenTTL: cfg.Auth.TokenTTL,
	}

	userRepo := repository.NewUserRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	var emailSender service.EmailSender
	if sender := service.NewResendEmailSender(cfg.Email.ResendAPIKey, cfg.Email.From); sender != nil {
		emailSender = sender
	}

	userService := service.NewUserService(
		userRepo,
		auditRepo,
		emailSender,
		service.BcryptPasswordHasher{},
		service.JWTTokenIssuer{Manager: &jwtManager},
		service.UserConfig{AffiliatePrefix: cfg.Auth.AffiliatePrefix},
	)
	discountService := service.NewDiscountService(discountRepo)

	authHandler := handler.NewAuthHandler(userService, validate)
	userHandler := handler.NewUserHandler(userService, validate)
	discountHandler := handler.NewDiscountHandler(discountService, validate)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.HTTPErrorHandler = handler.HTTPErrorHandler(logger)
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	authMiddleware := apiMiddleware.AuthMiddleware{JWT: &jwtManager, Users: userRepo}
	router := routes.NewRouter(app, authHandler, userHandler, discountHandler, authMiddleware)
	router.RegisterRoutes()

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", cfg.Server.Addr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
