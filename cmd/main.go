package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"clinic-service/internal/handler"
	"clinic-service/internal/middleware"
	"clinic-service/internal/tenant"
	"clinic-service/pkg/config"
	"clinic-service/pkg/database"
	"clinic-service/pkg/jwtutil"
	"clinic-service/pkg/logger"
	"clinic-service/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load("clinic-service")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: cfg.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting clinic service...", cfg.LogConfig()...)

	// Initialize the registry (control-plane) database
	registryDB, err := database.InitDB(&cfg.RegistryDB)
	if err != nil {
		log.Fatal("Failed to initialize registry database", zap.Error(err))
	}
	if err := database.MigrateModels(&tenant.Tenant{}); err != nil {
		log.Fatal("Failed to migrate registry models", zap.Error(err))
	}
	log.Info("Registry database connection established")

	// Tenant core: registry store, token verifier, resolver, router
	registry := tenant.NewRegistry(registryDB)
	jwt := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:      cfg.JWT.SigningKey,
		ExpirationHours: cfg.JWT.ExpirationHours,
	})
	resolver := tenant.NewResolver(jwt, registry)
	router := tenant.NewRouter(&cfg.TenantPool)
	defer router.Close()

	// Initialize Echo framework
	e := echo.New()
	e.HideBanner = true

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no tenant context required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)
	e.POST("/api/tenant/login", handler.TenantLogin(registry, router, jwt))

	// Tenant-scoped routes - every request below binds its own tenant's
	// database through the tenant middleware
	api := e.Group("/api")
	api.Use(middleware.TenantMiddleware(resolver, router))

	patients := api.Group("/patients")
	patients.GET("", handler.ListPatients)
	patients.POST("", handler.CreatePatient)
	patients.GET("/:id", handler.GetPatient)
	patients.PUT("/:id", handler.UpdatePatient)
	patients.DELETE("/:id", handler.DeletePatient)

	api.GET("/doctors-list", handler.ListDoctors)
	api.GET("/patients-list", handler.ListPatientNames)

	appointments := api.Group("/appointments")
	appointments.GET("", handler.ListAppointments)
	appointments.POST("", handler.CreateAppointment)
	appointments.GET("/:id", handler.GetAppointment)
	appointments.PUT("/:id", handler.UpdateAppointment)
	appointments.DELETE("/:id", handler.DeleteAppointment)

	prescriptions := api.Group("/prescriptions")
	prescriptions.GET("", handler.ListPrescriptions)
	prescriptions.POST("", handler.CreatePrescription)
	prescriptions.GET("/:id", handler.GetPrescription)
	prescriptions.PUT("/:id", handler.UpdatePrescription)
	prescriptions.DELETE("/:id", handler.DeletePrescription)
	api.GET("/patients/:patient_id/prescriptions", handler.ListPrescriptionsByPatient)

	drugs := api.Group("/drugs")
	drugs.GET("", handler.ListDrugChart)
	drugs.POST("", handler.CreateDrugChart)
	drugs.GET("/:id", handler.GetDrugChart)
	drugs.PUT("/:id", handler.UpdateDrugChart)
	drugs.PATCH("/:id", handler.UpdateDrugChart)
	drugs.DELETE("/:id", handler.DeleteDrugChart)

	tpr := api.Group("/tpr")
	tpr.GET("", handler.ListTPR)
	tpr.POST("", handler.CreateTPR)
	tpr.GET("/:id", handler.GetTPR)
	tpr.PUT("/:id", handler.UpdateTPR)
	tpr.PATCH("/:id", handler.UpdateTPR)
	tpr.DELETE("/:id", handler.DeleteTPR)

	treatments := api.Group("/treatments")
	treatments.GET("", handler.ListTreatments)
	treatments.POST("", handler.CreateTreatment)
	treatments.GET("/:id", handler.GetTreatment)
	treatments.PUT("/:id", handler.UpdateTreatment)
	treatments.PATCH("/:id", handler.UpdateTreatment)
	treatments.DELETE("/:id", handler.DeleteTreatment)

	api.GET("/current-ipd", handler.ListCurrentIPD)
	api.DELETE("/current-ipd/:id", handler.DeleteCurrentIPD)

	api.GET("/users", handler.ListUsers)

	// Start server
	go func() {
		log.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt, then drain in-flight requests before closing the
	// tenant connection pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
}
