package main

import (
	"context"
	"ember-emr-service/internal/app/config"
	"ember-emr-service/internal/app/delivery/http/controllers"
	"ember-emr-service/internal/app/delivery/http/middlewares"
	"ember-emr-service/internal/app/delivery/http/routers"
	"ember-emr-service/internal/app/drivers/logger"
	"ember-emr-service/internal/app/services/core/dashboard"
	"ember-emr-service/internal/app/services/fhirclient"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// controllerTimeoutHeadroom keeps the request deadline past the FHIR client
// timeout so client timeouts surface as FHIR errors.
const controllerTimeoutHeadroom = 5 * time.Second

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger, err := logger.NewZapLogger(driverConfig, internalConfig)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}

	fhirConfig := config.NewFHIRConfig(internalConfig.App.Env, internalConfig.FHIROptions())
	fhirClient, err := fhirclient.NewClient(fhirConfig, zapLogger)
	if err != nil {
		zapLogger.Fatal("Error initializing FHIR client", zap.Error(err))
	}

	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		Logger:         zapLogger,
		FHIRClient:     fhirClient,
		FHIRConfig:     fhirClient.Config(),
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}
	bootstrapingTheApp(bootstrap)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		zapLogger.Info("Server starting",
			zap.String("address", server.Addr),
			zap.String("environment", string(internalConfig.App.Env)),
			zap.String("fhir_server_url", bootstrap.FHIRConfig.BaseURL),
		)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	zapLogger.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}

func bootstrapingTheApp(bootstrap config.Bootstrap) {
	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)

	// Dashboard
	dashboardUsecase := dashboard.NewDashboardUsecase(
		bootstrap.FHIRClient,
		bootstrap.FHIRConfig.DefaultPatientID,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	patientController := controllers.NewPatientController(
		bootstrap.Logger,
		dashboardUsecase,
		bootstrap.FHIRConfig.Timeout+controllerTimeoutHeadroom,
	)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, middlewares, patientController)
}
