package config

import (
	"context"
	"ember-emr-service/internal/app/contracts"
	"log"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Bootstrap struct {
	Router         *chi.Mux
	Logger         *zap.Logger
	FHIRClient     contracts.FHIRClient
	FHIRConfig     FHIRConfig
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
}

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	err := b.Logger.Sync()
	if err != nil {
		return err
	}
	log.Println("Successfully closing Logger")

	return nil
}
