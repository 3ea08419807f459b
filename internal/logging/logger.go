package logging

import (
	"go.uber.org/zap"

	"github.com/barberflow/agenda-api/internal/config"
)

func New(cfg *config.Config) *zap.Logger {
	if cfg.Env == "production" {
		log, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}
		return log
	}

	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return log
}
