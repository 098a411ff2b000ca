package logger

import (
	"log"

	"go.uber.org/zap"
)

// New builds the application logger. Development mode gets the console
// encoder, anything else the production JSON encoder.
func New(env string) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	if env == "development" {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	return l
}
