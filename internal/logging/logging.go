package logging

import (
	"go.uber.org/zap"
)

// New builds the process-wide logger. Release mode uses the production
// JSON encoder; anything else gets the development console encoder.
func New(ginMode string) (*zap.Logger, error) {
	if ginMode == "release" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
