// Package logging configures the service-wide structured logger.
package logging

import "go.uber.org/zap"

// L is the global logger. It is a no-op until Init is called so that library
// code and tests can log without setup.
var L = zap.NewNop()

// Init builds the production JSON logger and installs it as L.
func Init() (*zap.Logger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	L = logger
	return logger, nil
}
