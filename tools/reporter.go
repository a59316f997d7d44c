package tools

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// DefaultReporter returns a reporter that logs to the default logger.
func DefaultReporter() func(error) {
	return NewReporter(hclog.Default())
}

// NewReporter returns a reporter that logs errors with the specified logger.
// The formatted error including its stack trace is attached at debug level.
func NewReporter(logger hclog.Logger) func(error) {
	return func(err error) {
		logger.Error("unexpected error", "error", err.Error())
		if logger.IsDebug() {
			logger.Debug("error trace", "trace", fmt.Sprintf("%+v", err))
		}
	}
}
