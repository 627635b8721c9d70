package adplan

import (
	"github.com/akeil/adplan/internal/logging"
)

// SetLogLevel sets the log level by name: debug, info, warning, error.
// Any other value disables logging.
func SetLogLevel(level string) {
	logging.SetLevel(logging.ParseLevel(level))
}
