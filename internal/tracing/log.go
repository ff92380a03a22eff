package tracing

import (
	"github.com/porticohq/portico/internal/log"
)

// SetupLogger registers the trace-field hook on the logger so every entry
// carries the identifiers from the request context.
func SetupLogger(logger *log.Logger) {
	log.WithTraceFields(logger)
}
