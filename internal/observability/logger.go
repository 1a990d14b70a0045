package observability

import (
	"fmt"
	"io"

	"code.cloudfoundry.org/lager/v3"
)

// NewLogger builds a lager logger for component writing JSON lines at level or above.
func NewLogger(component string, out io.Writer, level string) (lager.Logger, error) {
	minLevel := lager.INFO
	if level != "" {
		parsed, err := lager.LogLevelFromString(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		minLevel = parsed
	}

	logger := lager.NewLogger(component)
	logger.RegisterSink(lager.NewWriterSink(out, minLevel))
	return logger, nil
}
