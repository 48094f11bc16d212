package commands

import (
	"io"
	"os"
	"strings"

	"code.cloudfoundry.org/grootrun/commands/config"
	"code.cloudfoundry.org/lager/v3"
	errorspkg "github.com/pkg/errors"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ConfigureLogger registers at most one sink on logger. Without a log level
// or a log file nothing is logged, so that standard error belongs to the
// contained command. The log file is opened here, before the root change,
// and the returned Closer closes it.
func ConfigureLogger(logger lager.Logger, cfg config.Config, stderr io.Writer) (io.Closer, error) {
	if cfg.LogLevel == "" && cfg.LogFile == "" {
		return nopCloser{}, nil
	}

	logLevel := getLagerLogLevel(cfg.LogLevel)

	if cfg.LogFile != "" {
		logFile, err := os.OpenFile(cfg.LogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			return nil, errorspkg.Wrapf(err, "opening log file `%s`", cfg.LogFile)
		}

		logger.RegisterSink(lager.NewWriterSink(logFile, logLevel))
		return logFile, nil
	}

	logger.RegisterSink(lager.NewWriterSink(stderr, logLevel))
	return nopCloser{}, nil
}

func getLagerLogLevel(level string) lager.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return lager.DEBUG
	case "error":
		return lager.ERROR
	case "fatal":
		return lager.FATAL
	default:
		return lager.INFO
	}
}
