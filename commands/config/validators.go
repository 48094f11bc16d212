package config

import (
	"net/url"
	"strings"

	errorspkg "github.com/pkg/errors"
)

var logLevels = []string{"debug", "info", "error", "fatal"}

// ValidateLogLevel accepts an empty level, which means no logging.
func ValidateLogLevel(level string) error {
	if level == "" {
		return nil
	}

	for _, known := range logLevels {
		if strings.ToLower(level) == known {
			return nil
		}
	}

	return errorspkg.Errorf("invalid log level `%s`: must be one of %s", level, strings.Join(logLevels, ", "))
}

func ValidateURL(key, rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errorspkg.Wrapf(err, "invalid %s", key)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errorspkg.Errorf("invalid %s `%s`: scheme must be http or https", key, rawURL)
	}

	if parsed.Host == "" {
		return errorspkg.Errorf("invalid %s `%s`: missing host", key, rawURL)
	}

	return nil
}
