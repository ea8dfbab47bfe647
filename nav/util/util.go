package util

import (
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

var logger = logrus.WithField("component", "nav.util")

// DebugEnabled reports whether NAV_DEBUG holds a true boolean value.
func DebugEnabled() bool {
	return GetEnvBool("NAV_DEBUG")
}

// GetEnvBool parses key with strconv.ParseBool. Unset or unparsable values are false.
func GetEnvBool(key string) bool {
	enabled, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		logger.Debugf("%s is not a boolean, treating as false", key)
		return false
	}
	return enabled
}

// GetEnvOrDefault returns the trimmed value of key, or def when it is unset or blank.
func GetEnvOrDefault(key, def string) string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}

// Mask hides all but the last four characters of a secret so it can be logged.
func Mask(secret string) string {
	if secret == "" {
		return ""
	}
	const visible = 4
	if len(secret) <= visible {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-visible) + secret[len(secret)-visible:]
}
