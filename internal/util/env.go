package util

import (
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// GetEnv returns the value of the environment variable with the given key
// or the provided default value if the variable is unset.
func GetEnv(key string, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// GetEnvAsInt returns the environment variable parsed as int or the default value.
func GetEnvAsInt(key string, defaultVal int) int {
	strVal := GetEnv(key, "")
	if strVal == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(strVal)
	if err != nil {
		log.Warn().Str("key", key).Str("value", strVal).Msg("Failed to parse env var as int, using default")
		return defaultVal
	}
	return val
}

// GetEnvAsUint32 returns the environment variable parsed as uint32 or the default value.
func GetEnvAsUint32(key string, defaultVal uint32) uint32 {
	strVal := GetEnv(key, "")
	if strVal == "" {
		return defaultVal
	}

	val, err := strconv.ParseUint(strVal, 10, 32)
	if err != nil {
		log.Warn().Str("key", key).Str("value", strVal).Msg("Failed to parse env var as uint32, using default")
		return defaultVal
	}
	return uint32(val)
}

// GetEnvAsBool returns the environment variable parsed as bool or the default value.
func GetEnvAsBool(key string, defaultVal bool) bool {
	strVal := GetEnv(key, "")
	if strVal == "" {
		return defaultVal
	}

	val, err := strconv.ParseBool(strVal)
	if err != nil {
		log.Warn().Str("key", key).Str("value", strVal).Msg("Failed to parse env var as bool, using default")
		return defaultVal
	}
	return val
}

// GetEnvAsStringArr returns the environment variable split by the separator
// (default ",") or the default value if the variable is unset or empty.
func GetEnvAsStringArr(key string, defaultVal []string, separator ...string) []string {
	strVal := GetEnv(key, "")
	if strVal == "" {
		return defaultVal
	}

	sep := ","
	if len(separator) > 0 {
		sep = separator[0]
	}

	parts := strings.Split(strVal, sep)
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			res = append(res, trimmed)
		}
	}
	if len(res) == 0 {
		return defaultVal
	}
	return res
}
