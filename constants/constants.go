package constants

import (
	"os"
	"strconv"
)

// DefaultMinSubEventDuration is the shortest a chord's basic sub-event may
// become when a chord is re-fitted, in milliseconds.
const DefaultMinSubEventDuration = 50

const DefaultPort = 8080

func GetOutDir() string {
	path := os.Getenv("BARLINE_OUT_DIR")
	if path != "" {
		return path
	}
	return "./out"
}

// GetMinSubEventDuration reads BARLINE_MIN_DURATION, falling back to
// DefaultMinSubEventDuration when unset or not a positive integer.
func GetMinSubEventDuration() int {
	return positiveEnv("BARLINE_MIN_DURATION", DefaultMinSubEventDuration)
}

func GetPort() int {
	return positiveEnv("PORT", DefaultPort)
}

func positiveEnv(name string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(name))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
