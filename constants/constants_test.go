package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BARLINE_MIN_DURATION", "20")
	t.Setenv("PORT", "not a number")
	t.Setenv("BARLINE_OUT_DIR", "/tmp/bars")

	assert := assert.New(t)
	assert.Equal(20, GetMinSubEventDuration())
	assert.Equal(DefaultPort, GetPort())
	assert.Equal("/tmp/bars", GetOutDir())
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("BARLINE_MIN_DURATION", "-3")
	t.Setenv("BARLINE_OUT_DIR", "")

	assert := assert.New(t)
	assert.Equal(DefaultMinSubEventDuration, GetMinSubEventDuration())
	assert.Equal("./out", GetOutDir())
}
