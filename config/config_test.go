package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkero/bl602-ws2811/config"
	"github.com/parkero/bl602-ws2811/ws28xx"
)

const validTopology = `
backend: rpi
timings: ws2812
lines:
  - gpio: 18
  - gpio: -1
  - gpio: 13
strips:
  - line: 0
    count: 34
    order: GRB
  - line: 2
    count: 61
    reversed: true
    order: GRB
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ws2811d.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadValid(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, validTopology))
	require.Nil(t, err)

	assert.Equal(t, "rpi", cfg.Backend)
	require.Len(t, cfg.Lines, 3)
	assert.Equal(t, 18, cfg.Lines[0].GPIO)
	assert.Equal(t, -1, cfg.Lines[1].GPIO)

	strips := cfg.PhysicalStrips()
	require.Len(t, strips, 2)
	assert.Equal(t, uint8(0), strips[0].Line)
	assert.Equal(t, 34, strips[0].LedCount)
	assert.False(t, strips[0].Reversed)
	assert.Equal(t, ws28xx.GRB, strips[0].Order)
	assert.Equal(t, 1250*time.Nanosecond, strips[0].Timings.FullCycle)
	assert.True(t, strips[1].Reversed)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, `
lines:
  - gpio: 18
strips:
  - line: 0
    count: 4
    order: rgb
`))
	require.Nil(t, err)
	assert.Equal(t, "rpi", cfg.Backend)
	assert.Equal(t, ws28xx.WS2812Timings, cfg.StripTimings())
	// Order spelling is case-insensitive.
	assert.Equal(t, ws28xx.RGB, cfg.PhysicalStrips()[0].Order)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NotNil(t, err)
	assert.NotEmpty(t, err.Advice())
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown timings", `
timings: ws9999
lines: [{gpio: 18}]
strips: [{line: 0, count: 4, order: GRB}]
`},
		{"no strips", `
lines: [{gpio: 18}]
strips: []
`},
		{"zero count", `
lines: [{gpio: 18}]
strips: [{line: 0, count: 0, order: GRB}]
`},
		{"line out of range", `
lines: [{gpio: 18}]
strips: [{line: 3, count: 4, order: GRB}]
`},
		{"bad order", `
lines: [{gpio: 18}]
strips: [{line: 0, count: 4, order: RGBW}]
`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, test.body))
			require.NotNil(t, err)
			assert.NotEmpty(t, err.Advice())
		})
	}
}
