package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"Warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func restoreGlobals(t *testing.T) {
	prevLogger := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})
}

func TestSetup_LevelAndOutput(t *testing.T) {
	restoreGlobals(t)

	var buf bytes.Buffer
	Setup(Options{Level: "warn", Out: &buf, NoColor: true})

	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	buf.Reset()
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetup_VerboseForcesDebug(t *testing.T) {
	restoreGlobals(t)

	var buf bytes.Buffer
	Setup(Options{Level: "error", Verbose: true, Out: &buf, NoColor: true})
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	// verbose 不会覆盖更详细的级别
	Setup(Options{Level: "trace", Verbose: true, Out: &buf, NoColor: true})
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestComponent(t *testing.T) {
	restoreGlobals(t)

	var buf bytes.Buffer
	Setup(Options{Level: "info", Out: &buf, NoColor: true})
	buf.Reset()

	logger := Component("MotionSystem")
	logger.Info().Msg("tick")
	assert.Contains(t, buf.String(), "component=MotionSystem")
}
