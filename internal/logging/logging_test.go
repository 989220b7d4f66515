package logging

import (
	"testing"

	"github.com/pageza/pantrychef/backend/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		env   config.Environment
		level string
		want  zapcore.Level
	}{
		{"development default", config.Development, "", zapcore.DebugLevel},
		{"production default", config.Production, "", zapcore.InfoLevel},
		{"explicit level", config.Production, "WARN", zapcore.WarnLevel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, err := New(tc.env, tc.level)
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tc.want))
			if tc.want > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tc.want-1))
			}
		})
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(config.Development, "chatty")
	assert.Error(t, err)
}
