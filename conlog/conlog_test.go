// SPDX-License-Identifier: GPL-2.0-or-later

package conlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core))
	l.Info("FPS=%f", 60.0)
	l.Warning("slow frame %dms", 120)
	l.Error("broken")

	entries := logs.AllUntimed()
	if assert.Len(t, entries, 3) {
		assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
		assert.Equal(t, "FPS=60.000000", entries[0].Message)
		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
		assert.Equal(t, "slow frame 120ms", entries[1].Message)
		assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	}
}

func TestNilIsNop(t *testing.T) {
	l := New(nil)
	assert.NotPanics(t, func() {
		l.Info("x")
		Sync(l)
	})
}
