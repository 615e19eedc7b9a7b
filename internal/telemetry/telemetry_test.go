package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Disabled(t *testing.T) {
	polled := false
	fm, err := New(false, "spin", func() int { polled = true; return 3 })
	require.NoError(t, err)

	fm.RecordFrame(context.Background(), 1, time.Millisecond)
	require.NoError(t, fm.Close())
	assert.False(t, polled, "no-op meter never runs callbacks")
}

func TestNew_EnabledWithGlobalProvider(t *testing.T) {
	// 未安装 SDK 时全局 provider 是委托的 noop
	fm, err := New(true, "spin", nil)
	require.NoError(t, err)

	fm.RecordFrame(context.Background(), 2, 16*time.Millisecond)
	assert.NoError(t, fm.Close())
}
