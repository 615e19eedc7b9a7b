package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeNow 返回一个按预设间隔前进的时钟
func fakeNow(steps ...time.Duration) func() time.Time {
	t := time.Unix(1000, 0)
	i := 0
	return func() time.Time {
		if i > 0 && i-1 < len(steps) {
			t = t.Add(steps[i-1])
		}
		i++
		return t
	}
}

func TestFixedFrameClock(t *testing.T) {
	tests := []struct {
		name      string
		tps       int
		timeScale float64
		want      float64
	}{
		{"60 TPS", 60, 1, 1.0 / 60},
		{"非法 TPS 回退到 60", 0, 1, 1.0 / 60},
		{"两倍速", 30, 2, 2.0 / 30},
		{"暂停", 60, 0, 0},
		{"负缩放被截断为 0", 60, -1, 0},
		{"超长步长被截断", 1, 1, MaxFrameDelta},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewFixedFrameClock(tt.tps, tt.timeScale)
			assert.True(t, c.IsFixed())
			assert.InDelta(t, tt.want, c.Tick(), 1e-12)
			assert.InDelta(t, tt.want, c.Tick(), 1e-12)
		})
	}
}

func TestMeasuredFrameClock(t *testing.T) {
	c := NewMeasuredFrameClock(1, fakeNow(
		20*time.Millisecond,
		10*time.Millisecond,
		2*time.Second,
	))

	assert.False(t, c.IsFixed())
	assert.Equal(t, 0.0, c.Tick(), "第一帧没有参考时间")
	assert.InDelta(t, 0.020, c.Tick(), 1e-9)
	assert.InDelta(t, 0.010, c.Tick(), 1e-9)
	assert.InDelta(t, MaxFrameDelta, c.Tick(), 1e-9, "停顿后被截断")
}

func TestMeasuredFrameClock_TimeScale(t *testing.T) {
	c := NewMeasuredFrameClock(0.5, fakeNow(100*time.Millisecond, 100*time.Millisecond))
	c.Tick()
	assert.InDelta(t, 0.05, c.Tick(), 1e-9)

	c.SetTimeScale(0)
	assert.Equal(t, 0.0, c.TimeScale())
	assert.Equal(t, 0.0, c.Tick())
}
