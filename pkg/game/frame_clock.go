package game

import (
	"math"
	"time"
)

// MaxFrameDelta 单帧允许的最大时间步长（秒）
// 窗口拖动或断点暂停后，测得的间隔会被截断到该值
const MaxFrameDelta = 0.25

// FrameClock 产生每帧的 delta_seconds
//
// 两种模式:
//   - 固定步长：每次 Tick 返回 1/TPS，与 ebiten 的 Update 频率一致
//   - 实测步长：使用单调时钟测量两次 Tick 的间隔
//
// 两种模式的结果都乘以 TimeScale，并限制在 [0, MaxFrameDelta]。
type FrameClock struct {
	fixed     bool
	step      float64
	timeScale float64

	now  func() time.Time
	last time.Time
}

// NewFixedFrameClock 创建固定步长时钟
// tps <= 0 时使用 60
func NewFixedFrameClock(tps int, timeScale float64) *FrameClock {
	if tps <= 0 {
		tps = 60
	}
	return &FrameClock{
		fixed:     true,
		step:      1.0 / float64(tps),
		timeScale: timeScale,
		now:       time.Now,
	}
}

// NewMeasuredFrameClock 创建实测步长时钟
// now 为 nil 时使用 time.Now（其返回值带单调时钟读数）
func NewMeasuredFrameClock(timeScale float64, now func() time.Time) *FrameClock {
	if now == nil {
		now = time.Now
	}
	return &FrameClock{
		timeScale: timeScale,
		now:       now,
	}
}

// Tick 返回自上一帧以来经过的模拟时间（秒）
// 实测模式下第一次调用返回 0
func (c *FrameClock) Tick() float64 {
	var raw float64
	if c.fixed {
		raw = c.step
	} else {
		t := c.now()
		if !c.last.IsZero() {
			raw = t.Sub(c.last).Seconds()
		}
		c.last = t
	}

	dt := raw * c.timeScale
	if math.IsNaN(dt) || dt < 0 {
		return 0
	}
	return math.Min(dt, MaxFrameDelta)
}

// SetTimeScale 修改时间缩放，0 表示暂停
func (c *FrameClock) SetTimeScale(scale float64) {
	c.timeScale = scale
}

// TimeScale 返回当前时间缩放
func (c *FrameClock) TimeScale() float64 {
	return c.timeScale
}

// IsFixed 是否为固定步长模式
func (c *FrameClock) IsFixed() bool {
	return c.fixed
}
