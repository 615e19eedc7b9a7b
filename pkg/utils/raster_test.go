package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRasterizeTriangle(t *testing.T) {
	p0 := ScreenPoint{X: 0, Y: 0, Depth: 0}
	p1 := ScreenPoint{X: 10, Y: 0, Depth: 0}
	p2 := ScreenPoint{X: 0, Y: 10, Depth: 0}

	count := func(a, b, c ScreenPoint, w, h int) int {
		n := 0
		RasterizeTriangle(a, b, c, w, h, func(x, y int, depth float64) {
			assert.True(t, x >= 0 && x < w && y >= 0 && y < h)
			n++
		})
		return n
	}

	// 直角边为 10 的三角形覆盖约 50 个像素中心
	ccw := count(p0, p1, p2, 20, 20)
	assert.InDelta(t, 50, ccw, 10)

	// 两种绕向覆盖相同像素
	assert.Equal(t, ccw, count(p0, p2, p1, 20, 20))

	// 超出屏幕的部分被裁剪
	assert.Less(t, count(p0, p1, p2, 5, 5), ccw)

	// 退化三角形和空屏幕
	assert.Equal(t, 0, count(p0, p0, p1, 20, 20))
	assert.Equal(t, 0, count(p0, p1, p2, 0, 0))
}

func TestRasterizeTriangle_InterpolatesDepth(t *testing.T) {
	p0 := ScreenPoint{X: 0, Y: 0, Depth: 0}
	p1 := ScreenPoint{X: 100, Y: 0, Depth: 1}
	p2 := ScreenPoint{X: 0, Y: 100, Depth: 0}

	RasterizeTriangle(p0, p1, p2, 100, 100, func(x, y int, depth float64) {
		assert.InDelta(t, (float64(x)+0.5)/100, depth, 1e-9)
	})
}
