package main

import (
	"math"

	"github.com/decker502/spin3d/pkg/components"
	"github.com/decker502/spin3d/pkg/ecs"
	"github.com/decker502/spin3d/pkg/systems"
	"github.com/decker502/spin3d/pkg/utils"
)

// shadeRamp 从暗到亮的字符，第 0 个表示空白
var shadeRamp = []rune(" .:-=+*#%@")

// Frame 一帧字符画
type Frame struct {
	Width, Height int
	Runes         []rune
	Colors        []components.RGB
	depth         []float64
}

// NewFrame 创建空白帧
func NewFrame(width, height int) *Frame {
	f := &Frame{}
	f.Resize(width, height)
	return f
}

// Resize 调整尺寸并清空
func (f *Frame) Resize(width, height int) {
	n := width * height
	if n < 0 {
		n = 0
	}
	f.Width, f.Height = width, height
	if cap(f.Runes) < n {
		f.Runes = make([]rune, n)
		f.Colors = make([]components.RGB, n)
		f.depth = make([]float64, n)
	}
	f.Runes = f.Runes[:n]
	f.Colors = f.Colors[:n]
	f.depth = f.depth[:n]
	f.clear()
}

func (f *Frame) clear() {
	for i := range f.Runes {
		f.Runes[i] = shadeRamp[0]
		f.Colors[i] = components.RGB{}
		f.depth[i] = math.Inf(1)
	}
}

// At 返回 (x, y) 处的字符
func (f *Frame) At(x, y int) rune {
	return f.Runes[y*f.Width+x]
}

// Render 把场景光栅化到字符网格
//
// 每个字符保留深度最小的三角形（z-buffer）。
// 返回可见三角形数量。
func (f *Frame) Render(em *ecs.EntityManager) int {
	f.clear()
	if f.Width <= 0 || f.Height <= 0 {
		return 0
	}

	tris := systems.ProjectScene(em, float64(f.Width), float64(f.Height))
	for _, tri := range tris {
		r := rampRune(utils.Luminance(tri.Color))
		c := tri.Color
		utils.RasterizeTriangle(tri.Points[0], tri.Points[1], tri.Points[2], f.Width, f.Height,
			func(x, y int, depth float64) {
				i := y*f.Width + x
				if depth >= f.depth[i] {
					return
				}
				f.depth[i] = depth
				f.Runes[i] = r
				f.Colors[i] = c
			})
	}
	return len(tris)
}

// rampRune 将亮度映射到字符，被覆盖的位置至少使用第 1 级
func rampRune(luminance float64) rune {
	l := math.Max(0, math.Min(1, luminance))
	idx := 1 + int(l*float64(len(shadeRamp)-2)+0.5)
	if idx >= len(shadeRamp) {
		idx = len(shadeRamp) - 1
	}
	return shadeRamp[idx]
}
