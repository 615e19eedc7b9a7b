package utils

import "math"

// RasterizeTriangle 遍历三角形覆盖的整数像素中心
//
// 对每个被覆盖的像素 (x, y) 调用 plot，depth 为重心插值后的深度。
// 只遍历 [0, width) × [0, height) 范围内的像素。两种绕向都会被填充。
func RasterizeTriangle(p0, p1, p2 ScreenPoint, width, height int, plot func(x, y int, depth float64)) {
	if width <= 0 || height <= 0 {
		return
	}
	area := edge(p0, p1, p2.X, p2.Y)
	if area == 0 {
		return
	}

	minX := clampInt(int(math.Floor(math.Min(p0.X, math.Min(p1.X, p2.X)))), 0, width-1)
	maxX := clampInt(int(math.Ceil(math.Max(p0.X, math.Max(p1.X, p2.X)))), 0, width-1)
	minY := clampInt(int(math.Floor(math.Min(p0.Y, math.Min(p1.Y, p2.Y)))), 0, height-1)
	maxY := clampInt(int(math.Ceil(math.Max(p0.Y, math.Max(p1.Y, p2.Y)))), 0, height-1)

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			w0 := edge(p1, p2, px, py) / area
			w1 := edge(p2, p0, px, py) / area
			w2 := edge(p0, p1, px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			plot(x, y, w0*p0.Depth+w1*p1.Depth+w2*p2.Depth)
		}
	}
}

// edge 返回点 (px, py) 相对有向边 a→b 的二维叉积
func edge(a, b ScreenPoint, px, py float64) float64 {
	return (b.X-a.X)*(py-a.Y) - (b.Y-a.Y)*(px-a.X)
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
