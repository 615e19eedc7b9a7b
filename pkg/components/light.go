package components

import "math"

// RGB 线性颜色，各通道取值 0.0 ~ 1.0
type RGB struct {
	R, G, B float64
}

// White 白色
var White = RGB{R: 1, G: 1, B: 1}

// Scale 返回各通道乘以 k 的颜色
func (c RGB) Scale(k float64) RGB {
	return RGB{R: c.R * k, G: c.G * k, B: c.B * k}
}

// Mul 返回逐通道相乘的颜色
func (c RGB) Mul(o RGB) RGB {
	return RGB{R: c.R * o.R, G: c.G * o.G, B: c.B * o.B}
}

// Add 返回逐通道相加的颜色
func (c RGB) Add(o RGB) RGB {
	return RGB{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B}
}

// Clamp 将各通道限制在 0.0 ~ 1.0
func (c RGB) Clamp() RGB {
	return RGB{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// 点光源默认参数
const (
	DefaultLightIntensity  = 10.0
	DefaultLightRadius     = 10.0
	DefaultLightSmoothness = 4.0
)

// PointLightComponent 点光源
// 位置由同一实体上的 TransformComponent 提供
type PointLightComponent struct {
	Intensity float64
	Color     RGB

	// Radius 衰减半径，距离等于 Radius 时亮度减半
	Radius float64

	// Smoothness 衰减曲线指数，越大衰减边缘越陡
	Smoothness float64
}

// NewPointLight 创建使用默认半径和衰减的点光源
func NewPointLight(intensity float64, color RGB) *PointLightComponent {
	return &PointLightComponent{
		Intensity:  intensity,
		Color:      color,
		Radius:     DefaultLightRadius,
		Smoothness: DefaultLightSmoothness,
	}
}

// Attenuation 返回距离 distance 处的光照强度系数
func (l *PointLightComponent) Attenuation(distance float64) float64 {
	if l.Radius <= 0 {
		return l.Intensity
	}
	return l.Intensity / (1 + math.Pow(distance/l.Radius, l.Smoothness))
}
