package utils

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/spin3d/pkg/components"
)

// LightSample 某一帧中点光源的世界位置和参数
type LightSample struct {
	Position mgl64.Vec3
	Light    *components.PointLightComponent
}

// ShadeLambert 计算表面点的漫反射颜色
//
// 颜色 = albedo * ambient + Σ albedo * lightColor * max(0, N·L) * attenuation(d)
// 结果限制在 [0, 1]。
func ShadeLambert(material *components.MaterialComponent, point, normal mgl64.Vec3, lights []LightSample) components.RGB {
	c := material.Albedo.Scale(material.Ambient)
	for _, ls := range lights {
		toLight := ls.Position.Sub(point)
		d := toLight.Len()
		if d == 0 {
			continue
		}
		nDotL := normal.Dot(toLight.Mul(1 / d))
		if nDotL <= 0 {
			continue
		}
		c = c.Add(material.Albedo.Mul(ls.Light.Color).Scale(nDotL * ls.Light.Attenuation(d)))
	}
	return c.Clamp()
}

// ToRGBA 将线性颜色转换为 8 位 RGBA
func ToRGBA(c components.RGB, alpha float64) color.RGBA {
	c = c.Clamp()
	return color.RGBA{
		R: uint8(math.Round(c.R * 255)),
		G: uint8(math.Round(c.G * 255)),
		B: uint8(math.Round(c.B * 255)),
		A: uint8(math.Round(math.Max(0, math.Min(1, alpha)) * 255)),
	}
}

// Luminance 返回颜色的感知亮度 (0.0 ~ 1.0)
func Luminance(c components.RGB) float64 {
	c = c.Clamp()
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}
