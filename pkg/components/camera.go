package components

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// 标准三维相机默认参数
const (
	DefaultCameraFovY = math.Pi / 3
	DefaultCameraNear = 0.1
	DefaultCameraFar  = 2000.0
)

// CameraComponent 存储透视投影参数
// 相机的位置和朝向由同一实体上的 TransformComponent 提供
type CameraComponent struct {
	// Width/Height 视口尺寸（像素），用于计算宽高比
	Width  float64
	Height float64

	// FovY 垂直视场角（弧度）
	FovY float64

	// Near/Far 近、远裁剪面距离
	Near float64
	Far  float64
}

// NewStandard3DCamera 创建标准三维透视相机
func NewStandard3DCamera(width, height float64) *CameraComponent {
	return &CameraComponent{
		Width:  width,
		Height: height,
		FovY:   DefaultCameraFovY,
		Near:   DefaultCameraNear,
		Far:    DefaultCameraFar,
	}
}

// Aspect 返回宽高比，高度为 0 时返回 1
func (c *CameraComponent) Aspect() float64 {
	if c.Height == 0 {
		return 1
	}
	return c.Width / c.Height
}

// Projection 返回透视投影矩阵
func (c *CameraComponent) Projection() mgl64.Mat4 {
	return mgl64.Perspective(c.FovY, c.Aspect(), c.Near, c.Far)
}
