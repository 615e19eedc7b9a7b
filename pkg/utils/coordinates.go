// Package utils 提供渲染和场景计算中常用的工具函数
//
// coordinates.go 提供三维坐标到屏幕坐标的转换工具。
//
// # 坐标系统概述
//
//   - **模型坐标**：网格顶点的局部坐标（MeshComponent）
//   - **世界坐标**：模型矩阵（TransformComponent.Matrix）变换后的坐标，右手系，Y 轴向上
//   - **观察坐标**：相机位于原点、看向 -Z
//   - **NDC**：透视除法后的标准化设备坐标，各轴范围 [-1, 1]
//   - **屏幕坐标**：相对于窗口左上角，X 向右、Y 向下（Ebiten 默认行为）
//
// # 核心转换公式
//
//	clip   = Projection * View * Model * p
//	ndc    = clip.xyz / clip.w
//	screenX = (ndc.x + 1) / 2 * width
//	screenY = (1 - ndc.y) / 2 * height
package utils

import (
	"github.com/go-gl/mathgl/mgl64"
)

// minClipW 小于该值的齐次坐标 w 视为位于相机后方
const minClipW = 1e-9

// ScreenPoint 屏幕上的一个投影点
type ScreenPoint struct {
	X, Y float64

	// Depth NDC 深度，-1 为近平面，1 为远平面
	Depth float64
}

// ProjectPoint 将世界坐标点投影到屏幕
//
// 参数:
//   - viewProj: Projection * View 矩阵
//   - p: 世界坐标点
//   - width, height: 屏幕尺寸（像素）
//
// 返回:
//   - ScreenPoint: 屏幕坐标和深度
//   - bool: 点位于相机后方或近/远平面之外时返回 false
func ProjectPoint(viewProj mgl64.Mat4, p mgl64.Vec3, width, height float64) (ScreenPoint, bool) {
	clip := viewProj.Mul4x1(p.Vec4(1))
	w := clip.W()
	if w < minClipW {
		return ScreenPoint{}, false
	}

	ndc := clip.Vec3().Mul(1 / w)
	if ndc.Z() < -1 || ndc.Z() > 1 {
		return ScreenPoint{}, false
	}

	return ScreenPoint{
		X:     (ndc.X() + 1) / 2 * width,
		Y:     (1 - ndc.Y()) / 2 * height,
		Depth: ndc.Z(),
	}, true
}

// FaceNormal 返回逆时针三角形 (a, b, c) 的单位法线
// 退化三角形返回零向量
func FaceNormal(a, b, c mgl64.Vec3) mgl64.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() == 0 {
		return mgl64.Vec3{}
	}
	return n.Normalize()
}

// IsFrontFacing 判断法线为 normal、经过 point 的面是否朝向 eye
func IsFrontFacing(normal, point, eye mgl64.Vec3) bool {
	return normal.Dot(eye.Sub(point)) > 0
}
