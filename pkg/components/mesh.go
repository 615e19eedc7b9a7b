package components

import "github.com/go-gl/mathgl/mgl64"

// MeshComponent 三角网格（模型空间）
// 由 game.ResourceManager 生成并缓存，多个实体可共享同一网格
type MeshComponent struct {
	// Key 网格在 ResourceManager 中的缓存键（如 "cube", "sphere:100x100"）
	Key string

	Vertices []mgl64.Vec3

	// Indices 每 3 个索引构成一个三角形，逆时针为正面
	Indices []uint32
}

// TriangleCount 返回三角形数量
func (m *MeshComponent) TriangleCount() int {
	return len(m.Indices) / 3
}

// MaterialComponent 表面材质
type MaterialComponent struct {
	// Albedo 漫反射颜色
	Albedo RGB

	// Ambient 环境光系数，未受光照的面保留的亮度比例
	Ambient float64
}

// LabelComponent 实体名称
// 用于日志、存档快照和轨迹记录中识别实体
type LabelComponent struct {
	Name string
}
