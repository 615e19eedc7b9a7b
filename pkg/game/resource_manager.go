package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"

	"github.com/decker502/spin3d/pkg/components"
)

// 支持的网格形状
const (
	ShapeCube     = "cube"
	ShapeSphere   = "sphere"
	ShapeTriangle = "triangle"
)

// 球体默认细分（经线段数 × 纬线段数）
const (
	DefaultSphereU = 100
	DefaultSphereV = 100
)

// ErrUnknownShape 请求了不支持的网格形状
var ErrUnknownShape = errors.New("unknown mesh shape")

// ResourceManager 负责网格和材质资源的生成与缓存
//
// 相同形状和细分参数的网格只生成一次，多个实体共享同一个 MeshComponent。
// 网格数据在生成后只读。
//
// Thread Safety Note:
// 内部缓存使用普通 map，不是并发安全的。
// 所有资源应在主 goroutine 中于场景初始化阶段加载。
type ResourceManager struct {
	meshCache map[string]*components.MeshComponent
}

// NewResourceManager 创建资源管理器
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		meshCache: make(map[string]*components.MeshComponent),
	}
}

// LoadMesh 按形状生成（或从缓存获取）网格
//
// 参数:
//   - shape: "cube"、"sphere" 或 "triangle"
//   - u, v: 球体的经线段数和纬线段数，为 0 时使用默认值；其他形状忽略
//
// 返回:
//   - *components.MeshComponent: 共享的网格
//   - error: 形状未知或细分参数非法时返回错误
func (rm *ResourceManager) LoadMesh(shape string, u, v int) (*components.MeshComponent, error) {
	key, err := meshKey(shape, u, v)
	if err != nil {
		return nil, err
	}
	if mesh, ok := rm.meshCache[key]; ok {
		return mesh, nil
	}

	var mesh *components.MeshComponent
	switch shape {
	case ShapeCube:
		mesh = buildCube()
	case ShapeSphere:
		if u == 0 {
			u = DefaultSphereU
		}
		if v == 0 {
			v = DefaultSphereV
		}
		mesh = buildSphere(u, v)
	case ShapeTriangle:
		mesh = buildTriangle()
	}
	mesh.Key = key

	rm.meshCache[key] = mesh
	log.Debug().Str("component", "ResourceManager").Str("mesh", key).
		Int("triangles", mesh.TriangleCount()).Msg("网格已生成")
	return mesh, nil
}

// DefaultMaterial 返回默认材质（浅灰色，少量环境光）
// 每次调用返回新实例，调用方可以修改
func (rm *ResourceManager) DefaultMaterial() *components.MaterialComponent {
	return &components.MaterialComponent{
		Albedo:  components.RGB{R: 0.9, G: 0.9, B: 0.9},
		Ambient: 0.12,
	}
}

// CachedMeshCount 返回已缓存的网格数量
func (rm *ResourceManager) CachedMeshCount() int {
	return len(rm.meshCache)
}

func meshKey(shape string, u, v int) (string, error) {
	switch shape {
	case ShapeCube, ShapeTriangle:
		return shape, nil
	case ShapeSphere:
		if u == 0 {
			u = DefaultSphereU
		}
		if v == 0 {
			v = DefaultSphereV
		}
		if u < 3 || v < 2 {
			return "", fmt.Errorf("sphere divisions %dx%d too small (need at least 3x2)", u, v)
		}
		return fmt.Sprintf("%s:%dx%d", shape, u, v), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownShape, shape)
	}
}

// buildCube 生成边长为 2、中心在原点的立方体
func buildCube() *components.MeshComponent {
	return &components.MeshComponent{
		Vertices: []mgl64.Vec3{
			{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
			{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
		},
		Indices: []uint32{
			4, 5, 6, 4, 6, 7, // +Z
			1, 0, 3, 1, 3, 2, // -Z
			5, 1, 2, 5, 2, 6, // +X
			0, 4, 7, 0, 7, 3, // -X
			7, 6, 2, 7, 2, 3, // +Y
			0, 1, 5, 0, 5, 4, // -Y
		},
	}
}

// buildSphere 生成半径为 1 的经纬球
// 极点处的退化三角形保留在索引中，渲染时按零法线剔除
func buildSphere(u, v int) *components.MeshComponent {
	vertices := make([]mgl64.Vec3, 0, (u+1)*(v+1))
	for i := 0; i <= v; i++ {
		theta := math.Pi * float64(i) / float64(v)
		for j := 0; j <= u; j++ {
			phi := 2 * math.Pi * float64(j) / float64(u)
			vertices = append(vertices, mgl64.Vec3{
				math.Sin(theta) * math.Cos(phi),
				math.Cos(theta),
				math.Sin(theta) * math.Sin(phi),
			})
		}
	}

	indices := make([]uint32, 0, u*v*6)
	stride := uint32(u + 1)
	for i := 0; i < v; i++ {
		for j := 0; j < u; j++ {
			a := uint32(i)*stride + uint32(j)
			b := a + stride
			c := b + 1
			d := a + 1
			indices = append(indices, a, c, b, a, d, c)
		}
	}

	return &components.MeshComponent{Vertices: vertices, Indices: indices}
}

// buildTriangle 生成位于 XY 平面、朝向 +Z 的单个三角形
func buildTriangle() *components.MeshComponent {
	return &components.MeshComponent{
		Vertices: []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Indices:  []uint32{0, 1, 2},
	}
}
