package entities

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/spin3d/pkg/components"
)

// errMockMesh mock 加载器在 failMesh 为 true 时返回的错误
var errMockMesh = errors.New("mock mesh failure")

// mockResourceLoader 实现 ResourceLoader 接口，返回固定的单三角形网格
type mockResourceLoader struct {
	failMesh bool
	loaded   []string
}

func (m *mockResourceLoader) LoadMesh(shape string, u, v int) (*components.MeshComponent, error) {
	m.loaded = append(m.loaded, shape)
	if m.failMesh {
		return nil, errMockMesh
	}
	return &components.MeshComponent{
		Key:      shape,
		Vertices: []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Indices:  []uint32{0, 1, 2},
	}, nil
}

func (m *mockResourceLoader) DefaultMaterial() *components.MaterialComponent {
	return &components.MaterialComponent{Albedo: components.RGB{R: 1, G: 1, B: 1}, Ambient: 0.1}
}
