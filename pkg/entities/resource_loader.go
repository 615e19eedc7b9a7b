package entities

import "github.com/decker502/spin3d/pkg/components"

// ResourceLoader 实体工厂所需的资源加载接口
// game.ResourceManager 实现了该接口；测试可以注入 mock
type ResourceLoader interface {
	LoadMesh(shape string, u, v int) (*components.MeshComponent, error)
	DefaultMaterial() *components.MaterialComponent
}
