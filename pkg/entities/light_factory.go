package entities

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/spin3d/pkg/components"
	"github.com/decker502/spin3d/pkg/config"
	"github.com/decker502/spin3d/pkg/ecs"
)

// NewLightEntity 创建点光源实体
// 光源没有运动组件，位置固定。radius、smoothness 为 0 时使用默认衰减
func NewLightEntity(em *ecs.EntityManager, cfg config.LightConfig) ecs.EntityID {
	id := em.CreateEntity()

	transform := components.NewTransform()
	transform.Translation = mgl64.Vec3(cfg.Translation)
	em.AddComponent(id, transform)

	light := components.NewPointLight(cfg.Intensity, components.RGB{R: cfg.Color[0], G: cfg.Color[1], B: cfg.Color[2]})
	if cfg.Radius > 0 {
		light.Radius = cfg.Radius
	}
	if cfg.Smoothness > 0 {
		light.Smoothness = cfg.Smoothness
	}
	em.AddComponent(id, light)

	if cfg.Label != "" {
		em.AddComponent(id, &components.LabelComponent{Name: cfg.Label})
	}
	return id
}
