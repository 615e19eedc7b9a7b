package entities

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/spin3d/pkg/components"
	"github.com/decker502/spin3d/pkg/config"
	"github.com/decker502/spin3d/pkg/ecs"
)

// NewSolidEntity 创建可渲染的实体（网格 + 材质 + 可选的恒定运动）
//
// 网格和运动参数都在创建实体之前准备好，任何一步失败都不会留下半成品实体。
//
// 参数:
//   - em: 实体管理器
//   - rl: 资源加载器（生成网格）
//   - cfg: 实体配置
//
// 返回:
//   - ecs.EntityID: 创建的实体ID
//   - error: 网格生成失败，或运动参数不合法（errors.Is(err, components.ErrInvalidMotion)）
func NewSolidEntity(em *ecs.EntityManager, rl ResourceLoader, cfg config.SolidConfig) (ecs.EntityID, error) {
	mesh, err := rl.LoadMesh(cfg.Shape, cfg.Divisions[0], cfg.Divisions[1])
	if err != nil {
		return ecs.InvalidEntity, fmt.Errorf("failed to load mesh for %q: %w", cfg.Label, err)
	}

	var motion *components.MotionComponent
	if cfg.Motion != nil {
		motion, err = NewMotionFromConfig(cfg.Motion)
		if err != nil {
			return ecs.InvalidEntity, fmt.Errorf("failed to build motion for %q: %w", cfg.Label, err)
		}
	}

	material := rl.DefaultMaterial()
	if cfg.Material != nil {
		material = &components.MaterialComponent{
			Albedo:  components.RGB{R: cfg.Material.Albedo[0], G: cfg.Material.Albedo[1], B: cfg.Material.Albedo[2]},
			Ambient: cfg.Material.Ambient,
		}
	}

	id := em.CreateEntity()
	em.AddComponent(id, components.NewTransformTRS(
		mgl64.Vec3(cfg.Translation),
		components.EulerToQuat(cfg.Euler[0], cfg.Euler[1], cfg.Euler[2]),
		mgl64.Vec3(cfg.Scale),
	))
	em.AddComponent(id, mesh)
	em.AddComponent(id, material)
	if motion != nil {
		em.AddComponent(id, motion)
	}
	if cfg.Label != "" {
		em.AddComponent(id, &components.LabelComponent{Name: cfg.Label})
	}

	return id, nil
}

// NewMotionFromConfig 按配置中给出的旋转写法构造运动组件
func NewMotionFromConfig(cfg *config.MotionConfig) (*components.MotionComponent, error) {
	linear := mgl64.Vec3(cfg.Linear)
	switch {
	case cfg.RotationVector != nil:
		return components.NewMotionComponentFromRotationVector(linear, mgl64.Vec3(*cfg.RotationVector))
	case cfg.Euler != nil:
		e := *cfg.Euler
		return components.NewMotionComponentFromEuler(linear, e[0], e[1], e[2])
	case cfg.Axis != nil:
		return components.NewMotionComponent(linear, mgl64.Vec3(*cfg.Axis), cfg.Rate)
	default:
		return components.NewMotionComponent(linear, mgl64.Vec3{}, 0)
	}
}
