package entities

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/spin3d/pkg/components"
	"github.com/decker502/spin3d/pkg/config"
	"github.com/decker502/spin3d/pkg/ecs"
)

// CameraLabel 相机实体的名称
const CameraLabel = "camera"

// NewCameraEntity 创建相机实体
//
// 相机只有变换和投影参数，不挂载运动组件，因此在整个运行期间保持静止。
// 未填写（为 0）的 fovY、near、far 使用标准三维相机的默认值。
//
// 参数:
//   - em: 实体管理器
//   - cfg: 相机配置（位置与投影参数）
//
// 返回:
//   - ecs.EntityID: 创建的相机实体ID
func NewCameraEntity(em *ecs.EntityManager, cfg config.CameraConfig) ecs.EntityID {
	id := em.CreateEntity()

	transform := components.NewTransform()
	transform.Translation = mgl64.Vec3(cfg.Translation)
	em.AddComponent(id, transform)

	camera := components.NewStandard3DCamera(cfg.Width, cfg.Height)
	if cfg.FovY > 0 {
		camera.FovY = cfg.FovY
	}
	if cfg.Near > 0 {
		camera.Near = cfg.Near
	}
	if cfg.Far > 0 {
		camera.Far = cfg.Far
	}
	em.AddComponent(id, camera)
	em.AddComponent(id, &components.LabelComponent{Name: CameraLabel})

	return id
}
