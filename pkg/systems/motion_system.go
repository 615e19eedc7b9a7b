package systems

import (
	"github.com/decker502/spin3d/pkg/components"
	"github.com/decker502/spin3d/pkg/ecs"
)

// MotionSystem 按恒定速度推进实体的变换
//
// 每帧处理所有同时拥有 TransformComponent 和 MotionComponent 的实体：
// 追加旋转 rate*dt，追加平移 linear*dt，不修改缩放。
// 只读 MotionComponent，独占写 TransformComponent；实体之间没有共享状态。
type MotionSystem struct {
	entityManager *ecs.EntityManager
}

// NewMotionSystem 创建运动积分系统
func NewMotionSystem(em *ecs.EntityManager) *MotionSystem {
	return &MotionSystem{
		entityManager: em,
	}
}

// Update 推进一帧
//
// 参数:
//   - deltaTime: 自上一帧以来经过的时间（秒），0 表示空帧
//
// 返回:
//   - int: 本帧处理的实体数量
func (s *MotionSystem) Update(deltaTime float64) int {
	entities := ecs.GetEntitiesWith2[
		*components.TransformComponent,
		*components.MotionComponent,
	](s.entityManager)

	for _, id := range entities {
		transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if !ok {
			continue
		}
		motion, ok := ecs.GetComponent[*components.MotionComponent](s.entityManager, id)
		if !ok {
			continue
		}
		IntegrateMotion(motion, transform, deltaTime)
	}

	return len(entities)
}

// IntegrateMotion 对单个实体执行一步恒速积分
// 只修改 transform 的 Translation 和 Rotation
func IntegrateMotion(motion *components.MotionComponent, transform *components.TransformComponent, deltaTime float64) {
	if axis, rate, ok := motion.Rotation(); ok {
		transform.AppendRotation(axis, rate*deltaTime)
	}
	transform.AppendTranslation(motion.Linear().Mul(deltaTime))
}
