package scenes

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/spin3d/pkg/components"
	"github.com/decker502/spin3d/pkg/config"
	"github.com/decker502/spin3d/pkg/ecs"
	"github.com/decker502/spin3d/pkg/game"
	"github.com/decker502/spin3d/pkg/systems"
)

// sameRotation 比较两个四元数表示的旋转（q 与 -q 等价）
func sameRotation(a, b mgl64.Quat, eps float64) bool {
	return a.ApproxEqualThreshold(b, eps) || a.ApproxEqualThreshold(b.Scale(-1), eps)
}

func TestBootstrap_DefaultScene(t *testing.T) {
	em := ecs.NewEntityManager()
	result, err := Bootstrap(em, nil, game.NewResourceManager())
	require.NoError(t, err)

	assert.Equal(t, 3, em.EntityCount())
	require.Len(t, result.Solids, 1)
	require.Len(t, result.Lights, 1)

	// 相机
	camTr, ok := ecs.GetComponent[*components.TransformComponent](em, result.Camera)
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{0, 0, 5}, camTr.Translation)
	cam, ok := ecs.GetComponent[*components.CameraComponent](em, result.Camera)
	require.True(t, ok)
	assert.Equal(t, 640.0, cam.Width)
	assert.Equal(t, 400.0, cam.Height)
	assert.InDelta(t, math.Pi/3, cam.FovY, 1e-12)
	assert.Equal(t, 0.1, cam.Near)
	assert.Equal(t, 2000.0, cam.Far)

	// 旋转的立方体
	solid := result.Solids[0]
	mesh, ok := ecs.GetComponent[*components.MeshComponent](em, solid)
	require.True(t, ok)
	assert.Equal(t, "cube", mesh.Key)
	assert.True(t, ecs.HasComponent[*components.MaterialComponent](em, solid))
	motion, ok := ecs.GetComponent[*components.MotionComponent](em, solid)
	require.True(t, ok)
	_, rate, rotating := motion.Rotation()
	assert.True(t, rotating)
	assert.Greater(t, rate, 0.0)
	assert.Equal(t, mgl64.Vec3{}, motion.Linear())

	// 点光源
	lightTr, ok := ecs.GetComponent[*components.TransformComponent](em, result.Lights[0])
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{5, 5, 20}, lightTr.Translation)
	light, ok := ecs.GetComponent[*components.PointLightComponent](em, result.Lights[0])
	require.True(t, ok)
	assert.Equal(t, 10.0, light.Intensity)
	assert.Equal(t, components.White, light.Color)
}

func TestBootstrap_SceneRunsFor100Frames(t *testing.T) {
	em := ecs.NewEntityManager()
	result, err := Bootstrap(em, nil, game.NewResourceManager())
	require.NoError(t, err)
	motion := systems.NewMotionSystem(em)

	camTr, _ := ecs.GetComponent[*components.TransformComponent](em, result.Camera)
	camBefore := *camTr
	solidTr, _ := ecs.GetComponent[*components.TransformComponent](em, result.Solids[0])

	for i := 0; i < 100; i++ {
		assert.Equal(t, 1, motion.Update(0.016), "只有立方体带运动组件")
	}

	lightTr, _ := ecs.GetComponent[*components.TransformComponent](em, result.Lights[0])
	assert.Equal(t, mgl64.Vec3{5, 5, 20}, lightTr.Translation)
	assert.Equal(t, camBefore, *camTr, "相机保持不动")

	assert.Equal(t, mgl64.Vec3{}, solidTr.Translation)
	assert.False(t, sameRotation(solidTr.Rotation, mgl64.QuatIdent(), 1e-3), "立方体应已转动")
	assert.True(t, solidTr.IsNormalized())
	assert.Equal(t, 3, em.EntityCount())
}

// 每秒的旋转量就是配置的欧拉角对应的四元数
func TestBootstrap_RotatingSolidOneSecond(t *testing.T) {
	want := components.EulerToQuat(0.43, 0.27, 0.13)

	run := func(steps ...float64) mgl64.Quat {
		em := ecs.NewEntityManager()
		result, err := Bootstrap(em, nil, game.NewResourceManager())
		require.NoError(t, err)
		motion := systems.NewMotionSystem(em)
		for _, dt := range steps {
			motion.Update(dt)
		}
		tr, _ := ecs.GetComponent[*components.TransformComponent](em, result.Solids[0])
		return tr.Rotation
	}

	one := run(1.0)
	two := run(0.5, 0.5)
	assert.True(t, sameRotation(one, want, 1e-9), "one step: got %v want %v", one, want)
	assert.True(t, sameRotation(two, want, 1e-9), "two steps: got %v want %v", two, want)
}

func TestBootstrap_Errors(t *testing.T) {
	t.Run("未知形状", func(t *testing.T) {
		cfg := config.DefaultSceneConfig()
		cfg.Solids[0].Shape = "teapot"
		_, err := Bootstrap(ecs.NewEntityManager(), cfg, game.NewResourceManager())
		require.Error(t, err)
		assert.True(t, errors.Is(err, game.ErrUnknownShape))
	})

	t.Run("旋转轴不是单位向量", func(t *testing.T) {
		cfg := config.DefaultSceneConfig()
		cfg.Solids[0].Motion = &config.MotionConfig{Axis: &[3]float64{1, 1, 0}, Rate: 1}
		_, err := Bootstrap(ecs.NewEntityManager(), cfg, game.NewResourceManager())
		require.Error(t, err)
		assert.True(t, errors.Is(err, components.ErrInvalidMotion))
	})

	t.Run("非有限线速度", func(t *testing.T) {
		cfg := config.DefaultSceneConfig()
		cfg.Solids[0].Motion.Linear = [3]float64{math.Inf(1), 0, 0}
		_, err := Bootstrap(ecs.NewEntityManager(), cfg, game.NewResourceManager())
		assert.True(t, errors.Is(err, components.ErrInvalidMotion))
	})

	t.Run("配置无效", func(t *testing.T) {
		cfg := config.DefaultSceneConfig()
		cfg.Solids = nil
		_, err := Bootstrap(ecs.NewEntityManager(), cfg, game.NewResourceManager())
		assert.Error(t, err)
	})
}
