package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/quasilyte/gdata/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/spin3d/pkg/components"
	"github.com/decker502/spin3d/pkg/ecs"
)

// newTestGdataManager 在临时 HOME 下创建 gdata Manager
func newTestGdataManager(t *testing.T) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", tempDir)

	manager, err := gdata.Open(gdata.Config{AppName: "spin3d_snapshot_test"})
	if err != nil {
		t.Skipf("Cannot create gdata manager for testing: %v", err)
	}
	return manager
}

// newLabelledEntity 创建带名称和变换的实体
func newLabelledEntity(em *ecs.EntityManager, name string, translation mgl64.Vec3) (ecs.EntityID, *components.TransformComponent) {
	id := em.CreateEntity()
	tr := components.NewTransform()
	tr.Translation = translation
	em.AddComponent(id, tr)
	em.AddComponent(id, &components.LabelComponent{Name: name})
	return id, tr
}

func TestCaptureSnapshot(t *testing.T) {
	em := ecs.NewEntityManager()
	_, cube := newLabelledEntity(em, "cube", mgl64.Vec3{1, 2, 3})
	cube.AppendRotation(mgl64.Vec3{0, 1, 0}, 0.5)
	newLabelledEntity(em, "light", mgl64.Vec3{5, 5, 20})
	newLabelledEntity(em, "cube", mgl64.Vec3{9, 9, 9}) // 同名，忽略

	// 没有名称的实体不进入快照
	anon := em.CreateEntity()
	em.AddComponent(anon, components.NewTransform())

	snap := CaptureSnapshot(em, "spin", 42, 0.7)

	assert.Equal(t, "spin", snap.Scene)
	assert.Equal(t, uint64(42), snap.Frame)
	assert.Equal(t, 0.7, snap.SimTime)
	require.Len(t, snap.Entities, 2)
	assert.Equal(t, "cube", snap.Entities[0].Label)
	assert.Equal(t, [3]float64{1, 2, 3}, snap.Entities[0].Translation)
	assert.Equal(t, cube.Rotation.W, snap.Entities[0].Rotation[0])
	assert.Equal(t, [3]float64{1, 1, 1}, snap.Entities[0].Scale)
	assert.Equal(t, "light", snap.Entities[1].Label)
}

func TestApplySnapshot(t *testing.T) {
	src := ecs.NewEntityManager()
	_, cube := newLabelledEntity(src, "cube", mgl64.Vec3{0, 0, -3})
	cube.AppendRotation(mgl64.Vec3{1, 0, 0}, 1.2)
	snap := CaptureSnapshot(src, "spin", 10, 1)
	snap.Entities = append(snap.Entities,
		EntitySnapshot{Label: "ghost", Rotation: [4]float64{1, 0, 0, 0}},
		EntitySnapshot{Label: "broken"},
	)

	dst := ecs.NewEntityManager()
	_, target := newLabelledEntity(dst, "cube", mgl64.Vec3{})
	_, broken := newLabelledEntity(dst, "broken", mgl64.Vec3{7, 7, 7})

	restored := ApplySnapshot(dst, snap)

	assert.Equal(t, 1, restored)
	assert.Equal(t, mgl64.Vec3{0, 0, -3}, target.Translation)
	assert.True(t, target.Rotation.ApproxEqualThreshold(cube.Rotation, 1e-12))
	assert.True(t, target.IsNormalized())
	assert.Equal(t, mgl64.Vec3{7, 7, 7}, broken.Translation, "零四元数的条目被跳过")

	assert.Equal(t, 0, ApplySnapshot(dst, nil))
}

func TestSnapshotManager_MemoryOnly(t *testing.T) {
	sm := NewSnapshotManager(nil)

	loaded, err := sm.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	snap := &SceneSnapshot{Scene: "spin", Frame: 3}
	require.NoError(t, sm.Save(snap))

	loaded, err = sm.Load()
	require.NoError(t, err)
	assert.Same(t, snap, loaded)
}

func TestSnapshotManager_Persisted(t *testing.T) {
	manager := newTestGdataManager(t)

	em := ecs.NewEntityManager()
	_, cube := newLabelledEntity(em, "cube", mgl64.Vec3{0.5, 0, 0})
	cube.AppendRotation(mgl64.Vec3{0, 0, 1}, 2)
	snap := CaptureSnapshot(em, "spin", 120, 2)

	require.NoError(t, NewSnapshotManager(manager).Save(snap))

	// 新实例从磁盘读取
	loaded, err := NewSnapshotManager(manager).Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, snap.Scene, loaded.Scene)
	assert.Equal(t, snap.Frame, loaded.Frame)
	assert.Equal(t, snap.SimTime, loaded.SimTime)
	require.Len(t, loaded.Entities, 1)
	for i := 0; i < 4; i++ {
		assert.InDelta(t, snap.Entities[0].Rotation[i], loaded.Entities[0].Rotation[i], 1e-12)
	}
}

func TestSnapshotManager_NoSavedSnapshot(t *testing.T) {
	manager := newTestGdataManager(t)

	loaded, err := NewSnapshotManager(manager).Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
