package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/decker502/spin3d/pkg/components"
	"github.com/decker502/spin3d/pkg/ecs"
)

// 存储路径常量
const (
	snapshotObject   = "snapshot"
	snapshotProperty = "last"
)

// EntitySnapshot 单个带名称实体的变换
type EntitySnapshot struct {
	Label       string     `yaml:"label"`
	Translation [3]float64 `yaml:"translation"`
	Rotation    [4]float64 `yaml:"rotation"` // w, x, y, z
	Scale       [3]float64 `yaml:"scale"`
}

// SceneSnapshot 场景在某一帧的可恢复状态
type SceneSnapshot struct {
	Scene    string           `yaml:"scene"`
	Frame    uint64           `yaml:"frame"`
	SimTime  float64          `yaml:"simTime"`
	Entities []EntitySnapshot `yaml:"entities"`
}

// SnapshotManager 快照管理器
// 负责场景快照的保存和加载
type SnapshotManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅保存在内存中）
	last         *SceneSnapshot
}

// NewSnapshotManager 创建快照管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
func NewSnapshotManager(gdataManager *gdata.Manager) *SnapshotManager {
	return &SnapshotManager{gdataManager: gdataManager}
}

// Save 保存快照
//
// 降级模式下只保留在内存中，不报错
func (sm *SnapshotManager) Save(snapshot *SceneSnapshot) error {
	sm.last = snapshot
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(snapshotObject, snapshotProperty, data); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	log.Debug().Str("component", "SnapshotManager").Str("scene", snapshot.Scene).
		Int("entities", len(snapshot.Entities)).Msg("快照已保存")
	return nil
}

// Load 加载最近一次保存的快照
//
// 返回：
//   - *SceneSnapshot: 没有快照时为 nil
//   - error: 读取或反序列化失败
func (sm *SnapshotManager) Load() (*SceneSnapshot, error) {
	if sm.gdataManager == nil {
		return sm.last, nil
	}
	if !sm.gdataManager.ObjectPropExists(snapshotObject, snapshotProperty) {
		return nil, nil
	}

	data, err := sm.gdataManager.LoadObjectProp(snapshotObject, snapshotProperty)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snapshot SceneSnapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	sm.last = &snapshot
	return &snapshot, nil
}

// CaptureSnapshot 记录所有带名称实体的变换
// 实体按 ID 顺序遍历；同名实体只记录第一个
func CaptureSnapshot(em *ecs.EntityManager, scene string, frame uint64, simTime float64) *SceneSnapshot {
	snapshot := &SceneSnapshot{Scene: scene, Frame: frame, SimTime: simTime}
	seen := make(map[string]bool)

	for _, id := range ecs.GetEntitiesWith2[*components.TransformComponent, *components.LabelComponent](em) {
		label, _ := ecs.GetComponent[*components.LabelComponent](em, id)
		tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		if label.Name == "" || seen[label.Name] {
			continue
		}
		seen[label.Name] = true

		snapshot.Entities = append(snapshot.Entities, EntitySnapshot{
			Label:       label.Name,
			Translation: [3]float64(tr.Translation),
			Rotation:    [4]float64{tr.Rotation.W, tr.Rotation.V[0], tr.Rotation.V[1], tr.Rotation.V[2]},
			Scale:       [3]float64(tr.Scale),
		})
	}
	return snapshot
}

// ApplySnapshot 把快照中的变换写回同名实体
//
// 快照中不存在的实体保持不变；快照中有、场景中没有的名称被忽略。
// 旋转在写回前重新归一化，零四元数视为损坏数据并跳过。
//
// 返回：
//   - int: 实际恢复的实体数量
func ApplySnapshot(em *ecs.EntityManager, snapshot *SceneSnapshot) int {
	if snapshot == nil {
		return 0
	}

	byLabel := make(map[string]*components.TransformComponent)
	for _, id := range ecs.GetEntitiesWith2[*components.TransformComponent, *components.LabelComponent](em) {
		label, _ := ecs.GetComponent[*components.LabelComponent](em, id)
		if _, exists := byLabel[label.Name]; exists {
			continue
		}
		tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		byLabel[label.Name] = tr
	}

	restored := 0
	for _, es := range snapshot.Entities {
		tr, ok := byLabel[es.Label]
		if !ok {
			log.Debug().Str("component", "SnapshotManager").Str("label", es.Label).Msg("快照实体在场景中不存在，跳过")
			continue
		}
		q := mgl64.Quat{W: es.Rotation[0], V: mgl64.Vec3{es.Rotation[1], es.Rotation[2], es.Rotation[3]}}
		if q.Len() < components.OrientationEpsilon {
			log.Warn().Str("component", "SnapshotManager").Str("label", es.Label).Msg("快照旋转无效，跳过")
			continue
		}

		tr.Translation = mgl64.Vec3(es.Translation)
		tr.Rotation = q.Normalize()
		tr.Scale = mgl64.Vec3(es.Scale)
		restored++
	}
	return restored
}
