package scenes

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/decker502/spin3d/internal/telemetry"
	"github.com/decker502/spin3d/pkg/config"
	"github.com/decker502/spin3d/pkg/ecs"
	"github.com/decker502/spin3d/pkg/entities"
	"github.com/decker502/spin3d/pkg/game"
	"github.com/decker502/spin3d/pkg/systems"
)

// SpinSceneOptions 创建 SpinScene 所需的依赖
type SpinSceneOptions struct {
	// SceneConfig 场景描述，nil 时使用默认场景
	SceneConfig *config.SceneConfig
	Loader      entities.ResourceLoader

	ClearColor color.Color
	DrawEdges  bool
	ShowHUD    bool

	// Trace 轨迹存储，nil 表示不记录
	Trace         systems.SampleWriter
	TraceInterval int

	// Snapshots 快照管理器，nil 表示不保存
	Snapshots *game.SnapshotManager
	// Resume 创建后恢复最近一次的快照
	Resume bool

	// Metrics 帧指标，nil 表示不记录
	Metrics *telemetry.FrameMetrics
}

// SpinScene 主场景：相机注视一个持续旋转的实体
//
// 每帧的系统执行顺序：
//  1. MotionSystem：按恒定速度推进变换
//  2. TraceSystem：（可选）记录推进后的变换
//
// Draw 阶段由 RenderSystem 只读地绘制场景。
type SpinScene struct {
	name          string
	entityManager *ecs.EntityManager
	entities      *BootstrapResult

	motionSystem *systems.MotionSystem
	traceSystem  *systems.TraceSystem
	renderSystem *systems.RenderSystem

	snapshots *game.SnapshotManager
	metrics   *telemetry.FrameMetrics
	showHUD   bool

	frame   uint64
	simTime float64

	logger zerolog.Logger
}

// NewSpinScene 创建场景并执行 Bootstrap
func NewSpinScene(opts SpinSceneOptions) (*SpinScene, error) {
	sceneCfg := opts.SceneConfig
	if sceneCfg == nil {
		sceneCfg = config.DefaultSceneConfig()
	}
	clearColor := opts.ClearColor
	if clearColor == nil {
		clearColor = color.Black
	}

	em := ecs.NewEntityManager()
	result, err := Bootstrap(em, sceneCfg, opts.Loader)
	if err != nil {
		return nil, err
	}

	s := &SpinScene{
		name:          sceneCfg.Name,
		entityManager: em,
		entities:      result,
		motionSystem:  systems.NewMotionSystem(em),
		renderSystem:  systems.NewRenderSystem(em, clearColor),
		snapshots:     opts.Snapshots,
		metrics:       opts.Metrics,
		showHUD:       opts.ShowHUD,
		logger:        log.With().Str("component", "SpinScene").Str("scene", sceneCfg.Name).Logger(),
	}
	s.renderSystem.SetDrawEdges(opts.DrawEdges)

	if opts.Trace != nil {
		s.traceSystem = systems.NewTraceSystem(em, opts.Trace, opts.TraceInterval)
	}

	if opts.Resume {
		s.resume()
	}

	return s, nil
}

// resume 恢复快照；快照缺失或属于其他场景时从头开始
func (s *SpinScene) resume() {
	if s.snapshots == nil {
		return
	}
	snap, err := s.snapshots.Load()
	if err != nil {
		s.logger.Warn().Err(err).Msg("读取快照失败，从头开始")
		return
	}
	if snap == nil {
		s.logger.Info().Msg("没有可恢复的快照")
		return
	}
	if snap.Scene != s.name {
		s.logger.Info().Str("snapshot", snap.Scene).Msg("快照属于其他场景，忽略")
		return
	}

	restored := game.ApplySnapshot(s.entityManager, snap)
	s.frame = snap.Frame
	s.simTime = snap.SimTime
	if s.traceSystem != nil {
		s.traceSystem.Resume(s.frame, s.simTime)
	}
	s.logger.Info().Int("restored", restored).Uint64("frame", s.frame).
		Float64("simTime", s.simTime).Msg("已从快照恢复")
}

// Update 推进一帧
func (s *SpinScene) Update(deltaTime float64) {
	start := time.Now()

	integrated := s.motionSystem.Update(deltaTime)
	if s.traceSystem != nil {
		s.traceSystem.Update(deltaTime)
	}

	s.frame++
	s.simTime += deltaTime

	if s.metrics != nil {
		s.metrics.RecordFrame(context.Background(), integrated, time.Since(start))
	}
}

// Draw 绘制场景和 HUD
func (s *SpinScene) Draw(screen *ebiten.Image) {
	s.renderSystem.Draw(screen)

	if s.showHUD {
		ebitenutil.DebugPrint(screen, s.HUDText(ebiten.ActualTPS()))
	}
}

// HUDText 返回左上角的调试信息
func (s *SpinScene) HUDText(tps float64) string {
	return fmt.Sprintf("%s  frame %d  t=%.2fs\ntriangles %d  TPS %.0f",
		s.name, s.frame, s.simTime, s.renderSystem.LastTriangleCount(), tps)
}

// SaveOnExit 实现 game.Saveable，保存带名称实体的变换
func (s *SpinScene) SaveOnExit() bool {
	if s.snapshots == nil {
		return true
	}
	snap := game.CaptureSnapshot(s.entityManager, s.name, s.frame, s.simTime)
	if err := s.snapshots.Save(snap); err != nil {
		s.logger.Error().Err(err).Msg("保存快照失败")
		return false
	}
	s.logger.Info().Uint64("frame", s.frame).Int("entities", len(snap.Entities)).Msg("快照已保存")
	return true
}

// Close 销毁场景中的所有实体
func (s *SpinScene) Close() {
	ids := s.entityManager.GetEntitiesWith()
	for _, id := range ids {
		s.entityManager.DestroyEntity(id)
	}
	s.entityManager.RemoveMarkedEntities()
	s.logger.Debug().Int("destroyed", len(ids)).Msg("场景已关闭")
}

// Name 场景名称
func (s *SpinScene) Name() string {
	return s.name
}

// EntityManager 返回场景的实体管理器
func (s *SpinScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// Entities 返回 Bootstrap 创建的实体ID
func (s *SpinScene) Entities() *BootstrapResult {
	return s.entities
}

// Frame 已处理的帧数（包含从快照恢复的部分）
func (s *SpinScene) Frame() uint64 {
	return s.frame
}

// SimTime 累计的模拟时间（秒）
func (s *SpinScene) SimTime() float64 {
	return s.simTime
}
