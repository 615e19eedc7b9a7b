// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"github.com/decker502/spin3d/internal/telemetry"
	"github.com/decker502/spin3d/pkg/config"
	"github.com/decker502/spin3d/pkg/embedded"
	"github.com/decker502/spin3d/pkg/game"
	"github.com/decker502/spin3d/pkg/scenes"
	"github.com/decker502/spin3d/pkg/systems"
	"github.com/decker502/spin3d/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	// AppConfig 程序配置，nil 时使用 config.LoadAppConfig("") 的默认值
	AppConfig *config.AppConfig
	// SceneConfig 场景配置，nil 时按 AppConfig.ScenePath 解析
	SceneConfig *config.SceneConfig

	// Resume 从最近一次的快照恢复
	Resume bool
	// Snapshots 快照管理器，可为 nil
	Snapshots *game.SnapshotManager
	// Trace 轨迹存储，可为 nil
	Trace systems.SampleWriter
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	clock        *game.FrameClock
	metrics      *telemetry.FrameMetrics

	width, height int
	closing       bool

	// 自动保存间隔和距上次保存累计的模拟时间
	autosave      float64
	sinceSnapshot float64
}

// NewApp 创建并初始化应用
//
// 使用嵌入的场景文件前，必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	appCfg := cfg.AppConfig
	if appCfg == nil {
		var err error
		if appCfg, err = config.LoadAppConfig(""); err != nil {
			return nil, err
		}
	}

	sceneCfg := cfg.SceneConfig
	if sceneCfg == nil {
		var err error
		if sceneCfg, err = ResolveSceneConfig(appCfg.ScenePath); err != nil {
			return nil, err
		}
	}

	var clock *game.FrameClock
	if appCfg.Clock.Mode == config.ClockMeasured {
		clock = game.NewMeasuredFrameClock(appCfg.Clock.TimeScale, nil)
	} else {
		clock = game.NewFixedFrameClock(appCfg.Clock.TPS, appCfg.Clock.TimeScale)
	}

	a := &App{
		sceneManager: game.NewSceneManager(),
		clock:        clock,
		width:        appCfg.Window.Width,
		height:       appCfg.Window.Height,
		autosave:     appCfg.Snapshot.Autosave,
	}

	metrics, err := telemetry.New(appCfg.Metrics.Enabled, sceneCfg.Name, a.liveEntities)
	if err != nil {
		return nil, fmt.Errorf("指标初始化失败: %w", err)
	}
	a.metrics = metrics

	resources := game.NewResourceManager()
	a.sceneManager.SetSceneFactory(scenes.NewSceneFactory(scenes.SpinSceneOptions{
		SceneConfig:   sceneCfg,
		Loader:        resources,
		ClearColor:    appCfg.ClearRGBA(),
		DrawEdges:     appCfg.Window.DrawEdges,
		ShowHUD:       !utils.IsMobile(),
		Trace:         cfg.Trace,
		TraceInterval: appCfg.Trace.Interval,
		Snapshots:     cfg.Snapshots,
		Resume:        cfg.Resume,
		Metrics:       metrics,
	}))

	if err := a.sceneManager.LoadScene(sceneCfg.Name); err != nil {
		metrics.Close()
		return nil, fmt.Errorf("场景初始化失败: %w", err)
	}

	log.Info().Str("component", "App").Str("scene", a.sceneManager.CurrentName()).
		Bool("fixedStep", clock.IsFixed()).Float64("timeScale", appCfg.Clock.TimeScale).
		Int("meshes", resources.CachedMeshCount()).Float64("autosave", a.autosave).
		Msg("应用初始化完成")
	return a, nil
}

// ResolveSceneConfig 读取场景配置
//
// 优先级：磁盘上的 path、嵌入的 data/scene.yaml、内置默认场景。
func ResolveSceneConfig(path string) (*config.SceneConfig, error) {
	if path != "" {
		return config.LoadSceneConfig(path)
	}

	if !embedded.IsInitialized() {
		log.Debug().Str("component", "App").Msg("嵌入资源未初始化，使用内置默认场景")
		return config.DefaultSceneConfig(), nil
	}
	if !embedded.Exists(config.DefaultScenePath) {
		return nil, fmt.Errorf("embedded scene %s not found", config.DefaultScenePath)
	}

	data, err := embedded.ReadFile(config.DefaultScenePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded scene: %w", err)
	}
	return config.ParseSceneConfig(data)
}

func (a *App) liveEntities() int {
	if s, ok := a.sceneManager.GetCurrentScene().(*scenes.SpinScene); ok {
		return s.EntityManager().EntityCount()
	}
	return 0
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() && !a.closing {
		a.closing = true
		a.SaveOnExit()
		return ebiten.Termination
	}

	a.step(a.clock.Tick())
	return nil
}

// step 推进一帧，到达自动保存间隔时保存快照
// 移动端没有关闭事件，只能依靠自动保存
func (a *App) step(deltaTime float64) {
	a.sceneManager.Update(deltaTime)

	if a.autosave <= 0 {
		return
	}
	a.sinceSnapshot += deltaTime
	if a.sinceSnapshot >= a.autosave {
		a.sinceSnapshot = 0
		a.SaveOnExit()
	}
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

// SaveOnExit 转发给当前场景
func (a *App) SaveOnExit() bool {
	return a.sceneManager.SaveOnExit()
}

// Close 关闭当前场景并释放指标回调
func (a *App) Close() error {
	if s, ok := a.sceneManager.GetCurrentScene().(*scenes.SpinScene); ok {
		s.Close()
	}
	return a.metrics.Close()
}

// Clock 返回帧时钟
func (a *App) Clock() *game.FrameClock {
	return a.clock
}
