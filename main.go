package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/profile"
	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog/log"

	"github.com/decker502/spin3d/internal/logging"
	"github.com/decker502/spin3d/internal/recorder"
	"github.com/decker502/spin3d/pkg/app"
	"github.com/decker502/spin3d/pkg/config"
	"github.com/decker502/spin3d/pkg/embedded"
	"github.com/decker502/spin3d/pkg/game"
	"github.com/decker502/spin3d/pkg/systems"
)

var (
	configPath  = flag.String("config", "", "程序配置文件路径（YAML）")
	scenePath   = flag.String("scene", "", "场景文件路径，默认使用嵌入的 data/scene.yaml")
	verbose     = flag.Bool("verbose", false, "显示详细调试信息")
	resume      = flag.Bool("resume", false, "从上次退出时的快照恢复")
	profileMode = flag.String("profile", "", "性能分析: cpu 或 mem")
	recordDSN   = flag.String("record", "", "记录实体轨迹到数据库（trace.db、sqlite://path、postgres://...）")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		log.Error().Err(err).Msg("启动失败")
		os.Exit(1)
	}
}

func run() error {
	embedded.Init(dataFS)

	appCfg, err := config.LoadAppConfig(*configPath)
	if err != nil {
		return err
	}
	if *scenePath != "" {
		appCfg.ScenePath = *scenePath
	}
	if *recordDSN != "" {
		appCfg.Trace.DSN = *recordDSN
	}

	logger := logging.Setup(logging.Options{Level: appCfg.LogLevel, Verbose: *verbose})

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q (want cpu or mem)", *profileMode)
	}

	sceneCfg, err := app.ResolveSceneConfig(appCfg.ScenePath)
	if err != nil {
		return err
	}

	// 快照存储，失败时降级为仅内存
	gdataManager, err := gdata.Open(gdata.Config{AppName: appCfg.Snapshot.AppName})
	if err != nil {
		logger.Warn().Err(err).Msg("gdata 初始化失败，快照不会持久化")
		gdataManager = nil
	}

	var trace systems.SampleWriter
	if appCfg.Trace.DSN != "" {
		store, err := recorder.Open(appCfg.Trace.DSN, logging.Component("Recorder"))
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Warn().Err(err).Msg("关闭轨迹数据库失败")
			}
		}()
		if _, err := store.BeginRun(sceneCfg.Name); err != nil {
			return err
		}
		trace = store
	}

	gameApp, err := app.NewApp(app.Config{
		AppConfig:   appCfg,
		SceneConfig: sceneCfg,
		Resume:      *resume,
		Snapshots:   game.NewSnapshotManager(gdataManager),
		Trace:       trace,
	})
	if err != nil {
		return err
	}
	defer gameApp.Close()

	ebiten.SetWindowSize(appCfg.Window.Width, appCfg.Window.Height)
	ebiten.SetWindowTitle(appCfg.Window.Title)
	if appCfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(appCfg.Clock.TPS)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(gameApp); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("运行失败: %w", err)
	}
	logger.Info().Msg("已退出")
	return nil
}
