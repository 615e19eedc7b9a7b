//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译。
//
//	# Android
//	cp -r data mobile/ && ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.spin3d -o build/android/spin3d.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	cp -r data mobile/ && ebitenmobile bind -target ios -tags mobile -o build/ios/Spin3D.xcframework -v ./mobile
package mobile

import (
	"github.com/hajimehoshi/ebiten/v2/mobile"
	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog/log"

	"github.com/decker502/spin3d/internal/logging"
	"github.com/decker502/spin3d/pkg/app"
	"github.com/decker502/spin3d/pkg/config"
	"github.com/decker502/spin3d/pkg/embedded"
	"github.com/decker502/spin3d/pkg/game"
	"github.com/decker502/spin3d/pkg/utils"
)

// mobileAutosaveSeconds 移动端默认自动保存间隔
const mobileAutosaveSeconds = 5.0

func init() {
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	appCfg, err := config.LoadAppConfig("")
	if err != nil {
		log.Fatal().Err(err).Msg("配置加载失败")
	}
	logging.Setup(logging.Options{Level: appCfg.LogLevel, NoColor: true})

	// 移动端没有窗口关闭事件，靠自动保存写快照，启动时恢复
	if appCfg.Snapshot.Autosave == 0 {
		appCfg.Snapshot.Autosave = mobileAutosaveSeconds
	}
	if err := utils.EnsureStorageDir(); err != nil {
		log.Warn().Err(err).Msg("存储目录不可用，快照只保存在内存中")
	}
	var gdataManager *gdata.Manager
	if m, err := gdata.Open(gdata.Config{AppName: appCfg.Snapshot.AppName}); err == nil {
		gdataManager = m
	}

	gameApp, err := app.NewApp(app.Config{
		AppConfig: appCfg,
		Resume:    true,
		Snapshots: game.NewSnapshotManager(gdataManager),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("应用初始化失败")
	}

	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
