package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a runnable scene (the spinning scene, a loading screen, ...).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update advances the scene by the elapsed time in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Saveable 是一个可选接口，场景在程序退出时保存状态
//
// 实现此接口的场景会在以下时机被调用 SaveOnExit()：
//   - 窗口关闭
//   - 终端查看器退出
type Saveable interface {
	// SaveOnExit 在场景退出时保存状态
	// 返回 true 表示保存成功或无需保存
	// 返回 false 表示保存失败（但程序仍会正常退出）
	SaveOnExit() bool
}
