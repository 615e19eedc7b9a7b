package scenes

import (
	"fmt"

	"github.com/decker502/spin3d/pkg/config"
	"github.com/decker502/spin3d/pkg/game"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

var (
	_ Scene         = (*SpinScene)(nil)
	_ game.Saveable = (*SpinScene)(nil)
)

// NewSceneFactory 返回供 game.SceneManager 使用的工厂函数
//
// 名称与场景配置中的 name 一致时创建 SpinScene，其他名称返回错误。
func NewSceneFactory(opts SpinSceneOptions) game.SceneFactory {
	return func(name string) (game.Scene, error) {
		want := config.DefaultSceneConfig().Name
		if opts.SceneConfig != nil {
			want = opts.SceneConfig.Name
		}
		if name != want {
			return nil, fmt.Errorf("unknown scene %q", name)
		}
		scene, err := NewSpinScene(opts)
		if err != nil {
			return nil, err
		}
		return scene, nil
	}
}
