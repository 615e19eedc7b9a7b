package scenes

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/decker502/spin3d/pkg/config"
	"github.com/decker502/spin3d/pkg/ecs"
	"github.com/decker502/spin3d/pkg/entities"
)

// BootstrapResult Bootstrap 创建的实体
type BootstrapResult struct {
	Camera ecs.EntityID
	Solids []ecs.EntityID
	Lights []ecs.EntityID
}

// Bootstrap 按场景配置填充实体管理器
//
// 创建顺序：相机、所有实体、所有光源。Bootstrap 本身不持有状态，
// 每个场景只应调用一次。
//
// 参数:
//   - em: 空的实体管理器
//   - sceneCfg: 场景配置，nil 时使用 config.DefaultSceneConfig()
//   - loader: 资源加载器
//
// 返回:
//   - *BootstrapResult: 创建的实体ID
//   - error: 配置无效、网格生成失败或运动参数不合法，原始错误可通过 errors.Is 判断
func Bootstrap(em *ecs.EntityManager, sceneCfg *config.SceneConfig, loader entities.ResourceLoader) (*BootstrapResult, error) {
	if sceneCfg == nil {
		sceneCfg = config.DefaultSceneConfig()
	}
	if err := sceneCfg.Validate(); err != nil {
		return nil, fmt.Errorf("bootstrap %q: %w", sceneCfg.Name, err)
	}

	result := &BootstrapResult{
		Camera: entities.NewCameraEntity(em, sceneCfg.Camera),
	}

	for _, solid := range sceneCfg.Solids {
		id, err := entities.NewSolidEntity(em, loader, solid)
		if err != nil {
			return nil, fmt.Errorf("bootstrap %q: %w", sceneCfg.Name, err)
		}
		result.Solids = append(result.Solids, id)
	}

	for _, light := range sceneCfg.Lights {
		result.Lights = append(result.Lights, entities.NewLightEntity(em, light))
	}

	log.Info().Str("component", "Bootstrap").Str("scene", sceneCfg.Name).
		Uint64("camera", uint64(result.Camera)).
		Int("solids", len(result.Solids)).
		Int("lights", len(result.Lights)).
		Msg("场景实体创建完成")
	return result, nil
}
