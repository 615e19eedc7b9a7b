package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultScenePath 嵌入的默认场景描述
const DefaultScenePath = "data/scene.yaml"

// SceneConfig 场景描述
//
// 描述启动时创建的相机、实体和光源。
// 默认值（DefaultSceneConfig）还原最初的演示场景：
// 相机位于 (0,0,5)，原点处一个旋转的立方体，(5,5,20) 处一盏白色点光源。
//
// 配置文件位置: data/scene.yaml
type SceneConfig struct {
	// Name 场景名称，用于日志、快照和轨迹记录
	Name string `yaml:"name"`

	Camera CameraConfig  `yaml:"camera"`
	Solids []SolidConfig `yaml:"solids"`
	Lights []LightConfig `yaml:"lights"`
}

// CameraConfig 相机配置
type CameraConfig struct {
	Translation [3]float64 `yaml:"translation"`
	Width       float64    `yaml:"width"`
	Height      float64    `yaml:"height"`
	FovY        float64    `yaml:"fovY"` // 弧度
	Near        float64    `yaml:"near"`
	Far         float64    `yaml:"far"`
}

// SolidConfig 可渲染实体配置
type SolidConfig struct {
	Label string `yaml:"label"`

	// Shape 网格形状: cube, sphere, triangle
	Shape string `yaml:"shape"`

	// Divisions 球体细分 [u, v]，0 表示默认值
	Divisions [2]int `yaml:"divisions"`

	Translation [3]float64 `yaml:"translation"`
	// Euler 初始姿态 [roll, pitch, yaw]（弧度）
	Euler [3]float64 `yaml:"euler"`
	Scale [3]float64 `yaml:"scale"`

	Material *MaterialConfig `yaml:"material,omitempty"`

	// Motion 为 nil 时实体保持静止（不挂载运动组件）
	Motion *MotionConfig `yaml:"motion,omitempty"`
}

// MaterialConfig 材质配置
type MaterialConfig struct {
	Albedo  [3]float64 `yaml:"albedo"`
	Ambient float64    `yaml:"ambient"`
}

// MotionConfig 恒定速度配置
//
// 旋转有三种写法，最多只能给出一种：
//   - rotationVector: 角速度向量 ω，方向为轴，模长为速率
//   - euler: 每秒旋转量的欧拉角 [roll, pitch, yaw]
//   - axis + rate: 单位轴与速率（弧度/秒）
//
// 都不写时表示只平移不旋转。
type MotionConfig struct {
	Linear         [3]float64  `yaml:"linear"`
	RotationVector *[3]float64 `yaml:"rotationVector,omitempty"`
	Euler          *[3]float64 `yaml:"euler,omitempty"`
	Axis           *[3]float64 `yaml:"axis,omitempty"`
	Rate           float64     `yaml:"rate,omitempty"`
}

// LightConfig 点光源配置
type LightConfig struct {
	Label       string     `yaml:"label"`
	Translation [3]float64 `yaml:"translation"`
	Intensity   float64    `yaml:"intensity"`
	Color       [3]float64 `yaml:"color"`
	Radius      float64    `yaml:"radius"`
	Smoothness  float64    `yaml:"smoothness"`
}

// DefaultSceneConfig 返回默认场景
func DefaultSceneConfig() *SceneConfig {
	return &SceneConfig{
		Name: "spin",
		Camera: CameraConfig{
			Translation: [3]float64{0, 0, 5},
			Width:       DefaultWindowWidth,
			Height:      DefaultWindowHeight,
			FovY:        math.Pi / 3,
			Near:        0.1,
			Far:         2000,
		},
		Solids: []SolidConfig{
			{
				Label: "cube",
				Shape: "cube",
				Scale: [3]float64{1, 1, 1},
				Motion: &MotionConfig{
					Euler: &[3]float64{0.43, 0.27, 0.13},
				},
			},
		},
		Lights: []LightConfig{
			{
				Label:       "light",
				Translation: [3]float64{5, 5, 20},
				Intensity:   10,
				Color:       [3]float64{1, 1, 1},
				Radius:      10,
				Smoothness:  4,
			},
		},
	}
}

// LoadSceneConfig 从磁盘加载场景配置
//
// 参数:
//   - path: 配置文件路径（如 "data/scene.yaml"）
//
// 返回:
//   - *SceneConfig: 加载成功后的配置结构
//   - error: 读取、解析或验证失败时返回错误
func LoadSceneConfig(path string) (*SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene config: %w", err)
	}
	return ParseSceneConfig(data)
}

// ParseSceneConfig 解析 YAML 格式的场景配置
//
// 文件中缺失的标量字段保留默认值；solids 和 lights 一旦出现则整体替换默认列表。
func ParseSceneConfig(data []byte) (*SceneConfig, error) {
	config := DefaultSceneConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse scene config: %w", err)
	}

	// 列表中的条目没有默认值，这里补齐缩放
	for i := range config.Solids {
		if config.Solids[i].Scale == [3]float64{} {
			config.Solids[i].Scale = [3]float64{1, 1, 1}
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene config: %w", err)
	}
	return config, nil
}

// Validate 验证配置有效性
//
// 这里只检查结构问题；轴是否为单位向量等运动参数的数值约束
// 由 components.NewMotionComponent 在创建实体时检查。
func (c *SceneConfig) Validate() error {
	cam := c.Camera
	if cam.Width <= 0 || cam.Height <= 0 {
		return fmt.Errorf("camera size must be positive, got %.0fx%.0f", cam.Width, cam.Height)
	}
	if cam.FovY <= 0 || cam.FovY >= math.Pi {
		return fmt.Errorf("camera fovY must be in (0, π), got %f", cam.FovY)
	}
	if cam.Near <= 0 || cam.Far <= cam.Near {
		return fmt.Errorf("camera clip planes invalid: near(%f) far(%f)", cam.Near, cam.Far)
	}

	if len(c.Solids) == 0 {
		return errors.New("scene has no solids")
	}
	for i, s := range c.Solids {
		if s.Shape == "" {
			return fmt.Errorf("solid %d (%s): shape is required", i, s.Label)
		}
		if s.Divisions[0] < 0 || s.Divisions[1] < 0 {
			return fmt.Errorf("solid %d (%s): divisions must not be negative", i, s.Label)
		}
		if s.Motion != nil {
			if err := s.Motion.validate(); err != nil {
				return fmt.Errorf("solid %d (%s): %w", i, s.Label, err)
			}
		}
	}

	for i, l := range c.Lights {
		if l.Intensity < 0 {
			return fmt.Errorf("light %d (%s): intensity must not be negative, got %f", i, l.Label, l.Intensity)
		}
		for _, ch := range l.Color {
			if ch < 0 || ch > 1 {
				return fmt.Errorf("light %d (%s): color channels must be in [0,1]", i, l.Label)
			}
		}
	}
	return nil
}

func (m *MotionConfig) validate() error {
	forms := 0
	if m.RotationVector != nil {
		forms++
	}
	if m.Euler != nil {
		forms++
	}
	if m.Axis != nil {
		forms++
	}
	if forms > 1 {
		return errors.New("motion: only one of rotationVector, euler, axis may be set")
	}
	if m.Axis == nil && m.Rate != 0 {
		return errors.New("motion: rate requires axis")
	}
	return nil
}
