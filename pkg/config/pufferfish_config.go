package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decker502/pufferfish/pkg/behavior"
)

// ErrInvalidConfig 配置校验失败
var ErrInvalidConfig = errors.New("invalid config")

// DefaultConfigPath 默认配置文件位置
const DefaultConfigPath = "data/pufferfish.yaml"

// GameConfig 游戏整体配置
//
// 世界坐标以"单位"计，渲染时乘以 Arena.PixelsPerUnit 换算成像素。
//
// 配置文件位置: data/pufferfish.yaml
type GameConfig struct {
	Arena      ArenaConfig       `yaml:"arena"`
	Pufferfish PufferfishConfig  `yaml:"pufferfish"`
	Spine      SpineConfig       `yaml:"spine"`
	Spawner    SpawnerConfig     `yaml:"spawner"`
	Player     PlayerConfig      `yaml:"player"`
	Obstacles  []ObstacleConfig  `yaml:"obstacles"`
	Sounds     map[string]string `yaml:"sounds"` // 音效资源ID -> 文件路径
}

// ArenaConfig 场地尺寸
type ArenaConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	PixelsPerUnit float64 `yaml:"pixelsPerUnit"`
}

// PufferfishConfig 河豚配置
// 行为部分与 behavior.Config 一一对应，另含碰撞盒与感应区尺寸
type PufferfishConfig struct {
	TargetTag      string  `yaml:"targetTag"`
	RotationSpeed  float64 `yaml:"rotationSpeed"`
	MinSpeed       float64 `yaml:"minSpeed"`
	MaxSpeed       float64 `yaml:"maxSpeed"`
	ExplosionSound string  `yaml:"explosionSound"`
	SpinePrefab    string  `yaml:"spinePrefab"`
	NumberOfSpines int     `yaml:"numberOfSpines"`
	SpineSpeed     float64 `yaml:"spineSpeed"`

	ExplosionDelay    float64 `yaml:"explosionDelay"`
	SoundDelay        float64 `yaml:"soundDelay"`
	SelfDestructDelay float64 `yaml:"selfDestructDelay"`

	BodySize     float64 `yaml:"bodySize"`     // 实体碰撞盒边长
	SensorRadius float64 `yaml:"sensorRadius"` // 感应区半径
}

// SpineConfig 尖刺配置
type SpineConfig struct {
	Lifetime float64 `yaml:"lifetime"` // 尖刺存在时间（秒）
	Size     float64 `yaml:"size"`     // 命中判定边长
}

// SpawnerConfig 河豚刷新配置
type SpawnerConfig struct {
	Initial  int     `yaml:"initial"`  // 开局生成数量
	Interval float64 `yaml:"interval"` // 刷新间隔（秒），0 表示不刷新
	MaxAlive int     `yaml:"maxAlive"` // 同时存活上限
}

// PlayerConfig 玩家配置
type PlayerConfig struct {
	Speed float64 `yaml:"speed"`
	Size  float64 `yaml:"size"`
}

// ObstacleConfig 礁石障碍物
type ObstacleConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// DefaultGameConfig 返回默认配置
// 河豚部分与 behavior.DefaultConfig 保持一致
func DefaultGameConfig() *GameConfig {
	b := behavior.DefaultConfig()
	return &GameConfig{
		Arena: ArenaConfig{
			Width:         24,
			Height:        16,
			PixelsPerUnit: 40,
		},
		Pufferfish: PufferfishConfig{
			TargetTag:         b.TargetTag,
			RotationSpeed:     b.RotationSpeed,
			MinSpeed:          b.MinSpeed,
			MaxSpeed:          b.MaxSpeed,
			ExplosionSound:    b.ExplosionSound,
			SpinePrefab:       b.SpinePrefab,
			NumberOfSpines:    b.NumberOfSpines,
			SpineSpeed:        b.SpineSpeed,
			ExplosionDelay:    b.ExplosionDelay,
			SoundDelay:        b.SoundDelay,
			SelfDestructDelay: b.SelfDestructDelay,
			BodySize:          0.7,
			SensorRadius:      1.5,
		},
		Spine: SpineConfig{
			Lifetime: 4,
			Size:     0.2,
		},
		Spawner: SpawnerConfig{
			Initial:  2,
			Interval: 3,
			MaxAlive: 6,
		},
		Player: PlayerConfig{
			Speed: 5,
			Size:  0.6,
		},
		Sounds: map[string]string{
			b.ExplosionSound: "assets/sounds/pufferfish_explode.ogg",
		},
	}
}

// Behavior 转换为行为单元配置
func (c PufferfishConfig) Behavior() behavior.Config {
	return behavior.Config{
		TargetTag:         c.TargetTag,
		RotationSpeed:     c.RotationSpeed,
		MinSpeed:          c.MinSpeed,
		MaxSpeed:          c.MaxSpeed,
		ExplosionSound:    c.ExplosionSound,
		SpinePrefab:       c.SpinePrefab,
		NumberOfSpines:    c.NumberOfSpines,
		SpineSpeed:        c.SpineSpeed,
		ExplosionDelay:    c.ExplosionDelay,
		SoundDelay:        c.SoundDelay,
		SelfDestructDelay: c.SelfDestructDelay,
	}
}

// LoadGameConfig 加载游戏配置
//
// 从指定路径加载 YAML 格式的配置文件，文件中未出现的字段保留默认值。
//
// 参数:
//   - path: 配置文件路径（如 "data/pufferfish.yaml"）
//
// 返回:
//   - *GameConfig: 加载成功后的配置结构
//   - error: 读取、解析或校验失败时返回错误
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pufferfish config: %w", err)
	}
	return ParseGameConfig(data)
}

// ParseGameConfig 解析 YAML 配置内容
func ParseGameConfig(data []byte) (*GameConfig, error) {
	config := DefaultGameConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse pufferfish config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// Validate 验证配置有效性
//
// 只检查结构性错误（会导致运行异常的值）：
//   - 目标标签不能为空
//   - 尖刺数量、各项延迟不能为负
//   - 场地尺寸与像素比例必须为正
//
// 速度类数值不做校验，原样传递给行为单元。
//
// 返回:
//   - error: 验证失败时返回错误，成功返回 nil
func (c *GameConfig) Validate() error {
	p := c.Pufferfish
	if p.TargetTag == "" {
		return fmt.Errorf("pufferfish targetTag must not be empty")
	}
	if p.NumberOfSpines < 0 {
		return fmt.Errorf("pufferfish numberOfSpines must be >= 0, got %d", p.NumberOfSpines)
	}
	if p.ExplosionDelay < 0 || p.SoundDelay < 0 || p.SelfDestructDelay < 0 {
		return fmt.Errorf("pufferfish delays must be >= 0 (explosion=%.2f, sound=%.2f, selfDestruct=%.2f)",
			p.ExplosionDelay, p.SoundDelay, p.SelfDestructDelay)
	}
	if p.BodySize <= 0 || p.SensorRadius < 0 {
		return fmt.Errorf("pufferfish bodySize must be > 0 and sensorRadius >= 0 (bodySize=%.2f, sensorRadius=%.2f)",
			p.BodySize, p.SensorRadius)
	}

	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		return fmt.Errorf("arena size must be positive, got %.1fx%.1f", c.Arena.Width, c.Arena.Height)
	}
	if c.Arena.PixelsPerUnit <= 0 {
		return fmt.Errorf("arena pixelsPerUnit must be positive, got %.1f", c.Arena.PixelsPerUnit)
	}

	if c.Spine.Lifetime < 0 {
		return fmt.Errorf("spine lifetime must be >= 0, got %.2f", c.Spine.Lifetime)
	}

	if c.Spawner.Initial < 0 || c.Spawner.MaxAlive < 0 || c.Spawner.Interval < 0 {
		return fmt.Errorf("spawner values must be >= 0 (initial=%d, maxAlive=%d, interval=%.2f)",
			c.Spawner.Initial, c.Spawner.MaxAlive, c.Spawner.Interval)
	}

	for i, o := range c.Obstacles {
		if o.Width <= 0 || o.Height <= 0 {
			return fmt.Errorf("obstacle %d size must be positive, got %.1fx%.1f", i, o.Width, o.Height)
		}
	}

	return nil
}

// ScreenSize 返回窗口像素尺寸
func (c *GameConfig) ScreenSize() (int, int) {
	return int(c.Arena.Width * c.Arena.PixelsPerUnit), int(c.Arena.Height * c.Arena.PixelsPerUnit)
}
