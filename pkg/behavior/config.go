package behavior

// 默认延迟（秒）
const (
	DefaultExplosionDelay    = 1.25
	DefaultSoundDelay        = 0.1
	DefaultSelfDestructDelay = 2.0
)

// Config 河豚配置，构造后不可变
type Config struct {
	TargetTag      string  // 追踪目标的标签
	RotationSpeed  float64 // 转向系数（每秒）
	MinSpeed       float64 // 最小移动速度
	MaxSpeed       float64 // 最大移动速度
	ExplosionSound string  // 爆炸音效资源ID
	SpinePrefab    string  // 尖刺预制体名称
	NumberOfSpines int     // 尖刺数量
	SpineSpeed     float64 // 尖刺速度

	ExplosionDelay    float64 // 引爆到生成尖刺的延迟
	SoundDelay        float64 // 生成尖刺到播放音效的延迟
	SelfDestructDelay float64 // 生成尖刺到自毁的延迟
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		TargetTag:         "Player",
		RotationSpeed:     0.5,
		MinSpeed:          0.75,
		MaxSpeed:          2,
		ExplosionSound:    "SOUND_PUFFERFISH_EXPLODE",
		SpinePrefab:       "spine",
		NumberOfSpines:    8,
		SpineSpeed:        1,
		ExplosionDelay:    DefaultExplosionDelay,
		SoundDelay:        DefaultSoundDelay,
		SelfDestructDelay: DefaultSelfDestructDelay,
	}
}
