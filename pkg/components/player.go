package components

// PlayerComponent 标识玩家控制的实体
type PlayerComponent struct {
	Speed float64 // 移动速度（单位/秒）
	Hits  int     // 被尖刺击中的次数
}

// ObstacleComponent 标识静态障碍物（礁石）
type ObstacleComponent struct{}
