package components

// PositionComponent 存储实体的世界坐标（单位，Y 轴向上）
type PositionComponent struct {
	X float64
	Y float64
}

// VelocityComponent 存储实体的刚体速度（单位/秒）
// 由物理系统积分到 PositionComponent
type VelocityComponent struct {
	VX float64
	VY float64
}

// RotationComponent 存储实体朝向
// Degrees 取值 [0, 360)，0 度指向 +X，逆时针为正
type RotationComponent struct {
	Degrees float64
}
