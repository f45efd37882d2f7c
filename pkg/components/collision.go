package components

// CollisionComponent 定义实体的轴对齐碰撞盒（非触发器）
// 碰撞盒中心 = 实体位置 + 偏移
type CollisionComponent struct {
	Width   float64 // 碰撞盒宽度（单位）
	Height  float64 // 碰撞盒高度（单位）
	OffsetX float64 // 碰撞盒相对于实体位置的X偏移量，正值向右偏移
	OffsetY float64 // 碰撞盒相对于实体位置的Y偏移量，正值向上偏移
	Enabled bool    // 关闭后不再参与任何碰撞与触发检测
}

// SensorComponent 圆形感应区（触发器）
// 其他实体的碰撞盒进入感应区时产生 TriggerEnter 事件，不产生物理碰撞
type SensorComponent struct {
	Radius  float64
	Enabled bool
}
