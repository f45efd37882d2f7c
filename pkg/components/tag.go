package components

// 实体标签常量
const (
	TagPlayer     = "Player"
	TagPufferfish = "Pufferfish"
	TagSpine      = "Spine"
	TagRock       = "Rock"
)

// TagComponent 实体标签
// 用于按标签查找实体，以及在碰撞事件中识别对方
type TagComponent struct {
	Tag string
}
