package components

import (
	"github.com/decker502/pufferfish/pkg/behavior"
	"github.com/decker502/pufferfish/pkg/ecs"
)

// PufferfishComponent 标识河豚实体
//
// Config 在生成时写入，之后不可变；Behavior 由 PufferfishSystem 在首次更新时绑定。
type PufferfishComponent struct {
	Config   behavior.Config
	TargetID ecs.EntityID // 生成时按标签解析出的目标实体ID（弱引用）
	Behavior *behavior.Pufferfish
}
