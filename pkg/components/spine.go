package components

import "github.com/decker502/pufferfish/pkg/ecs"

// SpineComponent 标识河豚爆炸射出的尖刺
type SpineComponent struct {
	Prefab   string
	SourceID ecs.EntityID // 射出此尖刺的河豚实体ID（仅用于调试）
}
