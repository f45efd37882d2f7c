package systems

import (
	"log"

	"github.com/decker502/pufferfish/pkg/components"
	"github.com/decker502/pufferfish/pkg/ecs"
	"github.com/decker502/pufferfish/pkg/entities"
)

// SpineSystem 处理尖刺命中
//
// 尖刺的感应区碰到玩家时记一次命中并移除尖刺；碰到礁石时直接移除。
// 其余接触（河豚、其他尖刺）忽略。
type SpineSystem struct {
	entityManager *ecs.EntityManager
}

// NewSpineSystem 创建尖刺系统
func NewSpineSystem(em *ecs.EntityManager) *SpineSystem {
	return &SpineSystem{entityManager: em}
}

// OnCollisionExit 尖刺没有实体碰撞盒，不处理
func (s *SpineSystem) OnCollisionExit(a, b ecs.EntityID) {}

// OnTriggerEnter 实现 ContactListener
func (s *SpineSystem) OnTriggerEnter(sensorOwner, other ecs.EntityID) {
	if !ecs.HasComponent[*components.SpineComponent](s.entityManager, sensorOwner) {
		return
	}
	if s.entityManager.IsMarkedForDestroy(sensorOwner) {
		return
	}

	switch entities.TagOf(s.entityManager, other) {
	case components.TagPlayer:
		if player, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, other); ok {
			player.Hits++
			log.Printf("[SpineSystem] 尖刺 %d 击中玩家，累计 %d 次", sensorOwner, player.Hits)
		}
		s.entityManager.DestroyEntity(sensorOwner)
	case components.TagRock:
		s.entityManager.DestroyEntity(sensorOwner)
	}
}
