package systems

import (
	"log"

	"github.com/decker502/pufferfish/pkg/components"
	"github.com/decker502/pufferfish/pkg/ecs"
)

// LifetimeSystem 管理实体的生命周期
// 尖刺的自然消失和河豚的延迟自毁都经由 LifetimeComponent 完成
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 更新所有拥有生命周期组件的实体
func (s *LifetimeSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager)

	for _, id := range entities {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok || lifetime.IsExpired {
			continue
		}

		// 增加当前生命时间
		lifetime.CurrentLifetime += deltaTime

		// 过期则标记实体待删除
		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
			s.entityManager.DestroyEntity(id)
		}
	}
}

// DestroyAfter 在 delay 秒后销毁实体
//
// delay <= 0 时立即标记删除。实体已有更早到期的生命周期时保持不变，
// 即多次延迟销毁以最早的一次为准。
func DestroyAfter(em *ecs.EntityManager, id ecs.EntityID, delay float64) {
	if !em.EntityExists(id) {
		return
	}

	if delay <= 0 {
		em.DestroyEntity(id)
		return
	}

	if lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](em, id); ok {
		remaining := lifetime.MaxLifetime - lifetime.CurrentLifetime
		if !lifetime.IsExpired && remaining <= delay {
			return
		}
	}

	em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: delay})
	log.Printf("[LifetimeSystem] 实体 %d 将在 %.2f 秒后销毁", id, delay)
}
