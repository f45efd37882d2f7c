package systems

import (
	"log"

	"github.com/decker502/pufferfish/pkg/components"
	"github.com/decker502/pufferfish/pkg/ecs"
)

// AnimationSystem 推进动画参数计时
// 参数在本帧被修改时 StateTime 从 0 重新计时，渲染系统据此播放膨胀过程
type AnimationSystem struct {
	entityManager *ecs.EntityManager
}

// NewAnimationSystem 创建一个新的动画系统
func NewAnimationSystem(em *ecs.EntityManager) *AnimationSystem {
	return &AnimationSystem{
		entityManager: em,
	}
}

// Update 更新所有动画实体的计时
func (s *AnimationSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.AnimatorComponent](s.entityManager)

	for _, id := range entities {
		anim, _ := ecs.GetComponent[*components.AnimatorComponent](s.entityManager, id)

		if anim.Dirty {
			log.Printf("[AnimationSystem] 实体 %d 动画参数变化: %v", id, anim.Bools)
			anim.Dirty = false
			anim.StateTime = 0
			continue
		}

		anim.StateTime += deltaTime
	}
}
