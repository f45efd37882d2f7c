package entities

import (
	"fmt"

	"github.com/decker502/pufferfish/pkg/components"
	"github.com/decker502/pufferfish/pkg/config"
	"github.com/decker502/pufferfish/pkg/ecs"
)

// NewObstacleEntity 创建静态礁石
// 礁石位置为其中心点，河豚与礁石碰撞结束时会引爆
func NewObstacleEntity(em *ecs.EntityManager, cfg config.ObstacleConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	id := em.CreateEntity()
	em.AddComponent(id, &components.TagComponent{Tag: components.TagRock})
	em.AddComponent(id, &components.PositionComponent{X: cfg.X, Y: cfg.Y})
	em.AddComponent(id, &components.CollisionComponent{
		Width:   cfg.Width,
		Height:  cfg.Height,
		Enabled: true,
	})
	em.AddComponent(id, &components.ObstacleComponent{})

	return id, nil
}
