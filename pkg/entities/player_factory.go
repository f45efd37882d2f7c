package entities

import (
	"fmt"

	"github.com/decker502/pufferfish/pkg/components"
	"github.com/decker502/pufferfish/pkg/config"
	"github.com/decker502/pufferfish/pkg/ecs"
)

// NewPlayerEntity 创建玩家实体
//
// 玩家是河豚默认追踪的目标，带有实体碰撞盒（可被河豚直接撞上，也会触发河豚感应区）。
//
// 参数:
//   - em: 实体管理器
//   - cfg: 玩家配置
//   - x, y: 出生位置（世界单位）
func NewPlayerEntity(em *ecs.EntityManager, cfg config.PlayerConfig, x, y float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	id := em.CreateEntity()
	em.AddComponent(id, &components.TagComponent{Tag: components.TagPlayer})
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.VelocityComponent{})
	em.AddComponent(id, &components.CollisionComponent{
		Width:   cfg.Size,
		Height:  cfg.Size,
		Enabled: true,
	})
	em.AddComponent(id, &components.PlayerComponent{Speed: cfg.Speed})

	return id, nil
}
