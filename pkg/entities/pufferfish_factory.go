package entities

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/pufferfish/pkg/components"
	"github.com/decker502/pufferfish/pkg/config"
	"github.com/decker502/pufferfish/pkg/ecs"
)

// ErrTargetNotFound 生成河豚时找不到目标标签对应的实体
var ErrTargetNotFound = errors.New("target not found")

// NewPufferfishEntity 创建河豚实体
//
// 目标只在生成时按标签解析一次，之后以实体ID弱引用；
// 行为单元由 PufferfishSystem 在首次更新时绑定。
//
// 参数:
//   - em: 实体管理器
//   - cfg: 河豚配置
//   - x, y: 出生位置（世界单位）
//   - rotation: 初始朝向（度）
//
// 返回:
//   - ecs.EntityID: 河豚实体ID
//   - error: 找不到目标时返回 ErrTargetNotFound
func NewPufferfishEntity(em *ecs.EntityManager, cfg config.PufferfishConfig, x, y, rotation float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	targetID, ok := FindEntityWithTag(em, cfg.TargetTag)
	if !ok {
		return 0, fmt.Errorf("%w: tag %q", ErrTargetNotFound, cfg.TargetTag)
	}

	id := em.CreateEntity()
	em.AddComponent(id, &components.TagComponent{Tag: components.TagPufferfish})
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.VelocityComponent{})
	em.AddComponent(id, &components.RotationComponent{Degrees: rotation})
	em.AddComponent(id, &components.CollisionComponent{
		Width:   cfg.BodySize,
		Height:  cfg.BodySize,
		Enabled: true,
	})
	em.AddComponent(id, &components.SensorComponent{
		Radius:  cfg.SensorRadius,
		Enabled: cfg.SensorRadius > 0,
	})
	em.AddComponent(id, components.NewAnimatorComponent())
	em.AddComponent(id, &components.AudioSourceComponent{})
	em.AddComponent(id, &components.PufferfishComponent{
		Config:   cfg.Behavior(),
		TargetID: targetID,
	})

	log.Printf("[PufferfishFactory] 创建河豚 %d 于 (%.1f, %.1f)，目标 %d (%s)", id, x, y, targetID, cfg.TargetTag)
	return id, nil
}
