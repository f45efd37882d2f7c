package entities

import (
	"fmt"

	"github.com/decker502/pufferfish/pkg/components"
	"github.com/decker502/pufferfish/pkg/ecs"
	"github.com/decker502/pufferfish/pkg/utils"
)

// SpineSpec 尖刺生成参数
type SpineSpec struct {
	Prefab   string
	SourceID ecs.EntityID
	Position utils.Vec2
	Rotation float64    // 朝向（度）
	Velocity utils.Vec2 // 沿朝向的速度
	Lifetime float64    // 存在时间（秒），0 表示不自动清理
	Size     float64    // 命中判定边长
}

// NewSpineEntity 创建河豚尖刺
// 尖刺生成后与河豚再无关联，由生命周期系统清理
func NewSpineEntity(em *ecs.EntityManager, spec SpineSpec) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	id := em.CreateEntity()
	em.AddComponent(id, &components.TagComponent{Tag: components.TagSpine})
	em.AddComponent(id, &components.PositionComponent{X: spec.Position.X, Y: spec.Position.Y})
	em.AddComponent(id, &components.RotationComponent{Degrees: spec.Rotation})
	em.AddComponent(id, &components.VelocityComponent{VX: spec.Velocity.X, VY: spec.Velocity.Y})
	em.AddComponent(id, &components.SpineComponent{Prefab: spec.Prefab, SourceID: spec.SourceID})
	if spec.Size > 0 {
		em.AddComponent(id, &components.SensorComponent{Radius: spec.Size / 2, Enabled: true})
	}
	if spec.Lifetime > 0 {
		em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: spec.Lifetime})
	}

	return id, nil
}
