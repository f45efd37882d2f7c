package systems

import (
	"github.com/decker502/pufferfish/pkg/components"
	"github.com/decker502/pufferfish/pkg/config"
	"github.com/decker502/pufferfish/pkg/ecs"
	"github.com/decker502/pufferfish/pkg/entities"
	"github.com/decker502/pufferfish/pkg/utils"
)

// pufferfishHost 把单条河豚实体的组件包装成行为单元需要的能力
// 每次调用都重新查询组件，实体被移除后所有写操作变为空操作
type pufferfishHost struct {
	em       *ecs.EntityManager
	id       ecs.EntityID
	targetID ecs.EntityID
	spine    config.SpineConfig
	stats    *PufferfishStats
}

// targetRef 目标弱引用
type targetRef pufferfishHost

func (t *targetRef) Position() (utils.Vec2, bool) {
	if !t.em.EntityExists(t.targetID) || t.em.IsMarkedForDestroy(t.targetID) {
		return utils.Vec2{}, false
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](t.em, t.targetID)
	if !ok {
		return utils.Vec2{}, false
	}
	return utils.Vec2{X: pos.X, Y: pos.Y}, true
}

func (h *pufferfishHost) Position() utils.Vec2 {
	if pos, ok := ecs.GetComponent[*components.PositionComponent](h.em, h.id); ok {
		return utils.Vec2{X: pos.X, Y: pos.Y}
	}
	return utils.Vec2{}
}

func (h *pufferfishHost) Velocity() utils.Vec2 {
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](h.em, h.id); ok {
		return utils.Vec2{X: vel.VX, Y: vel.VY}
	}
	return utils.Vec2{}
}

func (h *pufferfishHost) SetVelocity(v utils.Vec2) {
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](h.em, h.id); ok {
		vel.VX, vel.VY = v.X, v.Y
	}
}

func (h *pufferfishHost) Rotation() float64 {
	if rot, ok := ecs.GetComponent[*components.RotationComponent](h.em, h.id); ok {
		return rot.Degrees
	}
	return 0
}

func (h *pufferfishHost) SetRotation(deg float64) {
	if rot, ok := ecs.GetComponent[*components.RotationComponent](h.em, h.id); ok {
		rot.Degrees = deg
	}
}

// SetEnabled 同时开关碰撞盒与感应区
func (h *pufferfishHost) SetEnabled(enabled bool) {
	if col, ok := ecs.GetComponent[*components.CollisionComponent](h.em, h.id); ok {
		col.Enabled = enabled
	}
	if sensor, ok := ecs.GetComponent[*components.SensorComponent](h.em, h.id); ok {
		sensor.Enabled = enabled
	}
}

func (h *pufferfishHost) SetBool(name string, value bool) {
	if anim, ok := ecs.GetComponent[*components.AnimatorComponent](h.em, h.id); ok {
		anim.SetBool(name, value)
	}
}

// soundRef 音源能力
type soundRef pufferfishHost

func (s *soundRef) SetClip(clip string) {
	if src, ok := ecs.GetComponent[*components.AudioSourceComponent](s.em, s.id); ok {
		src.Clip = clip
	}
}

func (s *soundRef) Play() {
	if src, ok := ecs.GetComponent[*components.AudioSourceComponent](s.em, s.id); ok {
		src.PendingPlays++
	}
}

func (h *pufferfishHost) SpawnSpine(prefab string, pos utils.Vec2, rotation float64, velocity utils.Vec2) {
	_, err := entities.NewSpineEntity(h.em, entities.SpineSpec{
		Prefab:   prefab,
		SourceID: h.id,
		Position: pos,
		Rotation: rotation,
		Velocity: velocity,
		Lifetime: h.spine.Lifetime,
		Size:     h.spine.Size,
	})
	if err == nil {
		h.stats.SpinesSpawned++
	}
}

func (h *pufferfishHost) Destroy(delay float64) {
	DestroyAfter(h.em, h.id, delay)
}
