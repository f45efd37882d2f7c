package systems

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/decker502/pufferfish/pkg/behavior"
	"github.com/decker502/pufferfish/pkg/components"
	"github.com/decker502/pufferfish/pkg/config"
	"github.com/decker502/pufferfish/pkg/ecs"
	"github.com/decker502/pufferfish/pkg/entities"
)

// PufferfishStats 河豚事件统计（HUD 与测试使用）
type PufferfishStats struct {
	Detonations   int // 进入引爆状态的次数
	DirectHits    int // 直接撞上目标被销毁的次数
	SpinesSpawned int // 生成的尖刺总数
}

// PufferfishSystem 驱动所有河豚实体
//
// 职责:
//   - 为带 PufferfishComponent 的实体绑定行为单元（能力由 ECS 组件提供）
//   - 每帧调用行为单元的 Update
//   - 作为 ContactListener 把物理事件按对方标签转交给行为单元
//   - 实体移除后取消其尚未执行的延迟任务
type PufferfishSystem struct {
	entityManager *ecs.EntityManager
	scheduler     *Scheduler
	spineConfig   config.SpineConfig
	rng           *rand.Rand

	stats PufferfishStats
}

// NewPufferfishSystem 创建河豚系统
//
// 参数:
//   - em: 实体管理器
//   - scheduler: 延迟任务队列（引爆与音效的延迟调用）
//   - spineCfg: 尖刺生命周期与尺寸
//   - rng: 随机数来源，传入固定种子可得到确定的移动速度
func NewPufferfishSystem(em *ecs.EntityManager, scheduler *Scheduler, spineCfg config.SpineConfig, rng *rand.Rand) *PufferfishSystem {
	s := &PufferfishSystem{
		entityManager: em,
		scheduler:     scheduler,
		spineConfig:   spineCfg,
		rng:           rng,
	}

	em.OnEntityRemoved(func(id ecs.EntityID) {
		scheduler.CancelOwner(id)
	})

	return s
}

// Stats 返回统计快照
func (s *PufferfishSystem) Stats() PufferfishStats {
	return s.stats
}

// Bind 为河豚实体创建行为单元
// 已绑定的实体直接返回现有行为单元
func (s *PufferfishSystem) Bind(id ecs.EntityID) (*behavior.Pufferfish, error) {
	comp, ok := ecs.GetComponent[*components.PufferfishComponent](s.entityManager, id)
	if !ok {
		return nil, fmt.Errorf("entity %d has no PufferfishComponent", id)
	}
	if comp.Behavior != nil {
		return comp.Behavior, nil
	}

	if !s.entityManager.EntityExists(comp.TargetID) {
		return nil, fmt.Errorf("entity %d: %w", id, behavior.ErrNoTarget)
	}

	host := &pufferfishHost{
		em:       s.entityManager,
		id:       id,
		targetID: comp.TargetID,
		spine:    s.spineConfig,
		stats:    &s.stats,
	}

	p, err := behavior.New(comp.Config, behavior.Capabilities{
		Target:    (*targetRef)(host),
		Body:      host,
		Transform: host,
		Collider:  host,
		Animator:  host,
		Sound:     (*soundRef)(host),
		Spawner:   host,
		Scheduler: s.scheduler.ForOwner(id),
		Rand:      s.rng,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to bind pufferfish %d: %w", id, err)
	}

	comp.Behavior = p
	return p, nil
}

// Update 更新所有河豚
func (s *PufferfishSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.PufferfishComponent](s.entityManager) {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}

		p, err := s.Bind(id)
		if err != nil {
			log.Printf("[PufferfishSystem] 警告: %v，移除该河豚", err)
			s.entityManager.DestroyEntity(id)
			continue
		}

		p.Update(deltaTime)
	}
}

// behaviorOf 返回实体已绑定的行为单元
func (s *PufferfishSystem) behaviorOf(id ecs.EntityID) *behavior.Pufferfish {
	comp, ok := ecs.GetComponent[*components.PufferfishComponent](s.entityManager, id)
	if !ok {
		return nil
	}
	return comp.Behavior
}

// OnCollisionExit 实现 ContactListener
func (s *PufferfishSystem) OnCollisionExit(a, b ecs.EntityID) {
	s.collisionExit(a, b)
	s.collisionExit(b, a)
}

func (s *PufferfishSystem) collisionExit(self, other ecs.EntityID) {
	p := s.behaviorOf(self)
	if p == nil {
		return
	}
	before := p.State()
	p.OnCollisionExit(entities.TagOf(s.entityManager, other))
	s.recordTransition(self, before, p.State())
}

// OnTriggerEnter 实现 ContactListener
func (s *PufferfishSystem) OnTriggerEnter(sensorOwner, other ecs.EntityID) {
	p := s.behaviorOf(sensorOwner)
	if p == nil {
		return
	}
	before := p.State()
	p.OnTriggerEnter(entities.TagOf(s.entityManager, other))
	s.recordTransition(sensorOwner, before, p.State())
}

func (s *PufferfishSystem) recordTransition(id ecs.EntityID, before, after behavior.State) {
	if before == after {
		return
	}
	switch after {
	case behavior.StateExploding:
		s.stats.Detonations++
	case behavior.StateDestroyed:
		s.stats.DirectHits++
	}
	log.Printf("[PufferfishSystem] 河豚 %d 状态 %s -> %s", id, before, after)
}
