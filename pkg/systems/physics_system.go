package systems

import (
	"sort"

	"github.com/decker502/pufferfish/pkg/components"
	"github.com/decker502/pufferfish/pkg/ecs"
)

// ContactListener 接收物理系统产生的接触事件
type ContactListener interface {
	// OnCollisionExit 两个实体碰撞盒从重叠变为分离时调用，每对实体调用一次
	OnCollisionExit(a, b ecs.EntityID)
	// OnTriggerEnter 实体 other 的碰撞盒进入 sensorOwner 的感应区时调用
	OnTriggerEnter(sensorOwner, other ecs.EntityID)
}

// contactPair 接触对
// 碰撞对中 a < b；触发对中 a 为感应区所属实体
type contactPair struct {
	a, b ecs.EntityID
}

func sortPairs(pairs []contactPair) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].a != pairs[j].a {
			return pairs[i].a < pairs[j].a
		}
		return pairs[i].b < pairs[j].b
	})
}

// PhysicsSystem 处理速度积分与接触检测
//
// 每帧先把速度积分到位置，再计算碰撞盒重叠和感应区进入，
// 与上一帧的接触集合比较后向监听者派发 CollisionExit / TriggerEnter。
// 碰撞体被关闭或实体被移除时，相关接触静默丢弃，不产生事件。
type PhysicsSystem struct {
	em        *ecs.EntityManager
	listeners []ContactListener

	collisions map[contactPair]struct{} // 上一帧的碰撞接触
	triggers   map[contactPair]struct{} // 上一帧的感应区接触
}

// NewPhysicsSystem 创建物理系统
//
// 参数:
//   - em: 实体管理器，用于查询和操作实体组件
//   - listeners: 接触事件监听者，按注册顺序派发
func NewPhysicsSystem(em *ecs.EntityManager, listeners ...ContactListener) *PhysicsSystem {
	return &PhysicsSystem{
		em:         em,
		listeners:  listeners,
		collisions: make(map[contactPair]struct{}),
		triggers:   make(map[contactPair]struct{}),
	}
}

// AddListener 注册接触事件监听者
func (ps *PhysicsSystem) AddListener(l ContactListener) {
	ps.listeners = append(ps.listeners, l)
}

// checkAABBCollision 检查两个实体的AABB（轴对齐边界框）是否发生碰撞
// 碰撞盒中心 = 实体位置 + 偏移
func checkAABBCollision(
	pos1 *components.PositionComponent, col1 *components.CollisionComponent,
	pos2 *components.PositionComponent, col2 *components.CollisionComponent) bool {

	x1, y1 := pos1.X+col1.OffsetX, pos1.Y+col1.OffsetY
	x2, y2 := pos2.X+col2.OffsetX, pos2.Y+col2.OffsetY

	// AABB碰撞检测：任一轴上没有重叠则没有碰撞
	return x1+col1.Width/2 >= x2-col2.Width/2 &&
		x1-col1.Width/2 <= x2+col2.Width/2 &&
		y1+col1.Height/2 >= y2-col2.Height/2 &&
		y1-col1.Height/2 <= y2+col2.Height/2
}

// checkCircleAABB 检查圆形感应区与碰撞盒是否重叠
func checkCircleAABB(
	center *components.PositionComponent, radius float64,
	pos *components.PositionComponent, col *components.CollisionComponent) bool {

	cx, cy := pos.X+col.OffsetX, pos.Y+col.OffsetY
	nearestX := clamp(center.X, cx-col.Width/2, cx+col.Width/2)
	nearestY := clamp(center.Y, cy-col.Height/2, cy+col.Height/2)
	dx := center.X - nearestX
	dy := center.Y - nearestY
	return dx*dx+dy*dy <= radius*radius
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Update 更新物理系统
//
// 参数:
//   - deltaTime: 自上一帧以来经过的时间（秒）
func (ps *PhysicsSystem) Update(deltaTime float64) {
	ps.integrate(deltaTime)

	solids := ps.querySolids()
	currentCollisions := ps.detectCollisions(solids)
	currentTriggers := ps.detectTriggers(solids)

	// 碰撞结束：上一帧重叠、本帧分离，且双方碰撞体仍然有效
	exits := make([]contactPair, 0)
	for pair := range ps.collisions {
		if _, still := currentCollisions[pair]; still {
			continue
		}
		if !ps.colliderActive(pair.a) || !ps.colliderActive(pair.b) {
			continue
		}
		exits = append(exits, pair)
	}
	sortPairs(exits)

	// 感应区进入：本帧新出现的触发接触
	enters := make([]contactPair, 0)
	for pair := range currentTriggers {
		if _, before := ps.triggers[pair]; !before {
			enters = append(enters, pair)
		}
	}
	sortPairs(enters)

	ps.collisions = currentCollisions
	ps.triggers = currentTriggers

	for _, pair := range exits {
		for _, l := range ps.listeners {
			l.OnCollisionExit(pair.a, pair.b)
		}
	}
	for _, pair := range enters {
		for _, l := range ps.listeners {
			l.OnTriggerEnter(pair.a, pair.b)
		}
	}
}

// integrate 位置 += 速度 * dt
func (ps *PhysicsSystem) integrate(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.VelocityComponent](ps.em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](ps.em, id)
		pos.X += vel.VX * deltaTime
		pos.Y += vel.VY * deltaTime
	}
}

// solidBody 参与检测的碰撞盒
type solidBody struct {
	id  ecs.EntityID
	pos *components.PositionComponent
	col *components.CollisionComponent
	// 没有速度组件的实体（礁石）视为静态
	static bool
}

func (ps *PhysicsSystem) querySolids() []solidBody {
	ids := ecs.GetEntitiesWith2[*components.PositionComponent, *components.CollisionComponent](ps.em)
	solids := make([]solidBody, 0, len(ids))
	for _, id := range ids {
		if ps.em.IsMarkedForDestroy(id) {
			continue
		}
		col, _ := ecs.GetComponent[*components.CollisionComponent](ps.em, id)
		if !col.Enabled {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.em, id)
		solids = append(solids, solidBody{
			id:     id,
			pos:    pos,
			col:    col,
			static: !ecs.HasComponent[*components.VelocityComponent](ps.em, id),
		})
	}
	return solids
}

func (ps *PhysicsSystem) detectCollisions(solids []solidBody) map[contactPair]struct{} {
	current := make(map[contactPair]struct{})
	for i := 0; i < len(solids); i++ {
		for j := i + 1; j < len(solids); j++ {
			a, b := solids[i], solids[j]
			if a.static && b.static {
				continue
			}
			if checkAABBCollision(a.pos, a.col, b.pos, b.col) {
				current[contactPair{a: a.id, b: b.id}] = struct{}{}
			}
		}
	}
	return current
}

func (ps *PhysicsSystem) detectTriggers(solids []solidBody) map[contactPair]struct{} {
	current := make(map[contactPair]struct{})
	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.SensorComponent](ps.em) {
		if ps.em.IsMarkedForDestroy(id) {
			continue
		}
		sensor, _ := ecs.GetComponent[*components.SensorComponent](ps.em, id)
		if !sensor.Enabled {
			continue
		}
		center, _ := ecs.GetComponent[*components.PositionComponent](ps.em, id)
		for _, other := range solids {
			if other.id == id {
				continue
			}
			if checkCircleAABB(center, sensor.Radius, other.pos, other.col) {
				current[contactPair{a: id, b: other.id}] = struct{}{}
			}
		}
	}
	return current
}

// colliderActive 实体存在且碰撞盒处于开启状态
func (ps *PhysicsSystem) colliderActive(id ecs.EntityID) bool {
	if !ps.em.EntityExists(id) || ps.em.IsMarkedForDestroy(id) {
		return false
	}
	col, ok := ecs.GetComponent[*components.CollisionComponent](ps.em, id)
	return ok && col.Enabled
}
