// Package behavior 实现河豚敌人的行为逻辑
//
// 行为单元本身不查询实体管理器，所需能力（目标、刚体、朝向、碰撞体开关、
// 动画参数、音源、生成器、延迟调度、随机数）在构造时注入，
// 由 systems.PufferfishSystem 提供基于 ECS 的实现。
package behavior

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/decker502/pufferfish/pkg/utils"
)

// 动画参数与延迟任务名称
const (
	// AnimParamExplode 膨胀爆炸动画的布尔参数名
	AnimParamExplode = "Explode"

	TaskSpawnSpines = "SpawnSpines"
	TaskPlaySound   = "PlaySound"
)

var (
	// ErrNoTarget 构造时没有可追踪的目标
	ErrNoTarget = errors.New("pufferfish has no target")
	// ErrMissingCapability 构造时缺少必需的能力
	ErrMissingCapability = errors.New("pufferfish capability missing")
)

// State 河豚状态
type State int

const (
	// StateActive 追踪目标中
	StateActive State = iota
	// StateExploding 已引爆，等待生成尖刺并自毁
	StateExploding
	// StateDestroyed 直接撞上目标后被立即销毁
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateExploding:
		return "exploding"
	case StateDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Target 被追踪的目标（弱引用）
// 目标已被销毁时 ok 返回 false
type Target interface {
	Position() (pos utils.Vec2, ok bool)
}

// Body 河豚自身的位置与刚体速度
type Body interface {
	Position() utils.Vec2
	Velocity() utils.Vec2
	SetVelocity(v utils.Vec2)
}

// Transform 河豚朝向（度）
type Transform interface {
	Rotation() float64
	SetRotation(deg float64)
}

// Collider 实体碰撞体开关
type Collider interface {
	SetEnabled(enabled bool)
}

// Animator 动画参数
type Animator interface {
	SetBool(name string, value bool)
}

// SoundEmitter 音源
type SoundEmitter interface {
	SetClip(clip string)
	Play()
}

// Spawner 实例化尖刺与销毁自身
type Spawner interface {
	SpawnSpine(prefab string, pos utils.Vec2, rotation float64, velocity utils.Vec2)
	// Destroy 在 delay 秒后销毁河豚，delay 为 0 表示立即销毁
	Destroy(delay float64)
}

// Scheduler 单次延迟调用
type Scheduler interface {
	Invoke(name string, delay float64, fn func())
}

// RandomSource 随机数来源，*rand.Rand 满足此接口
type RandomSource interface {
	Float64() float64
}

// Capabilities 河豚运行所需的全部外部能力
type Capabilities struct {
	Target    Target
	Body      Body
	Transform Transform
	Collider  Collider
	Animator  Animator
	Sound     SoundEmitter
	Spawner   Spawner
	Scheduler Scheduler
	Rand      RandomSource
}

func (c Capabilities) validate() error {
	if c.Target == nil {
		return ErrNoTarget
	}
	missing := make([]string, 0)
	if c.Body == nil {
		missing = append(missing, "body")
	}
	if c.Transform == nil {
		missing = append(missing, "transform")
	}
	if c.Collider == nil {
		missing = append(missing, "collider")
	}
	if c.Animator == nil {
		missing = append(missing, "animator")
	}
	if c.Sound == nil {
		missing = append(missing, "sound")
	}
	if c.Spawner == nil {
		missing = append(missing, "spawner")
	}
	if c.Scheduler == nil {
		missing = append(missing, "scheduler")
	}
	if c.Rand == nil {
		missing = append(missing, "rand")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", ErrMissingCapability, missing)
	}
	return nil
}

// Pufferfish 河豚行为单元
//
// 每帧转向目标并以随机速度前进；接触目标的感应区或发生非目标碰撞时引爆，
// 延迟后向四周均匀射出尖刺并自毁；直接与目标碰撞则立即销毁。
type Pufferfish struct {
	cfg  Config
	caps Capabilities

	state        State
	spawnCounter int  // 已生成的尖刺数（生成循环的续点）
	playedSound  bool // 爆炸音效是否已经调度
}

// New 创建河豚行为单元
//
// 参数:
//   - cfg: 河豚配置（构造后不可变）
//   - caps: 外部能力，Target 为空时返回 ErrNoTarget
//
// 返回:
//   - *Pufferfish: 处于 StateActive 的行为单元
//   - error: 能力缺失时返回错误
func New(cfg Config, caps Capabilities) (*Pufferfish, error) {
	if err := caps.validate(); err != nil {
		return nil, err
	}
	return &Pufferfish{
		cfg:  cfg,
		caps: caps,
	}, nil
}

// Config 返回河豚配置
func (p *Pufferfish) Config() Config { return p.cfg }

// State 返回当前状态
func (p *Pufferfish) State() State { return p.state }

// Exploding 是否已进入引爆状态
func (p *Pufferfish) Exploding() bool { return p.state == StateExploding }

// SpawnedSpines 已生成的尖刺数量
func (p *Pufferfish) SpawnedSpines() int { return p.spawnCounter }

// SoundScheduled 爆炸音效是否已调度
func (p *Pufferfish) SoundScheduled() bool { return p.playedSound }

// Update 每帧转向并移动
//
// 朝向以 dt*RotationSpeed 为系数向目标朝向插值（帧率相关的指数趋近），
// 移动方向取插值后的当前朝向，速度每帧在 [MinSpeed, MaxSpeed] 内重新采样。
// 引爆后朝向仍会更新，但不再写入速度。
func (p *Pufferfish) Update(dt float64) {
	if p.state == StateDestroyed {
		return
	}

	if targetPos, ok := p.caps.Target.Position(); ok {
		direction := targetPos.Sub(p.caps.Body.Position()).Normalized()
		lookAngle := utils.Rad2Deg * math.Atan2(direction.X, direction.Y)
		facing := -lookAngle + 90

		rotation := utils.LerpDegrees(p.caps.Transform.Rotation(), facing, dt*p.cfg.RotationSpeed)
		p.caps.Transform.SetRotation(rotation)
	}

	moveDirection := utils.DirectionFromDegrees(p.caps.Transform.Rotation())
	speed := p.sampleSpeed()

	if p.state == StateActive {
		p.caps.Body.SetVelocity(moveDirection.Scale(speed))
	}
}

// sampleSpeed 在 [MinSpeed, MaxSpeed] 内均匀采样
func (p *Pufferfish) sampleSpeed() float64 {
	return p.cfg.MinSpeed + p.caps.Rand.Float64()*(p.cfg.MaxSpeed-p.cfg.MinSpeed)
}

// OnCollisionExit 物理碰撞结束事件
// 对方是目标时立即销毁（不引爆），否则引爆
func (p *Pufferfish) OnCollisionExit(otherTag string) {
	if p.state != StateActive {
		return
	}

	if otherTag == p.cfg.TargetTag {
		log.Printf("[Pufferfish] 直接撞上目标 %q，立即销毁", otherTag)
		p.state = StateDestroyed
		p.caps.Spawner.Destroy(0)
		return
	}

	p.Detonate()
}

// OnTriggerEnter 感应区进入事件
// 仅目标进入时引爆
func (p *Pufferfish) OnTriggerEnter(otherTag string) {
	if p.state != StateActive {
		return
	}

	if otherTag != p.cfg.TargetTag {
		return
	}

	p.Detonate()
}

// Detonate 引爆：关闭碰撞体、停止移动、播放膨胀动画，延迟后生成尖刺
// 只有 StateActive 下的第一次调用生效
func (p *Pufferfish) Detonate() {
	if p.state != StateActive {
		return
	}

	p.caps.Collider.SetEnabled(false)
	p.caps.Body.SetVelocity(utils.Vec2{})
	p.state = StateExploding
	p.caps.Animator.SetBool(AnimParamExplode, true)

	log.Printf("[Pufferfish] 引爆，%.2f 秒后生成 %d 根尖刺", p.cfg.ExplosionDelay, p.cfg.NumberOfSpines)
	p.caps.Scheduler.Invoke(TaskSpawnSpines, p.cfg.ExplosionDelay, p.SpawnSpines)
}

// SpawnSpines 调度爆炸音效，向四周均匀生成尖刺，然后延迟自毁
//
// 生成循环从 spawnCounter 续起，重复调用不会多生成尖刺，
// 音效也只调度一次；自毁请求每次调用都会发出。
func (p *Pufferfish) SpawnSpines() {
	if !p.playedSound {
		p.playedSound = true
		p.caps.Scheduler.Invoke(TaskPlaySound, p.cfg.SoundDelay, p.PlaySound)
	}

	pos := p.caps.Body.Position()
	for ; p.spawnCounter < p.cfg.NumberOfSpines; p.spawnCounter++ {
		rotation := 360 / float64(p.cfg.NumberOfSpines) * float64(p.spawnCounter)
		velocity := utils.DirectionFromDegrees(rotation).Scale(p.cfg.SpineSpeed)
		p.caps.Spawner.SpawnSpine(p.cfg.SpinePrefab, pos, rotation, velocity)
	}

	p.caps.Spawner.Destroy(p.cfg.SelfDestructDelay)
}

// PlaySound 播放爆炸音效
func (p *Pufferfish) PlaySound() {
	p.caps.Sound.SetClip(p.cfg.ExplosionSound)
	p.caps.Sound.Play()
}
