package behavior

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/pufferfish/pkg/utils"
)

const floatTolerance = 1e-9

// fakeTask 记录一次延迟调用
type fakeTask struct {
	name  string
	delay float64
	fn    func()
}

type spawnedSpine struct {
	prefab   string
	pos      utils.Vec2
	rotation float64
	velocity utils.Vec2
}

// fakeHost 以最简单的方式实现全部能力，便于断言副作用
type fakeHost struct {
	targetPos   utils.Vec2
	targetAlive bool

	pos      utils.Vec2
	velocity utils.Vec2
	rotation float64

	colliderEnabled bool
	colliderToggles int
	animBools       map[string]bool

	clip      string
	playCount int

	spines         []spawnedSpine
	destroyDelays  []float64
	scheduledTasks []fakeTask
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		targetAlive:     true,
		colliderEnabled: true,
		animBools:       make(map[string]bool),
	}
}

type fakeTarget struct{ h *fakeHost }

func (t fakeTarget) Position() (utils.Vec2, bool) { return t.h.targetPos, t.h.targetAlive }

func (h *fakeHost) Position() utils.Vec2 { return h.pos }
func (h *fakeHost) Velocity() utils.Vec2 { return h.velocity }
func (h *fakeHost) SetVelocity(v utils.Vec2) { h.velocity = v }
func (h *fakeHost) Rotation() float64 { return h.rotation }
func (h *fakeHost) SetRotation(deg float64) { h.rotation = deg }
func (h *fakeHost) SetBool(name string, value bool) { h.animBools[name] = value }
func (h *fakeHost) SetClip(clip string) { h.clip = clip }
func (h *fakeHost) Play() { h.playCount++ }
func (h *fakeHost) Destroy(delay float64) { h.destroyDelays = append(h.destroyDelays, delay) }
func (h *fakeHost) Invoke(name string, d float64, fn func()) {
	h.scheduledTasks = append(h.scheduledTasks, fakeTask{name: name, delay: d, fn: fn})
}

func (h *fakeHost) SetEnabled(enabled bool) {
	h.colliderEnabled = enabled
	h.colliderToggles++
}

func (h *fakeHost) SpawnSpine(prefab string, pos utils.Vec2, rotation float64, velocity utils.Vec2) {
	h.spines = append(h.spines, spawnedSpine{prefab: prefab, pos: pos, rotation: rotation, velocity: velocity})
}

// runTask 取出并执行第一个指定名称的任务
func (h *fakeHost) runTask(t *testing.T, name string) fakeTask {
	t.Helper()
	for i, task := range h.scheduledTasks {
		if task.name == name {
			h.scheduledTasks = append(h.scheduledTasks[:i], h.scheduledTasks[i+1:]...)
			task.fn()
			return task
		}
	}
	t.Fatalf("no scheduled task %q", name)
	return fakeTask{}
}

func (h *fakeHost) caps(seed int64) Capabilities {
	return Capabilities{
		Target:    fakeTarget{h: h},
		Body:      h,
		Transform: h,
		Collider:  h,
		Animator:  h,
		Sound:     h,
		Spawner:   h,
		Scheduler: h,
		Rand:      rand.New(rand.NewSource(seed)),
	}
}

func newTestPufferfish(t *testing.T, cfg Config) (*Pufferfish, *fakeHost) {
	t.Helper()
	h := newFakeHost()
	p, err := New(cfg, h.caps(42))
	require.NoError(t, err)
	return p, h
}

func TestNewRequiresCapabilities(t *testing.T) {
	h := newFakeHost()

	caps := h.caps(1)
	caps.Target = nil
	_, err := New(DefaultConfig(), caps)
	assert.ErrorIs(t, err, ErrNoTarget)

	caps = h.caps(1)
	caps.Sound = nil
	caps.Scheduler = nil
	_, err = New(DefaultConfig(), caps)
	require.ErrorIs(t, err, ErrMissingCapability)
	assert.Contains(t, err.Error(), "sound")
	assert.Contains(t, err.Error(), "scheduler")
}

func TestUpdateSpeedWithinRange(t *testing.T) {
	cfg := DefaultConfig()
	p, h := newTestPufferfish(t, cfg)
	h.targetPos = utils.Vec2{X: 300, Y: -120}

	for i := 0; i < 500; i++ {
		p.Update(1.0 / 60.0)

		speed := h.velocity.Len()
		require.GreaterOrEqual(t, speed, cfg.MinSpeed-floatTolerance, "tick %d", i)
		require.LessOrEqual(t, speed, cfg.MaxSpeed+floatTolerance, "tick %d", i)

		// 速度方向与当前朝向一致
		dir := utils.DirectionFromDegrees(h.rotation)
		assert.InDelta(t, dir.X*speed, h.velocity.X, 1e-9)
		assert.InDelta(t, dir.Y*speed, h.velocity.Y, 1e-9)
	}
}

func TestUpdateResamplesSpeedEveryTick(t *testing.T) {
	p, h := newTestPufferfish(t, DefaultConfig())
	h.targetPos = utils.Vec2{X: 10}

	speeds := make(map[float64]struct{})
	for i := 0; i < 10; i++ {
		p.Update(0.016)
		speeds[h.velocity.Len()] = struct{}{}
	}
	assert.Greater(t, len(speeds), 1, "speed should be resampled each tick")
}

func TestUpdateSteersTowardTarget(t *testing.T) {
	tests := []struct {
		name      string
		targetPos utils.Vec2
		facing    float64
	}{
		{"目标在右侧", utils.Vec2{X: 50}, 0},
		{"目标在下方", utils.Vec2{Y: 50}, 90},
		{"目标在左侧", utils.Vec2{X: -50}, 180},
		{"目标在上方", utils.Vec2{Y: -50}, 270},
		{"目标在右下", utils.Vec2{X: 50, Y: 50}, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.RotationSpeed = 1
			p, h := newTestPufferfish(t, cfg)
			h.targetPos = tt.targetPos

			// dt*RotationSpeed = 1 时一帧内直接转到目标朝向
			p.Update(1)

			diff := math.Abs(utils.NormalizeDegrees(h.rotation-tt.facing+180) - 180)
			assert.Less(t, diff, 1e-6, "rotation %v, want %v", h.rotation, tt.facing)
		})
	}
}

func TestUpdateBlendsRotationByFrameTime(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RotationSpeed = 0.5
	p, h := newTestPufferfish(t, cfg)
	h.targetPos = utils.Vec2{Y: 100} // 目标朝向 90°

	p.Update(0.1) // t = 0.05
	assert.Greater(t, h.rotation, 0.0)
	assert.Less(t, h.rotation, 10.0, "small dt should only partially rotate")

	previous := h.rotation
	for i := 0; i < 600; i++ {
		p.Update(0.1)
		require.GreaterOrEqual(t, h.rotation, previous-floatTolerance)
		previous = h.rotation
	}
	assert.InDelta(t, 90, h.rotation, 0.5)
}

func TestUpdateWithoutTargetKeepsHeading(t *testing.T) {
	p, h := newTestPufferfish(t, DefaultConfig())
	h.rotation = 30
	h.targetAlive = false

	p.Update(0.5)

	assert.Equal(t, 30.0, h.rotation)
	dir := utils.DirectionFromDegrees(30)
	speed := h.velocity.Len()
	assert.InDelta(t, dir.X*speed, h.velocity.X, 1e-9)
	assert.NotZero(t, speed)
}

func TestTriggerEnterDetonatesOnlyForTarget(t *testing.T) {
	p, h := newTestPufferfish(t, DefaultConfig())
	h.targetPos = utils.Vec2{X: 10}
	p.Update(0.016)

	p.OnTriggerEnter("Rock")
	assert.Equal(t, StateActive, p.State())
	assert.Empty(t, h.scheduledTasks)
	assert.True(t, h.colliderEnabled)

	p.OnTriggerEnter("Player")
	assert.Equal(t, StateExploding, p.State())
	assert.True(t, p.Exploding())
	assert.False(t, h.colliderEnabled)
	assert.Equal(t, utils.Vec2{}, h.velocity)
	assert.True(t, h.animBools[AnimParamExplode])
	require.Len(t, h.scheduledTasks, 1)
	assert.Equal(t, TaskSpawnSpines, h.scheduledTasks[0].name)
	assert.Equal(t, DefaultExplosionDelay, h.scheduledTasks[0].delay)
}

func TestDetonateHappensOnce(t *testing.T) {
	p, h := newTestPufferfish(t, DefaultConfig())

	p.OnTriggerEnter("Player")
	p.OnTriggerEnter("Player")
	p.OnCollisionExit("Rock")
	p.Detonate()

	assert.Equal(t, 1, h.colliderToggles)
	assert.Len(t, h.scheduledTasks, 1)
	assert.Empty(t, h.destroyDelays, "contacts after detonation are ignored")
}

func TestVelocityStaysZeroAfterDetonation(t *testing.T) {
	p, h := newTestPufferfish(t, DefaultConfig())
	h.targetPos = utils.Vec2{X: -40, Y: 15}

	p.Update(0.016)
	require.NotZero(t, h.velocity.Len())

	p.OnCollisionExit("Rock")
	require.Equal(t, StateExploding, p.State())

	for i := 0; i < 120; i++ {
		h.targetPos = h.targetPos.Add(utils.Vec2{X: 1})
		p.Update(0.016)
		require.Equal(t, utils.Vec2{}, h.velocity, "tick %d", i)
	}
}

func TestCollisionExitWithTargetDestroysImmediately(t *testing.T) {
	p, h := newTestPufferfish(t, DefaultConfig())
	h.targetPos = utils.Vec2{X: 5}
	p.Update(0.016)
	velocityBefore := h.velocity

	p.OnCollisionExit("Player")

	assert.Equal(t, StateDestroyed, p.State())
	assert.Equal(t, []float64{0}, h.destroyDelays)
	assert.Empty(t, h.spines)
	assert.Empty(t, h.scheduledTasks)
	assert.False(t, h.animBools[AnimParamExplode])
	assert.True(t, h.colliderEnabled)

	// 销毁后的 Update 与接触事件都不再产生副作用
	p.Update(0.016)
	p.OnTriggerEnter("Player")
	assert.Equal(t, velocityBefore, h.velocity)
	assert.Empty(t, h.scheduledTasks)
}

func TestSpawnSpinesRing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumberOfSpines = 8
	cfg.SpineSpeed = 1
	p, h := newTestPufferfish(t, cfg)
	h.pos = utils.Vec2{X: 120, Y: 80}

	p.OnTriggerEnter("Player")
	h.runTask(t, TaskSpawnSpines)

	require.Len(t, h.spines, 8)
	for i, spine := range h.spines {
		wantAngle := 45.0 * float64(i)
		assert.InDelta(t, wantAngle, spine.rotation, floatTolerance, "spine %d", i)
		assert.Equal(t, h.pos, spine.pos)
		assert.Equal(t, cfg.SpinePrefab, spine.prefab)
		assert.InDelta(t, 1, spine.velocity.Len(), floatTolerance)

		dir := utils.DirectionFromDegrees(wantAngle)
		assert.InDelta(t, dir.X, spine.velocity.X, floatTolerance)
		assert.InDelta(t, dir.Y, spine.velocity.Y, floatTolerance)
	}

	assert.Equal(t, 8, p.SpawnedSpines())
	assert.Equal(t, []float64{DefaultSelfDestructDelay}, h.destroyDelays)

	require.Len(t, h.scheduledTasks, 1)
	assert.Equal(t, TaskPlaySound, h.scheduledTasks[0].name)
	assert.Equal(t, DefaultSoundDelay, h.scheduledTasks[0].delay)
}

func TestSpawnSpinesAngles(t *testing.T) {
	for _, count := range []int{1, 3, 5, 12} {
		cfg := DefaultConfig()
		cfg.NumberOfSpines = count
		cfg.SpineSpeed = 2.5
		p, h := newTestPufferfish(t, cfg)

		p.SpawnSpines()

		require.Len(t, h.spines, count)
		for i, spine := range h.spines {
			assert.InDelta(t, 360*float64(i)/float64(count), spine.rotation, 1e-9)
			assert.InDelta(t, 2.5, spine.velocity.Len(), 1e-9)
		}
	}
}

func TestSpawnSpinesZeroCountStillSelfDestructs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumberOfSpines = 0
	p, h := newTestPufferfish(t, cfg)

	p.OnCollisionExit("Wall")
	h.runTask(t, TaskSpawnSpines)

	assert.Empty(t, h.spines)
	assert.Equal(t, []float64{DefaultSelfDestructDelay}, h.destroyDelays)
}

func TestSpawnSpinesTwiceSchedulesSoundOnce(t *testing.T) {
	p, h := newTestPufferfish(t, DefaultConfig())

	p.SpawnSpines()
	p.SpawnSpines()

	sounds := 0
	for _, task := range h.scheduledTasks {
		if task.name == TaskPlaySound {
			sounds++
		}
	}
	assert.Equal(t, 1, sounds)
	assert.True(t, p.SoundScheduled())
	assert.Len(t, h.spines, 8, "resumed loop must not spawn extra spines")
}

func TestNegativeSpineSpeedPassesThrough(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumberOfSpines = 4
	cfg.SpineSpeed = -1.5
	p, h := newTestPufferfish(t, cfg)

	p.SpawnSpines()

	require.Len(t, h.spines, 4)
	assert.InDelta(t, -1.5, h.spines[0].velocity.X, floatTolerance)
}

func TestPlaySound(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExplosionSound = "SOUND_BOOM"
	p, h := newTestPufferfish(t, cfg)

	p.OnTriggerEnter("Player")
	h.runTask(t, TaskSpawnSpines)
	assert.Zero(t, h.playCount)

	h.runTask(t, TaskPlaySound)
	assert.Equal(t, "SOUND_BOOM", h.clip)
	assert.Equal(t, 1, h.playCount)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "active", StateActive.String())
	assert.Equal(t, "exploding", StateExploding.String())
	assert.Equal(t, "destroyed", StateDestroyed.String())
	assert.Equal(t, "state(9)", State(9).String())
}
