package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/pufferfish/pkg/components"
	"github.com/decker502/pufferfish/pkg/config"
	"github.com/decker502/pufferfish/pkg/ecs"
	"github.com/decker502/pufferfish/pkg/entities"
	"github.com/decker502/pufferfish/pkg/utils"
)

const frame = 1.0 / 60.0

type scriptedInput struct {
	axis       utils.Vec2
	pauseFrame map[int]bool
	calls      int
}

func (s *scriptedInput) MoveAxis() utils.Vec2 { return s.axis }

func (s *scriptedInput) PauseJustPressed() bool {
	s.calls++
	return s.pauseFrame[s.calls]
}

type recordingSound struct {
	played []string
}

func (r *recordingSound) PlaySound(soundID string) bool {
	r.played = append(r.played, soundID)
	return true
}

// quietConfig 关闭自动刷新与礁石，由测试手动放置河豚
func quietConfig() *config.GameConfig {
	cfg := config.DefaultGameConfig()
	cfg.Spawner = config.SpawnerConfig{}
	cfg.Obstacles = nil
	return cfg
}

func newTestSimulation(t *testing.T, cfg *config.GameConfig) (*Simulation, *recordingSound) {
	t.Helper()
	sound := &recordingSound{}
	sim, err := NewSimulation(cfg, &scriptedInput{}, sound, 1)
	require.NoError(t, err)
	return sim, sound
}

func (s *Simulation) run(seconds float64) {
	for i := 0; i < int(seconds*60); i++ {
		s.Step(frame)
	}
}

func playerHits(t *testing.T, sim *Simulation) int {
	t.Helper()
	pc, ok := ecs.GetComponent[*components.PlayerComponent](sim.EntityManager, sim.PlayerID)
	require.True(t, ok)
	return pc.Hits
}

func TestSimulationDetonationLifecycle(t *testing.T) {
	cfg := quietConfig()
	sim, sound := newTestSimulation(t, cfg)

	// 玩家在 (12, 8)，河豚从右侧 2 个单位处游向玩家
	fish, err := entities.NewPufferfishEntity(sim.EntityManager, cfg.Pufferfish, 14, 8, 180)
	require.NoError(t, err)

	sim.run(1)
	stats := sim.PufferfishSystem().Stats()
	require.Equal(t, 1, stats.Detonations, "player inside the sensor should detonate the fish")
	assert.Zero(t, stats.DirectHits)

	sim.run(3)
	stats = sim.PufferfishSystem().Stats()
	assert.Equal(t, cfg.Pufferfish.NumberOfSpines, stats.SpinesSpawned)
	assert.Equal(t, []string{cfg.Pufferfish.ExplosionSound}, sound.played)
	assert.GreaterOrEqual(t, playerHits(t, sim), 1, "the spine fired toward the player should hit")

	// 自毁与尖刺过期后只剩玩家
	sim.run(6)
	assert.False(t, sim.EntityManager.EntityExists(fish))
	assert.Equal(t, 1, sim.EntityManager.EntityCount())
	assert.Zero(t, sim.Scheduler().Len())
	assert.Len(t, sound.played, 1, "explosion sound plays once")
}

func TestSimulationRockDetonation(t *testing.T) {
	cfg := quietConfig()
	cfg.Obstacles = []config.ObstacleConfig{{X: 7, Y: 8, Width: 1, Height: 1}}
	sim, _ := newTestSimulation(t, cfg)

	fish, err := entities.NewPufferfishEntity(sim.EntityManager, cfg.Pufferfish, 5, 8, 0)
	require.NoError(t, err)

	sim.run(5)

	stats := sim.PufferfishSystem().Stats()
	assert.Equal(t, 1, stats.Detonations)
	assert.Zero(t, stats.DirectHits)

	pos, ok := ecs.GetComponent[*components.PositionComponent](sim.EntityManager, fish)
	require.True(t, ok)
	assert.Less(t, pos.X, 9.0, "fish stops right after leaving the rock")
}

func TestSimulationDirectHit(t *testing.T) {
	cfg := quietConfig()
	cfg.Pufferfish.SensorRadius = 0
	sim, sound := newTestSimulation(t, cfg)

	fish, err := entities.NewPufferfishEntity(sim.EntityManager, cfg.Pufferfish, 14, 8, 180)
	require.NoError(t, err)

	sim.run(6)

	stats := sim.PufferfishSystem().Stats()
	assert.Equal(t, 1, stats.DirectHits)
	assert.Zero(t, stats.Detonations)
	assert.Zero(t, stats.SpinesSpawned)
	assert.False(t, sim.EntityManager.EntityExists(fish))
	assert.Empty(t, sound.played)
}

func TestSimulationPause(t *testing.T) {
	cfg := quietConfig()
	input := &scriptedInput{pauseFrame: map[int]bool{2: true, 4: true}}
	sim, err := NewSimulation(cfg, input, nil, 1)
	require.NoError(t, err)

	sim.Step(frame) // 1
	sim.Step(frame) // 2: 暂停
	assert.True(t, sim.Paused())
	sim.Step(frame) // 3: 暂停中
	assert.Equal(t, 1, sim.Frame())
	sim.Step(frame) // 4: 恢复
	assert.False(t, sim.Paused())
	assert.Equal(t, 2, sim.Frame())
}

func TestSimulationIsDeterministicForSeed(t *testing.T) {
	positions := func() []components.PositionComponent {
		cfg := config.DefaultGameConfig()
		sim, err := NewSimulation(cfg, &scriptedInput{}, nil, 42)
		require.NoError(t, err)
		sim.run(8)

		var out []components.PositionComponent
		for _, id := range ecs.GetEntitiesWith1[*components.PositionComponent](sim.EntityManager) {
			pos, _ := ecs.GetComponent[*components.PositionComponent](sim.EntityManager, id)
			out = append(out, *pos)
		}
		return out
	}

	assert.Equal(t, positions(), positions())
}

func TestSimulationPlacesObstacles(t *testing.T) {
	cfg := config.DefaultGameConfig()
	sim, _ := newTestSimulation(t, cfg)

	rocks := ecs.GetEntitiesWith1[*components.ObstacleComponent](sim.EntityManager)
	assert.Len(t, rocks, len(cfg.Obstacles))

	pos, _ := ecs.GetComponent[*components.PositionComponent](sim.EntityManager, sim.PlayerID)
	assert.Equal(t, cfg.Arena.Width/2, pos.X)
	assert.Equal(t, cfg.Arena.Height/2, pos.Y)
}
