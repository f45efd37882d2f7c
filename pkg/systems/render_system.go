package systems

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/pufferfish/pkg/behavior"
	"github.com/decker502/pufferfish/pkg/components"
	"github.com/decker502/pufferfish/pkg/config"
	"github.com/decker502/pufferfish/pkg/ecs"
	"github.com/decker502/pufferfish/pkg/utils"
)

const (
	// PuffDuration 膨胀动画时长（秒）
	PuffDuration = 0.6
	// PuffMaxScale 膨胀结束时的体积倍数
	PuffMaxScale = 1.8
)

var (
	colorWater      = color.RGBA{R: 18, G: 64, B: 104, A: 255}
	colorRock       = color.RGBA{R: 92, G: 84, B: 72, A: 255}
	colorPlayer     = color.RGBA{R: 240, G: 200, B: 60, A: 255}
	colorPufferfish = color.RGBA{R: 230, G: 150, B: 60, A: 255}
	colorExploding  = color.RGBA{R: 250, G: 90, B: 60, A: 255}
	colorSensor     = color.RGBA{R: 255, G: 255, B: 255, A: 40}
	colorSpine      = color.NRGBA{R: 235, G: 235, B: 220, A: 255}
	colorHUD        = color.RGBA{R: 255, G: 255, B: 255, A: 220}
)

// HUDStats 渲染在左上角的统计信息
type HUDStats struct {
	Pufferfish PufferfishStats
	Spawned    int
	Paused     bool
}

// RenderSystem 用矢量图形绘制场地与实体
//
// 世界坐标 Y 轴向上，屏幕坐标 Y 轴向下，绘制时翻转。
// 绘制顺序：水体 → 礁石 → 尖刺 → 河豚 → 玩家 → HUD。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	arena         config.ArenaConfig
	face          text.Face

	// ShowSensors 绘制河豚感应区
	ShowSensors bool
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, arena config.ArenaConfig) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		arena:         arena,
		face:          text.NewGoXFace(basicfont.Face7x13),
	}
}

// worldToScreen 世界坐标转屏幕像素
func (s *RenderSystem) worldToScreen(x, y float64) (float32, float32) {
	ppu := s.arena.PixelsPerUnit
	return float32(x * ppu), float32((s.arena.Height - y) * ppu)
}

// puffScale 根据动画参数计算河豚体积倍数
func puffScale(anim *components.AnimatorComponent) float64 {
	if anim == nil || !anim.GetBool(behavior.AnimParamExplode) {
		return 1
	}
	return utils.Lerp(1, PuffMaxScale, utils.EaseOutCubic(anim.StateTime/PuffDuration))
}

// Draw 绘制整个场景
func (s *RenderSystem) Draw(screen *ebiten.Image, hud HUDStats) {
	screen.Fill(colorWater)

	s.drawObstacles(screen)
	s.drawSpines(screen)
	s.drawPufferfish(screen)
	s.drawPlayers(screen)
	s.drawHUD(screen, hud)
}

func (s *RenderSystem) drawBox(screen *ebiten.Image, id ecs.EntityID, clr color.Color) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if !ok {
		return
	}
	col, ok := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id)
	if !ok {
		return
	}
	ppu := float32(s.arena.PixelsPerUnit)
	x, y := s.worldToScreen(pos.X+col.OffsetX-col.Width/2, pos.Y+col.OffsetY+col.Height/2)
	vector.DrawFilledRect(screen, x, y, float32(col.Width)*ppu, float32(col.Height)*ppu, clr, true)
}

func (s *RenderSystem) drawObstacles(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith1[*components.ObstacleComponent](s.entityManager) {
		s.drawBox(screen, id, colorRock)
	}
}

func (s *RenderSystem) drawPlayers(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith1[*components.PlayerComponent](s.entityManager) {
		s.drawBox(screen, id, colorPlayer)
	}
}

func (s *RenderSystem) drawSpines(screen *ebiten.Image) {
	ppu := s.arena.PixelsPerUnit
	for _, id := range ecs.GetEntitiesWith2[*components.SpineComponent, *components.PositionComponent](s.entityManager) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		rotation := 0.0
		if rot, ok := ecs.GetComponent[*components.RotationComponent](s.entityManager, id); ok {
			rotation = rot.Degrees
		}

		// 尖刺画成沿朝向的短线段，临近消失时变淡
		length := 0.3
		tail := utils.Vec2{X: pos.X, Y: pos.Y}.Sub(utils.DirectionFromDegrees(rotation).Scale(length))
		clr := colorSpine
		if lt, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id); ok && lt.MaxLifetime > 0 {
			clr.A = uint8(utils.Lerp(255, 60, utils.Clamp01(lt.CurrentLifetime/lt.MaxLifetime)))
		}

		x0, y0 := s.worldToScreen(tail.X, tail.Y)
		x1, y1 := s.worldToScreen(pos.X, pos.Y)
		vector.StrokeLine(screen, x0, y0, x1, y1, float32(0.06*ppu), clr, true)
	}
}

func (s *RenderSystem) drawPufferfish(screen *ebiten.Image) {
	ppu := s.arena.PixelsPerUnit
	for _, id := range ecs.GetEntitiesWith2[*components.PufferfishComponent, *components.PositionComponent](s.entityManager) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		anim, _ := ecs.GetComponent[*components.AnimatorComponent](s.entityManager, id)

		radius := 0.35
		if col, ok := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id); ok {
			radius = col.Width / 2
		}
		scale := puffScale(anim)

		clr := colorPufferfish
		if scale > 1 {
			clr = colorExploding
		}

		cx, cy := s.worldToScreen(pos.X, pos.Y)

		if s.ShowSensors {
			if sensor, ok := ecs.GetComponent[*components.SensorComponent](s.entityManager, id); ok && sensor.Enabled {
				vector.DrawFilledCircle(screen, cx, cy, float32(sensor.Radius*ppu), colorSensor, true)
			}
		}

		vector.DrawFilledCircle(screen, cx, cy, float32(radius*scale*ppu), clr, true)

		// 朝向标记
		if rot, ok := ecs.GetComponent[*components.RotationComponent](s.entityManager, id); ok {
			nose := utils.Vec2{X: pos.X, Y: pos.Y}.Add(utils.DirectionFromDegrees(rot.Degrees).Scale(radius * scale))
			nx, ny := s.worldToScreen(nose.X, nose.Y)
			vector.StrokeLine(screen, cx, cy, nx, ny, 2, color.Black, true)
		}
	}
}

func (s *RenderSystem) drawHUD(screen *ebiten.Image, hud HUDStats) {
	hits := 0
	for _, id := range ecs.GetEntitiesWith1[*components.PlayerComponent](s.entityManager) {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		hits += player.Hits
	}

	lines := []string{
		fmt.Sprintf("Entities: %d", s.entityManager.EntityCount()),
		fmt.Sprintf("Pufferfish spawned: %d  detonated: %d  direct hits: %d",
			hud.Spawned, hud.Pufferfish.Detonations, hud.Pufferfish.DirectHits),
		fmt.Sprintf("Spines: %d  player hits: %d", hud.Pufferfish.SpinesSpawned, hits),
	}
	if hud.Paused {
		lines = append(lines, "PAUSED (Esc)")
	}

	y := 8.0
	for _, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(8, y)
		op.ColorScale.ScaleWithColor(colorHUD)
		text.Draw(screen, line, s.face, op)
		y += 16
	}
}
