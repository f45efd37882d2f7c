package systems

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/pufferfish/pkg/utils"
)

// InputSource 玩家输入
type InputSource interface {
	// MoveAxis 返回移动方向，各分量取值 -1/0/1，Y 轴向上为正
	MoveAxis() utils.Vec2
	// PauseJustPressed 本帧是否按下暂停键
	PauseJustPressed() bool
}

// KeyboardInput 基于 ebiten 键盘状态的输入源（方向键 / WASD，ESC 暂停）
type KeyboardInput struct{}

// MoveAxis 实现 InputSource
func (KeyboardInput) MoveAxis() utils.Vec2 {
	var axis utils.Vec2
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		axis.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		axis.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		axis.Y++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		axis.Y--
	}
	return axis
}

// PauseJustPressed 实现 InputSource
func (KeyboardInput) PauseJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}
