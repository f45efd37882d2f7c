package systems

import (
	"log"

	"github.com/decker502/pufferfish/pkg/components"
	"github.com/decker502/pufferfish/pkg/ecs"
)

// SoundPlayer 播放音效的后端，game.AudioManager 满足此接口
type SoundPlayer interface {
	PlaySound(soundID string) bool
}

// AudioSystem 把音源组件上的播放请求提交给音频后端
//
// 同一音源的多次请求逐一提交，不做去重或互斥，重叠播放由后端混音。
// 播放失败（资源缺失、音效关闭）只记录日志。
type AudioSystem struct {
	entityManager *ecs.EntityManager
	player        SoundPlayer
}

// NewAudioSystem 创建音频系统
// player 为 nil 时请求被丢弃（无声运行）
func NewAudioSystem(em *ecs.EntityManager, player SoundPlayer) *AudioSystem {
	return &AudioSystem{
		entityManager: em,
		player:        player,
	}
}

// Update 处理本帧的播放请求
func (s *AudioSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.AudioSourceComponent](s.entityManager) {
		src, _ := ecs.GetComponent[*components.AudioSourceComponent](s.entityManager, id)

		for ; src.PendingPlays > 0; src.PendingPlays-- {
			src.PlayedCount++
			if s.player == nil {
				src.LastPlayedOK = false
				continue
			}
			src.LastPlayedOK = s.player.PlaySound(src.Clip)
			if !src.LastPlayedOK {
				log.Printf("[AudioSystem] 实体 %d 音效 %q 播放失败", id, src.Clip)
			}
		}
	}
}
