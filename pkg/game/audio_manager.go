package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioManager 音频管理器
// 职责：
//   - 统一管理游戏中所有音效的播放
//   - 实现音量控制（从 SettingsManager 读取设置）
//   - 通过资源ID播放，无需关心路径
//
// 每次播放都创建独立的播放器，同一音效可以重叠播放。
// 没有音频上下文时（测试、无声卡环境）只解析资源，不发声。
type AudioManager struct {
	resourceManager *ResourceManager // 资源管理器（用于加载音频）
	settingsManager *SettingsManager // 设置管理器（用于读取音量设置），可为 nil
	active          []*audio.Player  // 正在播放的播放器
	playCount       map[string]int   // 各音效的播放次数
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - rm: ResourceManager 实例
//   - sm: SettingsManager 实例，可为 nil
func NewAudioManager(rm *ResourceManager, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
		playCount:       make(map[string]int),
	}
}

// PlaySound 播放音效
// 音效使用 SoundVolume 设置控制音量，单次播放
//
// 参数：
//   - soundID: 音效资源ID（如 "SOUND_PUFFERFISH_EXPLODE"）
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(soundID string) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	pcm, err := am.resourceManager.SoundPCM(soundID)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to load sound %s: %v", soundID, err)
		return false
	}

	ctx := am.resourceManager.AudioContext()
	if ctx == nil {
		return false
	}

	am.pruneFinished()

	player := ctx.NewPlayerFromBytes(pcm)
	player.SetVolume(am.getSoundVolume())
	player.Play()

	am.active = append(am.active, player)
	am.playCount[soundID]++
	return true
}

// PlayCount 返回音效成功播放的次数
func (am *AudioManager) PlayCount(soundID string) int {
	return am.playCount[soundID]
}

// ActivePlayers 正在播放的播放器数量
func (am *AudioManager) ActivePlayers() int {
	am.pruneFinished()
	return len(am.active)
}

// pruneFinished 释放已播放完毕的播放器
func (am *AudioManager) pruneFinished() {
	kept := am.active[:0]
	for _, p := range am.active {
		if p.IsPlaying() {
			kept = append(kept, p)
			continue
		}
		if err := p.Close(); err != nil {
			log.Printf("[AudioManager] Warning: Failed to close player: %v", err)
		}
	}
	am.active = kept
}

// SetSoundVolume 设置音效音量并写入设置
// 只影响之后开始的播放
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
}

// GetSoundVolume 获取音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	return am.getSoundVolume()
}

// getSoundVolume 获取音效音量设置
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return DefaultSettings().SoundVolume
}

// PreloadSounds 预加载音效
// 在场景初始化时调用，避免首次播放时的解码延迟
func (am *AudioManager) PreloadSounds(soundIDs []string) {
	loaded := 0
	for _, soundID := range soundIDs {
		if _, err := am.resourceManager.SoundPCM(soundID); err != nil {
			log.Printf("[AudioManager] Warning: Failed to preload sound %s: %v", soundID, err)
			continue
		}
		loaded++
	}
	log.Printf("[AudioManager] Preloaded %d/%d sounds", loaded, len(soundIDs))
}
