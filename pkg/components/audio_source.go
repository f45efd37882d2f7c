package components

// AudioSourceComponent 实体音源
// Play 只登记播放请求，由 AudioSystem 在本帧末统一交给 AudioManager
type AudioSourceComponent struct {
	Clip         string // 当前音效资源ID
	PendingPlays int    // 尚未处理的播放请求数
	PlayedCount  int    // 已提交播放的次数
	LastPlayedOK bool   // 最近一次提交是否被 AudioManager 接受
}
