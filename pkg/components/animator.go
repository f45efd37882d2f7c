package components

// AnimatorComponent 动画参数
//
// 行为逻辑只写布尔参数，渲染系统根据参数和 StateTime 决定画面。
// 任一参数发生变化时 StateTime 归零。
type AnimatorComponent struct {
	Bools     map[string]bool
	StateTime float64 // 当前参数组合持续的时间（秒）
	Dirty     bool    // 本帧参数被修改过，由 AnimationSystem 清除
}

// NewAnimatorComponent 创建空参数的动画组件
func NewAnimatorComponent() *AnimatorComponent {
	return &AnimatorComponent{Bools: make(map[string]bool)}
}

// SetBool 设置布尔参数，值变化时标记 Dirty
func (a *AnimatorComponent) SetBool(name string, value bool) {
	if a.Bools == nil {
		a.Bools = make(map[string]bool)
	}
	if a.Bools[name] == value {
		return
	}
	a.Bools[name] = value
	a.Dirty = true
}

// GetBool 读取布尔参数，未设置时返回 false
func (a *AnimatorComponent) GetBool(name string) bool {
	return a.Bools[name]
}
