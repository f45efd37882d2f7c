package components

import "testing"

func TestAnimatorSetBool(t *testing.T) {
	a := NewAnimatorComponent()

	if a.GetBool("Explode") {
		t.Fatal("未设置的参数应为 false")
	}

	a.SetBool("Explode", true)
	if !a.GetBool("Explode") || !a.Dirty {
		t.Errorf("SetBool 后参数应为 true 且 Dirty, got %v / %v", a.GetBool("Explode"), a.Dirty)
	}

	// 相同值不再标记 Dirty
	a.Dirty = false
	a.SetBool("Explode", true)
	if a.Dirty {
		t.Error("重复设置相同值不应标记 Dirty")
	}
}

func TestAnimatorZeroValue(t *testing.T) {
	var a AnimatorComponent
	a.SetBool("Explode", true)
	if !a.GetBool("Explode") {
		t.Error("零值组件也应能设置参数")
	}
}
