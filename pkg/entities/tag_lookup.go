package entities

import (
	"github.com/decker502/pufferfish/pkg/components"
	"github.com/decker502/pufferfish/pkg/ecs"
)

// FindEntityWithTag 按标签查找实体
// 多个实体拥有相同标签时返回ID最小的一个
func FindEntityWithTag(em *ecs.EntityManager, tag string) (ecs.EntityID, bool) {
	for _, id := range ecs.GetEntitiesWith1[*components.TagComponent](em) {
		tagComp, ok := ecs.GetComponent[*components.TagComponent](em, id)
		if ok && tagComp.Tag == tag && !em.IsMarkedForDestroy(id) {
			return id, true
		}
	}
	return 0, false
}

// TagOf 返回实体标签，实体不存在或没有标签时返回空字符串
func TagOf(em *ecs.EntityManager, id ecs.EntityID) string {
	if tagComp, ok := ecs.GetComponent[*components.TagComponent](em, id); ok {
		return tagComp.Tag
	}
	return ""
}
