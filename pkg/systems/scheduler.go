package systems

import (
	"container/heap"
	"log"
	"sort"

	"github.com/decker502/pufferfish/pkg/ecs"
)

// scheduledTask 一次性延迟任务
type scheduledTask struct {
	owner     ecs.EntityID
	name      string
	fireAt    float64
	seq       uint64
	fn        func()
	cancelled bool
}

// taskQueue 按 (fireAt, seq) 排序的小顶堆
type taskQueue []*scheduledTask

func (q taskQueue) Len() int { return len(q) }
func (q taskQueue) Less(i, j int) bool {
	if q[i].fireAt != q[j].fireAt {
		return q[i].fireAt < q[j].fireAt
	}
	return q[i].seq < q[j].seq
}
func (q taskQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *taskQueue) Push(x interface{}) { *q = append(*q, x.(*scheduledTask)) }
func (q *taskQueue) Pop() interface{} {
	old := *q
	n := len(old)
	task := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return task
}

// Scheduler 单线程延迟任务队列
//
// 所有任务都在 Update 内、主循环线程上执行。同一时刻到期的任务按登记顺序执行。
// 任务执行期间登记的新任务以该任务的触发时间为起点计算延迟，
// 若已经到期则在同一次 Update 内执行，因此结果与帧步长无关。
// 实体被移除后应调用 CancelOwner，其未执行的任务不再触发。
type Scheduler struct {
	now   float64
	seq   uint64
	queue taskQueue
	live  int // 未取消的任务数

	running bool    // 正在执行任务
	current float64 // 正在执行的任务的触发时间
}

// NewScheduler 创建延迟任务队列
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now 返回调度器时钟（秒）
func (s *Scheduler) Now() float64 {
	return s.now
}

// Invoke 登记一个 delay 秒后执行的任务
// delay 为负时按 0 处理
func (s *Scheduler) Invoke(owner ecs.EntityID, name string, delay float64, fn func()) {
	if fn == nil {
		return
	}
	if delay < 0 {
		delay = 0
	}
	base := s.now
	if s.running {
		base = s.current
	}
	s.seq++
	heap.Push(&s.queue, &scheduledTask{
		owner:  owner,
		name:   name,
		fireAt: base + delay,
		seq:    s.seq,
		fn:     fn,
	})
	s.live++
}

// Update 推进时钟并执行所有到期任务
func (s *Scheduler) Update(deltaTime float64) {
	s.now += deltaTime

	for s.queue.Len() > 0 && s.queue[0].fireAt <= s.now {
		task := heap.Pop(&s.queue).(*scheduledTask)
		if task.cancelled {
			continue
		}
		s.live--
		s.running, s.current = true, task.fireAt
		task.fn()
		s.running = false
	}
}

// CancelOwner 取消实体的全部未执行任务，返回取消数量
func (s *Scheduler) CancelOwner(owner ecs.EntityID) int {
	cancelled := 0
	for _, task := range s.queue {
		if task.owner == owner && !task.cancelled {
			task.cancelled = true
			cancelled++
		}
	}
	s.live -= cancelled
	if cancelled > 0 {
		log.Printf("[Scheduler] 实体 %d 已移除，取消 %d 个延迟任务", owner, cancelled)
	}
	return cancelled
}

// Pending 返回实体尚未执行的任务名（按触发顺序）
func (s *Scheduler) Pending(owner ecs.EntityID) []string {
	tasks := make([]*scheduledTask, 0)
	for _, task := range s.queue {
		if task.owner == owner && !task.cancelled {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return taskQueue(tasks).Less(i, j) })

	names := make([]string, len(tasks))
	for i, task := range tasks {
		names[i] = task.name
	}
	return names
}

// Len 返回未取消的任务总数
func (s *Scheduler) Len() int {
	return s.live
}

// ForOwner 返回绑定到实体的调度句柄（实现 behavior.Scheduler）
func (s *Scheduler) ForOwner(owner ecs.EntityID) *OwnerScheduler {
	return &OwnerScheduler{scheduler: s, owner: owner}
}

// OwnerScheduler 绑定实体的调度句柄
type OwnerScheduler struct {
	scheduler *Scheduler
	owner     ecs.EntityID
}

// Invoke 以绑定实体的名义登记任务
func (o *OwnerScheduler) Invoke(name string, delay float64, fn func()) {
	o.scheduler.Invoke(o.owner, name, delay, fn)
}
