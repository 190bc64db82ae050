// Package search 实现防抖搜索协调器
// 输入端合并连续按键，执行端保证同一时刻至多一次过滤
package search

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/haierkeys/lifeframe-journal-service/internal/domain"

	"go.uber.org/zap"
)

// 协调器状态
const (
	// StateReady 就绪，可以接受新的过滤请求
	StateReady int32 = iota
	// StateFiltering 过滤进行中，此间到达的请求被丢弃
	StateFiltering
)

// DefaultDebounceDelay 按键停顿多久后才真正执行过滤
const DefaultDebounceDelay = 500 * time.Millisecond

// Config 搜索协调器配置
type Config struct {
	DebounceDelay time.Duration
}

// Snapshotter 提供章节数据的一致性快照
type Snapshotter interface {
	List(ctx context.Context) ([]*domain.Chapter, error)
}

// Coordinator 搜索协调器
// 每次按键调用 SetTerm，尾沿防抖后对快照做一次大小写不敏感的子串过滤
type Coordinator struct {
	source Snapshotter
	logger *zap.Logger
	delay  time.Duration

	timerMu sync.Mutex
	timer   *time.Timer

	termMu sync.RWMutex
	term   string

	state atomic.Int32

	projMu     sync.RWMutex
	projection []*domain.Chapter

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(cfg Config, source Snapshotter, logger *zap.Logger) *Coordinator {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = DefaultDebounceDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		source: source,
		logger: logger,
		delay:  cfg.DebounceDelay,
	}
}

// Start 订阅存储变更事件，变更时按当前搜索词刷新投影
func (c *Coordinator) Start(events <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-events:
				c.Refresh()
			}
		}
	}()
}

// Stop 停止事件订阅并取消未触发的防抖定时器
func (c *Coordinator) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
	c.timerMu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.timerMu.Unlock()
	c.wg.Wait()
}

// SetTerm 记录一次按键输入
// 空词绕过防抖与状态机，立即重发未过滤的全量投影
func (c *Coordinator) SetTerm(term string) {
	c.termMu.Lock()
	c.term = term
	c.termMu.Unlock()

	if term == "" {
		c.timerMu.Lock()
		if c.timer != nil {
			c.timer.Stop()
			c.timer = nil
		}
		c.timerMu.Unlock()

		c.publishAll()
		return
	}

	c.scheduleFilter()
}

// Term 返回当前搜索词
func (c *Coordinator) Term() string {
	c.termMu.RLock()
	defer c.termMu.RUnlock()
	return c.term
}

// Refresh 按当前搜索词刷新投影，存储变更时调用
func (c *Coordinator) Refresh() {
	if c.Term() == "" {
		c.publishAll()
		return
	}
	c.scheduleFilter()
}

// scheduleFilter 尾沿防抖：新的输入重置定时器，停顿满 delay 后执行一次过滤
func (c *Coordinator) scheduleFilter() {
	c.timerMu.Lock()
	defer c.timerMu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.delay, c.runFilterPass)
}

// runFilterPass 执行一次过滤
// 上一次过滤尚未结束时直接丢弃本次请求，不排队
func (c *Coordinator) runFilterPass() {
	if !c.state.CompareAndSwap(StateReady, StateFiltering) {
		c.logger.Debug("filter pass dropped, coordinator busy")
		return
	}
	defer c.state.Store(StateReady)

	term := c.Term()
	if term == "" {
		c.publishAll()
		return
	}

	chapters, err := c.source.List(context.Background())
	if err != nil {
		c.logger.Warn("search snapshot failed", zap.Error(err))
		return
	}

	c.replaceProjection(filterChapters(chapters, term))
}

// publishAll 重发未过滤的全量数据
func (c *Coordinator) publishAll() {
	chapters, err := c.source.List(context.Background())
	if err != nil {
		c.logger.Warn("search snapshot failed", zap.Error(err))
		return
	}
	c.replaceProjection(chapters)
}

func (c *Coordinator) replaceProjection(chapters []*domain.Chapter) {
	c.projMu.Lock()
	c.projection = chapters
	c.projMu.Unlock()
}

// Projection 返回当前投影的独立副本
func (c *Coordinator) Projection() []*domain.Chapter {
	c.projMu.RLock()
	defer c.projMu.RUnlock()

	out := make([]*domain.Chapter, 0, len(c.projection))
	for _, chapter := range c.projection {
		copied := *chapter
		copied.Items = append([]*domain.Item(nil), chapter.Items...)
		out = append(out, &copied)
	}
	return out
}

// State 返回当前状态，仅用于观测
func (c *Coordinator) State() int32 {
	return c.state.Load()
}

// filterChapters 大小写不敏感的子串匹配
// 不携带文本的条目不参与匹配；没有命中条目的章节整体剔除
func filterChapters(chapters []*domain.Chapter, term string) []*domain.Chapter {
	needle := strings.ToLower(term)

	var out []*domain.Chapter
	for _, chapter := range chapters {
		var matched []*domain.Item
		for _, item := range chapter.Items {
			if !item.HasText() {
				continue
			}
			if strings.Contains(strings.ToLower(item.Text), needle) {
				matched = append(matched, item)
			}
		}
		if len(matched) == 0 {
			continue
		}
		copied := *chapter
		copied.Items = matched
		out = append(out, &copied)
	}
	return out
}
