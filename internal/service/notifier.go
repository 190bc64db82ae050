package service

import "sync"

// Notifier 存储变更广播器
// 每次成功的写操作都会显式广播一次变更事件
// 订阅通道容量为 1，落后的订阅者会把多次变更合并为一次通知
type Notifier struct {
	mu   sync.Mutex
	subs []chan struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe 注册订阅者，返回只读事件通道
func (n *Notifier) Subscribe() <-chan struct{} {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(chan struct{}, 1)
	n.subs = append(n.subs, ch)
	return ch
}

// Publish 向全部订阅者广播一次变更，从不阻塞
func (n *Notifier) Publish() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
