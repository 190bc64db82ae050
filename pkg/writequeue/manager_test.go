package writequeue

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager_ExecuteSerializesSameKey(t *testing.T) {
	m := New(nil, nil)
	defer m.Shutdown(context.Background())

	// Concurrent writers on the same chapter must never overlap
	// 同一章节的并发写不允许重叠
	var inside int
	var maxInside int
	var mu sync.Mutex

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := m.Execute(context.Background(), "chapter-1", func() error {
				mu.Lock()
				inside++
				if inside > maxInside {
					maxInside = inside
				}
				mu.Unlock()

				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxInside, "writes on one chapter must be serialized")
}

func TestManager_ExecutePropagatesError(t *testing.T) {
	m := New(nil, nil)
	defer m.Shutdown(context.Background())

	wantErr := assert.AnError
	err := m.Execute(context.Background(), "chapter-1", func() error {
		return wantErr
	})
	assert.Equal(t, wantErr, err)
}

func TestManager_ExecuteAfterShutdown(t *testing.T) {
	m := New(nil, nil)
	assert.NoError(t, m.Shutdown(context.Background()))

	err := m.Execute(context.Background(), "chapter-1", func() error { return nil })
	assert.ErrorIs(t, err, ErrWriteQueueClosed)
}

func TestManager_IndependentKeys(t *testing.T) {
	m := New(nil, nil)
	defer m.Shutdown(context.Background())

	// Different chapters use different queues and don't block each other
	// 不同章节使用不同队列，互不阻塞
	release := make(chan struct{})
	started := make(chan struct{})

	go func() {
		_ = m.Execute(context.Background(), "chapter-a", func() error {
			close(started)
			<-release
			return nil
		})
	}()

	<-started
	err := m.Execute(context.Background(), "chapter-b", func() error { return nil })
	assert.NoError(t, err)
	close(release)
}
