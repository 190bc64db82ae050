package enrich

import (
	"context"
	"errors"
	"time"

	"github.com/haierkeys/lifeframe-journal-service/internal/domain"
	"github.com/haierkeys/lifeframe-journal-service/pkg/util"
	"github.com/haierkeys/lifeframe-journal-service/pkg/workerpool"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// Config 富集管道配置
type Config struct {
	CacheSize   int           // 分类结果缓存容量
	TaskTimeout time.Duration // 单次分类任务超时
}

// Pipeline 情感富集管道
// 条目创建后调度一次异步分类；落盘前重新确认条目仍然存在且仍为 pending，
// 条目在分类期间被删除时结果静默丢弃
type Pipeline struct {
	classifier Classifier
	itemRepo   domain.ItemRepository
	pool       *workerpool.Pool
	cache      *lru.Cache[string, domain.Sentiment]
	logger     *zap.Logger
	timeout    time.Duration
}

func NewPipeline(classifier Classifier, itemRepo domain.ItemRepository,
	pool *workerpool.Pool, logger *zap.Logger, cfg Config) (*Pipeline, error) {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 512
	}
	if cfg.TaskTimeout <= 0 {
		cfg.TaskTimeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cache, err := lru.New[string, domain.Sentiment](cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		classifier: classifier,
		itemRepo:   itemRepo,
		pool:       pool,
		cache:      cache,
		logger:     logger,
		timeout:    cfg.TaskTimeout,
	}, nil
}

// Enqueue 调度一次异步分类，立即返回
func (p *Pipeline) Enqueue(item *domain.Item) {
	itemID := item.ID
	text := item.Text

	err := p.pool.SubmitAsync(context.Background(), func(ctx context.Context) error {
		p.process(ctx, itemID, text)
		return nil
	})
	if err != nil {
		// 调度失败时直接落为 unavailable，条目不会停留在 pending
		p.logger.Warn("enrichment submit failed", zap.String("itemId", itemID), zap.Error(err))
		p.markUnavailable(itemID)
	}
}

func (p *Pipeline) process(ctx context.Context, itemID string, text string) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	label, err := p.classify(ctx, text)
	if err != nil {
		p.logger.Warn("sentiment classification failed",
			zap.String("itemId", itemID), zap.Error(err))
		p.markUnavailable(itemID)
		return
	}

	// 分类完成后重新确认条目是否仍然存在
	current, err := p.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// 条目已在分类期间被删除，结果静默丢弃
			p.logger.Debug("item vanished during classification", zap.String("itemId", itemID))
			return
		}
		p.logger.Warn("enrichment recheck failed", zap.String("itemId", itemID), zap.Error(err))
		return
	}
	if !current.Sentiment.IsPending() {
		return
	}

	if err := p.itemRepo.UpdateSentiment(ctx, itemID, label); err != nil &&
		!errors.Is(err, domain.ErrNotFound) {
		p.logger.Warn("persist sentiment failed", zap.String("itemId", itemID), zap.Error(err))
	}
}

// classify 带 LRU 缓存的分类：相同文本每进程只分类一次
func (p *Pipeline) classify(ctx context.Context, text string) (domain.Sentiment, error) {
	key := util.EncodeMD5(text)
	if label, ok := p.cache.Get(key); ok {
		return label, nil
	}

	label, err := p.classifier.Classify(ctx, text)
	if err != nil {
		return domain.SentimentUnset, err
	}

	p.cache.Add(key, label)
	return label, nil
}

// markUnavailable 把仍在 pending 的条目落为 unavailable 终态
func (p *Pipeline) markUnavailable(itemID string) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	current, err := p.itemRepo.GetByID(ctx, itemID)
	if err != nil || !current.Sentiment.IsPending() {
		return
	}
	if err := p.itemRepo.UpdateSentiment(ctx, itemID, domain.SentimentUnavailable); err != nil &&
		!errors.Is(err, domain.ErrNotFound) {
		p.logger.Warn("mark sentiment unavailable failed", zap.String("itemId", itemID), zap.Error(err))
	}
}
