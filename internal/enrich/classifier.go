// Package enrich 实现条目情感富集管道
package enrich

import (
	"context"
	"errors"
	"strings"

	"github.com/haierkeys/lifeframe-journal-service/internal/domain"
)

// ErrClassifierUnavailable 分类模型不可用
var ErrClassifierUnavailable = errors.New("sentiment classifier unavailable")

// Classifier 情感分类器接口
// 输出作为不透明标签透传，管道不约束取值范围
type Classifier interface {
	Classify(ctx context.Context, text string) (domain.Sentiment, error)
}

// LexiconClassifier 内置的词表打分分类器
// 占住黑盒模型的位置，可通过 App 容器替换
type LexiconClassifier struct {
	positive map[string]struct{}
	negative map[string]struct{}
}

var positiveWords = []string{
	"good", "great", "happy", "love", "loved", "wonderful", "amazing",
	"fun", "beautiful", "excited", "awesome", "perfect", "relaxed",
	"grateful", "proud", "enjoyed", "laughed", "smile", "sunny",
	"😀", "😄", "😊", "🥰", "❤️", "🎉",
}

var negativeWords = []string{
	"bad", "sad", "angry", "hate", "hated", "terrible", "awful",
	"tired", "stressed", "anxious", "lonely", "sick", "pain",
	"cried", "worried", "exhausted", "failed", "rainy",
	"😞", "😢", "😭", "😡", "💔",
}

func NewLexiconClassifier() *LexiconClassifier {
	c := &LexiconClassifier{
		positive: make(map[string]struct{}, len(positiveWords)),
		negative: make(map[string]struct{}, len(negativeWords)),
	}
	for _, w := range positiveWords {
		c.positive[w] = struct{}{}
	}
	for _, w := range negativeWords {
		c.negative[w] = struct{}{}
	}
	return c
}

// Classify 按词表命中数打分：正减负，大于零为 positive，小于零为 negative
func (c *LexiconClassifier) Classify(ctx context.Context, text string) (domain.Sentiment, error) {
	if err := ctx.Err(); err != nil {
		return domain.SentimentUnset, err
	}

	score := 0
	for _, word := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r == ' ' || r == '\n' || r == '\t' || r == ',' || r == '.' || r == '!' || r == '?'
	}) {
		if _, ok := c.positive[word]; ok {
			score++
		}
		if _, ok := c.negative[word]; ok {
			score--
		}
	}

	switch {
	case score > 0:
		return domain.SentimentPositive, nil
	case score < 0:
		return domain.SentimentNegative, nil
	default:
		return domain.SentimentNeutral, nil
	}
}
