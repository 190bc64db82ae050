package domain

// Sentiment 条目的情感标签
// 分类器输出按不透明标签透传，除内置常量外允许任意取值
type Sentiment string

const (
	// SentimentUnset 纯媒体条目之外不应出现的零值
	SentimentUnset Sentiment = ""
	// SentimentPending 已创建、等待异步分类
	SentimentPending Sentiment = "pending"
	// SentimentNeutral 纯媒体条目的固定标签
	SentimentNeutral Sentiment = "neutral"
	// SentimentPositive 分类器正向标签
	SentimentPositive Sentiment = "positive"
	// SentimentNegative 分类器负向标签
	SentimentNegative Sentiment = "negative"
	// SentimentUnavailable 分类器不可用或分类失败的终态
	SentimentUnavailable Sentiment = "unavailable"
)

// IsPending 判断是否仍在等待分类
func (s Sentiment) IsPending() bool {
	return s == SentimentPending
}
