package util

import (
	"strings"
	"unicode"
)

// ExtractHashtags 提取文本中的话题标签（以 # 开头的词），保留出现顺序并去重
// text: 待解析的文本
// 返回值: 不含 # 前缀的标签列表
func ExtractHashtags(text string) []string {
	var tags []string
	seen := make(map[string]bool)

	for _, word := range strings.FieldsFunc(text, unicode.IsSpace) {
		// 同一个词里可能连写多个标签，例如 "#sunny#beach"
		for _, part := range strings.Split(word, "#")[1:] {
			tag := trimHashtag(part)
			if tag == "" {
				continue
			}
			key := strings.ToLower(tag)
			if !seen[key] {
				seen[key] = true
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// trimHashtag 去掉标签尾部的标点符号
func trimHashtag(s string) string {
	return strings.TrimRightFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}
