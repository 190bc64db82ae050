package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"no tags", "an ordinary day", nil},
		{"single tag", "Great day! #sunny", []string{"sunny"}},
		{"multiple tags", "#beach walk with #friends", []string{"beach", "friends"}},
		{"joined tags", "vacation #sunny#beach", []string{"sunny", "beach"}},
		{"trailing punctuation", "tired. #monday!", []string{"monday"}},
		{"duplicate tags", "#rain again #rain", []string{"rain"}},
		{"bare hash", "just a # sign", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractHashtags(tt.text))
		})
	}
}
