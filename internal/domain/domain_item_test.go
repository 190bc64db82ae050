package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateMediaArity(t *testing.T) {
	tests := []struct {
		name    string
		t       ItemType
		count   int
		wantErr error
	}{
		{"text no media", ItemTypeText, 0, nil},
		{"text with media", ItemTypeText, 1, ErrTooManyAttachments},
		{"photo one", ItemTypePhoto, 1, nil},
		{"photo three", ItemTypePhoto, 3, nil},
		{"photo four", ItemTypePhoto, 4, ErrTooManyAttachments},
		{"photo zero", ItemTypePhoto, 0, ErrTooManyAttachments},
		{"textWithPhoto three", ItemTypeTextWithPhoto, 3, nil},
		{"textWithPhoto four", ItemTypeTextWithPhoto, 4, ErrTooManyAttachments},
		{"audio one", ItemTypeAudio, 1, nil},
		{"audio two", ItemTypeAudio, 2, ErrTooManyAttachments},
		{"audio zero", ItemTypeAudio, 0, ErrTooManyAttachments},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMediaArity(tt.t, tt.count)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestItem_IsEditable(t *testing.T) {
	assert.True(t, (&Item{Type: ItemTypeText}).IsEditable())
	assert.False(t, (&Item{Type: ItemTypePhoto}).IsEditable())
	assert.False(t, (&Item{Type: ItemTypeTextWithPhoto}).IsEditable())
	assert.False(t, (&Item{Type: ItemTypeAudio}).IsEditable())
}

func TestItem_HasText(t *testing.T) {
	assert.True(t, (&Item{Type: ItemTypeText}).HasText())
	assert.True(t, (&Item{Type: ItemTypeTextWithPhoto}).HasText())
	assert.False(t, (&Item{Type: ItemTypePhoto}).HasText())
	assert.False(t, (&Item{Type: ItemTypeAudio}).HasText())
}

func TestChapter_ShouldAutoDelete(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		chapter *Chapter
		want    bool
	}{
		{"empty and not today", &Chapter{DateContent: now.AddDate(0, 0, -3)}, true},
		{"empty and today", &Chapter{DateContent: now}, false},
		{"not empty and not today", &Chapter{DateContent: now.AddDate(0, 0, -3), Items: []*Item{{}}}, false},
		{"not empty and today", &Chapter{DateContent: now, Items: []*Item{{}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.chapter.ShouldAutoDelete(now))
		})
	}
}
