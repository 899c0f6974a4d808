package menu_test

import (
	"testing"

	"github.com/Shmhzr/ai-voice/internal/core/domain/model/menu"

	"github.com/stretchr/testify/assert"
)

func TestSizeKeyCandidates(t *testing.T) {
	tests := []struct {
		name string
		size string
		want []string
	}{
		{"blank", "", []string{"default", "regular"}},
		{"standard lowercase", "large", []string{"large", "Large", "LARGE", "regular", "default"}},
		{"standard mixed case", "mEdium", []string{"mEdium", "medium", "Medium", "MEDIUM", "regular", "default"}},
		{"custom size", "extra large", []string{"extra large", "Extra large", "Extra Large", "EXTRA LARGE", "default", "regular"}},
		{"already generic", "default", []string{"default", "Default", "DEFAULT", "regular"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, menu.SizeKeyCandidates(tt.size))
		})
	}
}
