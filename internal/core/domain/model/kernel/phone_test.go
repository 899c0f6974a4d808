package kernel_test

import (
	"testing"

	"github.com/Shmhzr/ai-voice/internal/core/domain/model/kernel"
	"github.com/Shmhzr/ai-voice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"plus with spaces", "+1 (415) 555-2671", "+14155552671", true},
		{"bare digits", "415-555-2671", "+4155552671", true},
		{"seven digits", "5552671", "+5552671", true},
		{"fifteen digits", "123456789012345", "+123456789012345", true},
		{"too short", "55526", "", false},
		{"too long", "1234567890123456", "", false},
		{"plus too short", "+12345", "", false},
		{"blank", "   ", "", false},
		{"letters only", "call me", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := kernel.NormalizePhone(tt.input)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, p.String())
		})
	}
}

func TestNewPhone(t *testing.T) {
	p, err := kernel.NewPhone("+44 20 7946 0958")
	require.NoError(t, err)
	assert.Equal(t, "+442079460958", p.String())
	assert.False(t, p.IsZero())

	_, err = kernel.NewPhone("12")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
