package port

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageNormalize(t *testing.T) {
	tests := []struct {
		name   string
		in     Page
		want   Page
		offset int
	}{
		{"zero value", Page{}, Page{Number: 1, Limit: DefaultPageLimit}, 0},
		{"negative", Page{Number: -3, Limit: -1}, Page{Number: 1, Limit: DefaultPageLimit}, 0},
		{"limit clamped", Page{Number: 3, Limit: 500}, Page{Number: 3, Limit: MaxPageLimit}, 200},
		{"huge page", Page{Number: math.MaxInt64/10 + 2, Limit: 10}, Page{Number: MaxPageNumber, Limit: 10}, (MaxPageNumber - 1) * 10},
		{"max int page", Page{Number: math.MaxInt, Limit: MaxPageLimit}, Page{Number: MaxPageNumber, Limit: MaxPageLimit}, (MaxPageNumber - 1) * MaxPageLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.offset, got.Offset())
			assert.GreaterOrEqual(t, got.Offset(), 0)
		})
	}
}
