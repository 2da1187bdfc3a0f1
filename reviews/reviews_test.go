package reviews

import (
	"testing"

	"ukulima/models"

	"github.com/stretchr/testify/assert"
)

func TestAverage(t *testing.T) {
	tests := []struct {
		name      string
		ratings   []int
		wantAvg   float64
		wantCount int
	}{
		{"empty", nil, 0, 0},
		{"single", []int{4}, 4, 1},
		{"mixed", []int{5, 3, 4}, 4, 3},
		{"fractional", []int{5, 4}, 4.5, 2},
		{"all minimum", []int{1, 1, 1}, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviews := make([]models.Review, len(tt.ratings))
			for i, r := range tt.ratings {
				reviews[i] = models.Review{Rating: r}
			}
			avg, count := Average(reviews)
			assert.Equal(t, tt.wantAvg, avg)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}
