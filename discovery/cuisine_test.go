package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCuisineLabel(t *testing.T) {
	tests := []struct {
		name  string
		types []string
		want  string
	}{
		{
			name:  "specific type wins",
			types: []string{"point_of_interest", "sushi_restaurant", "restaurant"},
			want:  "Sushi Restaurant",
		},
		{
			name:  "multi word type",
			types: []string{"latin_american_restaurant"},
			want:  "Latin American Restaurant",
		},
		{
			name:  "unknown restaurant type still labels",
			types: []string{"establishment", "ethiopian_restaurant"},
			want:  "Ethiopian Restaurant",
		},
		{
			name:  "generic types fall back",
			types: []string{"restaurant", "food", "point_of_interest", "establishment"},
			want:  "Restaurant",
		},
		{
			name:  "no types",
			types: nil,
			want:  "Restaurant",
		},
		{
			name:  "cafe",
			types: []string{"cafe", "food"},
			want:  "Cafe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CuisineLabel(tt.types))
		})
	}
}
