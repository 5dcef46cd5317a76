package reviews

import (
	"reflect"
	"testing"

	"github.com/aryanpatel3011/localseva_be/internal/models"
)

func ratings(values ...int) []models.Review {
	out := make([]models.Review, 0, len(values))
	for _, v := range values {
		out = append(out, models.Review{Rating: v})
	}
	return out
}

func TestComputeAggregate(t *testing.T) {
	tests := []struct {
		name string
		in   []models.Review
		want Aggregate
	}{
		{
			name: "empty",
			in:   nil,
			want: Aggregate{Average: 0, Count: 0},
		},
		{
			name: "single review",
			in:   ratings(3),
			want: Aggregate{Average: 3, Count: 1},
		},
		{
			name: "five and four",
			in:   ratings(5, 4),
			want: Aggregate{Average: 4.5, Count: 2},
		},
		{
			name: "repeating third rounds down",
			in:   ratings(4, 4, 5),
			want: Aggregate{Average: 4.3, Count: 3},
		},
		{
			name: "repeating two thirds rounds up",
			in:   ratings(4, 5, 5),
			want: Aggregate{Average: 4.7, Count: 3},
		},
		{
			name: "exact half rounds up",
			in:   ratings(4, 4, 4, 5), // 4.25 -> 4.3
			want: Aggregate{Average: 4.3, Count: 4},
		},
		{
			name: "all ones",
			in:   ratings(1, 1, 1),
			want: Aggregate{Average: 1, Count: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeAggregate(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ComputeAggregate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeAggregateIdempotent(t *testing.T) {
	in := ratings(5, 4, 3, 2)

	first := ComputeAggregate(in)
	second := ComputeAggregate(in)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("recomputation changed the result: %+v vs %+v", first, second)
	}
}
