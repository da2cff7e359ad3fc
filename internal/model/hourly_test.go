package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsure24(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []int
		want  HourlyBuckets
	}{
		{name: "empty is all zeros", input: nil, want: HourlyBuckets{}},
		{name: "short is zero-padded", input: []int{5}, want: HourlyBuckets{5}},
		{
			name: "long is truncated to 24",
			input: []int{
				1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12,
				13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24,
				99, 99, 99, 99, 99, 99,
			},
			want: HourlyBuckets{
				1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12,
				13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Ensure24(tt.input))
		})
	}
}

func TestHourlyBuckets_UnmarshalNormalizes(t *testing.T) {
	t.Parallel()

	var b HourlyBuckets
	require.NoError(t, json.Unmarshal([]byte(`[7, 8]`), &b))
	assert.Equal(t, 7, b[0])
	assert.Equal(t, 8, b[1])
	assert.Equal(t, 15, b.Sum())
}

func TestHourlyBuckets_PeakHourEarliestWinsTies(t *testing.T) {
	t.Parallel()

	var b HourlyBuckets
	b[4] = 10
	b[9] = 10
	b[15] = 3

	hour, count := b.PeakHour()
	assert.Equal(t, 4, hour)
	assert.Equal(t, 10, count)
}
