package signal_test

import (
	"encoding/json"
	"math"
	"testing"

	"codeberg.org/mutker/hwprint/internal/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueMarshal(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"missing int", signal.Missing[int](), `"unknown"`},
		{"known int", signal.Known(8), `8`},
		{"known bool false", signal.Known(false), `false`},
		{"known string", signal.Known("ANGLE"), `"ANGLE"`},
		{"fractional float", signal.Known(0.5), `0.5`},
		{"positive infinity", signal.Known(math.Inf(1)), `"Infinity"`},
		{"nan", signal.Known(math.NaN()), `"unknown"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestValueUnmarshal(t *testing.T) {
	var cores signal.Value[int]
	require.NoError(t, json.Unmarshal([]byte(`"unknown"`), &cores))
	assert.False(t, cores.IsKnown())

	require.NoError(t, json.Unmarshal([]byte(`null`), &cores))
	assert.False(t, cores.IsKnown())

	require.NoError(t, json.Unmarshal([]byte(`12`), &cores))
	assert.Equal(t, 12, cores.Or(0))

	var seconds signal.Value[float64]
	require.NoError(t, json.Unmarshal([]byte(`"Infinity"`), &seconds))
	got, ok := seconds.Get()
	assert.True(t, ok)
	assert.True(t, math.IsInf(got, 1))

	assert.Error(t, json.Unmarshal([]byte(`"eight"`), &cores))
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "unknown", signal.Missing[string]().String())
	assert.Equal(t, "4", signal.Known(4).String())
	assert.Equal(t, "0.25", signal.Known(0.25).String())
	assert.Equal(t, "Infinity", signal.Known(math.Inf(1)).String())
}

func TestFromPtr(t *testing.T) {
	assert.False(t, signal.FromPtr[int](nil).IsKnown())

	n := 2
	assert.Equal(t, 2, signal.FromPtr(&n).Or(0))
}
