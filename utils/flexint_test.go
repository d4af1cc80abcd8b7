package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexIntUnmarshal(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
	}{
		{`5`, 5},
		{`"5"`, 5},
		{`" 12 "`, 12},
		{`2.0`, 2},
		{`-3`, -3},
		{`1.5`, 0},
		{`"abc"`, 0},
		{`""`, 0},
		{`null`, 0},
		{`true`, 0},
		{`{}`, 0},
		{`[1]`, 0},
		{`1e20`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var payload struct {
				N FlexInt `json:"n"`
			}
			require.NoError(t, json.Unmarshal([]byte(`{"n":`+tt.raw+`}`), &payload))
			assert.Equal(t, tt.want, payload.N.Int())
		})
	}
}

func TestFlexIntMissingFieldIsZero(t *testing.T) {
	var payload struct {
		N FlexInt `json:"n"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &payload))
	assert.Zero(t, payload.N.Int())
}
