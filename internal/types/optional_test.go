package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalStringTriState(t *testing.T) {
	type payload struct {
		Date OptionalString `json:"date"`
	}

	var omitted payload
	require.NoError(t, json.Unmarshal([]byte(`{}`), &omitted))
	assert.False(t, omitted.Date.Set)

	var null payload
	require.NoError(t, json.Unmarshal([]byte(`{"date":null}`), &null))
	assert.True(t, null.Date.Set)
	assert.Nil(t, null.Date.Value)

	var value payload
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-01-10"}`), &value))
	assert.True(t, value.Date.Set)
	require.NotNil(t, value.Date.Value)
	assert.Equal(t, "2024-01-10", *value.Date.Value)
}
