package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessResponseShape(t *testing.T) {
	resp := SuccessResponse(map[string]string{"k": "v"}, "done")

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, true, decoded["success"])
	assert.Equal(t, "done", decoded["message"])
	assert.NotContains(t, decoded, "errorCode")
}

func TestErrorResponseShape(t *testing.T) {
	resp := ErrorResponse("FileName is required", "INVALID_REQUEST")

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, false, decoded["success"])
	assert.Nil(t, decoded["data"])
	assert.Equal(t, "FileName is required", decoded["message"])
	assert.Equal(t, "INVALID_REQUEST", decoded["errorCode"])
}
