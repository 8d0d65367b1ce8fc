package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONRaw_ValueAndScan(t *testing.T) {
	doc := JSONRaw(`{"a":1}`)

	v, err := doc.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), v)

	var scanned JSONRaw
	require.NoError(t, scanned.Scan([]byte(`{"b":2}`)))
	assert.Equal(t, JSONRaw(`{"b":2}`), scanned)

	require.NoError(t, scanned.Scan("from-string"))
	assert.Equal(t, JSONRaw("from-string"), scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned)

	assert.Error(t, scanned.Scan(42))
}

func TestJSONRaw_EmptyValueIsNull(t *testing.T) {
	var empty JSONRaw
	v, err := empty.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	data, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestJSONRaw_PassesDocumentThrough(t *testing.T) {
	type wrapper struct {
		Payload JSONRaw `json:"payload"`
	}

	in := wrapper{Payload: JSONRaw(`{"nested":{"x":1}}`)}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out wrapper
	require.NoError(t, json.Unmarshal(data, &out))
	assert.JSONEq(t, string(in.Payload), string(out.Payload))
}
