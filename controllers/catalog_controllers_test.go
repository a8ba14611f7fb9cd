package controllers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogMetadata(t *testing.T) {
	cases := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{"", "{}", false},
		{"null", "{}", false},
		{` {"icon":"moon"} `, `{"icon":"moon"}`, false},
		{"{oops", "", true},
		{`{"a":1`, "", true},
		{"[1,2]", "", true},
		{`"{}"`, "", true},
	}

	for _, tc := range cases {
		meta, err := catalogRequest{Metadata: json.RawMessage(tc.raw)}.metadata()
		if tc.wantErr {
			assert.Error(t, err, tc.raw)
			continue
		}
		require.NoError(t, err, tc.raw)
		assert.JSONEq(t, tc.want, string(meta))
	}
}

func TestDurationMinutes(t *testing.T) {
	m, err := durationMinutes(1.5, "hours")
	require.NoError(t, err)
	assert.Equal(t, 90, m)

	m, err = durationMinutes(maxDurationMinutes, "")
	require.NoError(t, err)
	assert.Equal(t, maxDurationMinutes, m)

	_, err = durationMinutes(maxDurationMinutes+1, "minutes")
	assert.Error(t, err)
	_, err = durationMinutes(1e300, "")
	assert.Error(t, err)
	_, err = durationMinutes(-1, "")
	assert.Error(t, err)
}
