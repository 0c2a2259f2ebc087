package fields

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingMarshal(t *testing.T) {
	cases := []struct {
		rating Rating
		want   string
	}{
		{8, "8.0"},
		{7.5, "7.5"},
		{10, "10.0"},
	}
	for _, tc := range cases {
		b, err := json.Marshal(tc.rating)
		require.NoError(t, err)
		assert.Equal(t, tc.want, string(b))
	}
}

func TestNilRatingMarshalsAsNull(t *testing.T) {
	var payload struct {
		Rating *Rating `json:"rating"`
	}
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"rating": null}`, string(b))
}
