package providers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want Text
	}{
		{in: `"BA 178"`, want: "BA 178"},
		{in: `123`, want: "123"},
		{in: `1.5`, want: "1.5"},
		{in: `true`, want: "true"},
		{in: `null`, want: ""},
		{in: `{"name": "x"}`, want: ""},
		{in: `["a"]`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var got Text
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTextList_UnmarshalJSON(t *testing.T) {
	var got TextList
	require.NoError(t, json.Unmarshal([]byte(`["Wi-Fi", 2, null, {"a": 1}, false]`), &got))
	assert.Equal(t, TextList{"Wi-Fi", "2", "false"}, got)

	require.NoError(t, json.Unmarshal([]byte(`"Wi-Fi"`), &got))
	assert.Nil(t, got)
}

func TestEntries_DropsOnlyBrokenElements(t *testing.T) {
	var got Entries[RawLayover]
	require.NoError(t, json.Unmarshal([]byte(`[{"name": "Keflavik", "id": "KEF"}, "oops", {"name": 5}]`), &got))
	require.Len(t, got, 2)
	assert.EqualValues(t, "KEF", got[0].ID)
	assert.EqualValues(t, "5", got[1].Name)

	require.NoError(t, json.Unmarshal([]byte(`{"not": "a list"}`), &got))
	assert.Empty(t, got)
}
