package airports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaticResolver_Resolve(t *testing.T) {
	r := NewStaticResolver()

	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "jfk", want: "JFK", wantOK: true},
		{in: " LIS ", want: "LIS", wantOK: true},
		{in: "Lisbon", want: "LIS", wantOK: true},
		{in: "New  York, NY", want: "JFK", wantOK: true},
		{in: "new york", want: "JFK", wantOK: true},
		{in: "Hong Kong", want: "HKG", wantOK: true},
		{in: "Atlantis", wantOK: false},
		{in: "", wantOK: false},
		{in: "L4X", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := r.Resolve(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestStaticResolver_WithPlaces(t *testing.T) {
	base := NewStaticResolver()
	r := base.WithPlaces(map[string]string{"Porto": "opo"})

	code, ok := r.Resolve("porto")
	assert.True(t, ok)
	assert.Equal(t, "OPO", code)

	_, ok = base.Resolve("porto")
	assert.False(t, ok)

	code, ok = r.Resolve("London")
	assert.True(t, ok)
	assert.Equal(t, "LHR", code)
}
