package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Dogs", "dogs"},
		{"Hot Dogs & Cats", "hot-dogs-cats"},
		{"Crème Brûlée", "creme-brulee"},
		{"  spaced  out  ", "spaced-out"},
		{"snake_case", "snake_case"},
		{"C++", "c"},
		{"2012", "2012"},
		{"--dashes--", "dashes"},
		{"日本語", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.in))
		})
	}
}
