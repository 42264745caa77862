package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringOrNil(t *testing.T) {
	tests := []struct {
		in   string
		want *string
	}{
		{in: "", want: nil},
		{in: "   \t", want: nil},
		{in: "tt0133093", want: ptr("tt0133093")},
		{in: "  The Matrix ", want: ptr("The Matrix")},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StringOrNil(tt.in), "input %q", tt.in)
	}
}

func ptr(s string) *string { return &s }
