package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Corner Cafe", "corner-cafe"},
		{"  Trimmed  Name  ", "trimmed-name"},
		{"Joe's Bar & Grill", "joe-s-bar-grill"},
		{"ALL CAPS", "all-caps"},
		{"dash--heavy---name", "dash-heavy-name"},
		{"Route 66 Diner", "route-66-diner"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "input %q", tt.in)
	}
}