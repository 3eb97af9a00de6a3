package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDescriptionPrompt(t *testing.T) {
	full := buildDescriptionPrompt(DescriptionInput{
		Name:     "Flat White",
		Category: "Corner Cafe",
		Tags:     []string{"coffee", "pastry"},
		Notes:    "family owned since 1982",
	})
	assert.Equal(t,
		"Name: Flat White\nCategory: Corner Cafe\nTags: coffee, pastry\nNotes: family owned since 1982\nWrite the description now.",
		full)

	minimal := buildDescriptionPrompt(DescriptionInput{Name: "Flat White"})
	assert.Equal(t, "Name: Flat White\nWrite the description now.", minimal)
	assert.NotContains(t, minimal, "Category:")
	assert.NotContains(t, minimal, "Tags:")
}