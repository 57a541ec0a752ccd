package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackJokeIsNonEmpty(t *testing.T) {
	for i := 0; i < 20; i++ {
		joke := fallbackJoke()
		assert.NotEmpty(t, joke)
		// Subject, action, twist, closer.
		assert.GreaterOrEqual(t, len(strings.Fields(joke)), 4)
	}
}

func TestFallbackJokeVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[fallbackJoke()] = true
	}
	assert.Greater(t, len(seen), 1)
}
