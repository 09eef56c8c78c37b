package logutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateForLog(t *testing.T) {
	t.Run("short strings pass through", func(t *testing.T) {
		assert.Equal(t, "hello", TruncateForLog("hello", 10))
		assert.Equal(t, "hello", TruncateForLog("hello", 5))
	})

	t.Run("long strings are cut with marker", func(t *testing.T) {
		assert.Equal(t, "i dreamt ...", TruncateForLog("i dreamt about the ocean again", 9))
	})

	t.Run("non-positive max yields marker only", func(t *testing.T) {
		assert.Equal(t, "...", TruncateForLog("anything", 0))
		assert.Equal(t, "...", TruncateForLog("anything", -1))
	})

	t.Run("empty string", func(t *testing.T) {
		assert.Equal(t, "", TruncateForLog("", 10))
	})
}
