package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessageShortTextUnchanged(t *testing.T) {
	parts := SplitMessage("hello", 4096)
	assert.Equal(t, []string{"hello"}, parts)
}

func TestSplitMessageRespectsLimit(t *testing.T) {
	text := strings.Repeat("a", 250)
	parts := SplitMessage(text, 100)

	require.Len(t, parts, 3)
	for _, p := range parts {
		assert.LessOrEqual(t, len([]rune(p)), 100)
	}
	assert.Equal(t, text, strings.Join(parts, ""))
}

func TestSplitMessageMultibyte(t *testing.T) {
	text := strings.Repeat("😊", 99) + "\n" + strings.Repeat("a", 5)

	var parts []string
	require.NotPanics(t, func() { parts = SplitMessage(text, 100) })

	require.Len(t, parts, 2)
	assert.Equal(t, strings.Repeat("😊", 99)+"\n", parts[0])
	assert.Equal(t, "aaaaa", parts[1])
	for _, p := range parts {
		assert.LessOrEqual(t, utf8.RuneCountInString(p), 100)
	}
	assert.Equal(t, text, strings.Join(parts, ""))
}

func TestSplitMessagePrefersNewlines(t *testing.T) {
	text := strings.Repeat("x", 80) + "\n" + strings.Repeat("y", 80)
	parts := SplitMessage(text, 100)

	require.Len(t, parts, 2)
	assert.True(t, strings.HasSuffix(parts[0], "\n"))
	assert.Equal(t, strings.Repeat("y", 80), parts[1])
}
