package content

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "no trailing newline", input: "a\nb", expected: []string{"a", "b"}},
		{name: "trailing newline", input: "a\nb\n", expected: []string{"a", "b"}},
		{name: "crlf", input: "a\r\nb\r\n", expected: []string{"a", "b"}},
		{name: "blank lines kept", input: "a\n\nb", expected: []string{"a", "", "b"}},
		{name: "lone carriage return", input: "a\rb", expected: []string{"a\rb"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitLines(tt.input))
		})
	}
}

func TestTailLines(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 75; i++ {
		fmt.Fprintf(&b, "%d\n", i)
	}
	text := b.String()
	all := SplitLines(text)

	t.Run("longer than n keeps exactly the last n in order", func(t *testing.T) {
		for _, n := range []int{1, 50, 60, 74} {
			got := TailLines(text, n)
			assert.Len(t, got, n)
			assert.Equal(t, all[len(all)-n:], got)
		}
	})

	t.Run("n or fewer lines returned whole", func(t *testing.T) {
		assert.Equal(t, all, TailLines(text, 75))
		assert.Equal(t, all, TailLines(text, 500))
	})

	t.Run("non-positive n disables the cap", func(t *testing.T) {
		assert.Equal(t, all, TailLines(text, 0))
		assert.Equal(t, all, TailLines(text, -1))
	})
}

func TestIsBinaryContent(t *testing.T) {
	assert.False(t, IsBinaryContent([]byte("plain text\n")))
	assert.True(t, IsBinaryContent([]byte{'a', 0x00, 'b'}))
	assert.False(t, IsBinaryContent([]byte{0xFF, 0xFE, 'a', 0x00}))
	assert.False(t, IsBinaryContent(nil))
}
