package diff

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinesIdenticalContent(t *testing.T) {
	t.Parallel()

	content := []byte("{\n  \"pass\": 1\n}\n")
	assert.Empty(t, Lines(content, content, "golden.json", "layout"))
}

func TestLinesSingleChange(t *testing.T) {
	t.Parallel()

	expected := []byte("{\n  \"top\": 0,\n  \"left\": 5\n}\n")
	actual := []byte("{\n  \"top\": 0,\n  \"left\": 165\n}\n")

	out := Lines(expected, actual, "golden.json", "layout")
	assert.Contains(t, out, "--- golden.json\n+++ layout\n")
	assert.Contains(t, out, "@@ -1,4 +1,4 @@")
	assert.Contains(t, out, "-  \"left\": 5\n")
	assert.Contains(t, out, "+  \"left\": 165\n")
	assert.Contains(t, out, "   \"top\": 0,\n")
}

func TestLinesEmptySides(t *testing.T) {
	t.Parallel()

	out := Lines(nil, []byte("a\nb\n"), "before", "after")
	assert.Contains(t, out, "@@ -1,0 +1,2 @@")
	assert.Contains(t, out, "+a\n+b\n")

	out = Lines([]byte("a\n"), nil, "before", "after")
	assert.Contains(t, out, "-a\n")
}

func TestLinesTruncates(t *testing.T) {
	t.Parallel()

	var a, b strings.Builder
	for i := 0; i < maxDiffLines; i++ {
		fmt.Fprintf(&a, "a%d\n", i)
		fmt.Fprintf(&b, "b%d\n", i)
	}

	out := Lines([]byte(a.String()), []byte(b.String()), "x", "y")
	assert.True(t, strings.HasSuffix(out, truncateMessage+"\n"))
	assert.Equal(t, maxDiffLines+1, strings.Count(out, "\n"))
}
