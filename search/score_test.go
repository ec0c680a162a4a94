package search

import (
	"testing"

	"github.com/poiesic/snipstash/core"
	"github.com/stretchr/testify/assert"
)

func TestScore_ExactMatch(t *testing.T) {
	assert.Equal(t, 100.0, Score("hello", "hello"))
	assert.Equal(t, 100.0, Score("Hello World", "hello world"))
}

func TestScore_EmptyInputs(t *testing.T) {
	assert.Equal(t, 0.0, Score("", "hello"))
	assert.Equal(t, 0.0, Score("hello", ""))
	assert.Equal(t, 0.0, Score("", ""))
}

func TestScore_Containment(t *testing.T) {
	// 80 plus the contained fraction of the text, scaled to 20.
	assert.InDelta(t, 86.67, Score("hello", "say hello there"), 0.01)
	assert.InDelta(t, 92.73, Score("hello w", "hello world"), 0.01)
	assert.InDelta(t, 81.82, Score("h", "hello world"), 0.01)
}

func TestScore_ContainmentBeatsLongerText(t *testing.T) {
	// The same query contained in a shorter text scores higher.
	short := Score("fib", "fib fast")
	long := Score("fib", "fibonacci sequence generator")
	assert.Greater(t, short, long)
	assert.GreaterOrEqual(t, long, 80.0)
}

func TestScore_AllWordsMatched(t *testing.T) {
	// Word order does not matter once every query word finds a home.
	assert.Equal(t, 80.0, Score("world hello", "hello big world"))
	assert.Equal(t, 80.0, Score("list sort", "sort a linked list"))
}

func TestScore_SimilarityFallback(t *testing.T) {
	assert.InDelta(t, 30.77, Score("kitten", "sitting"), 0.01)
	assert.InDelta(t, 17.24, Score("nonexistent", "fibonacci sequence"), 0.01)
	assert.Equal(t, 0.0, Score("abcdef", "xyzuvw"))
}

func TestScore_WhitespaceQuery(t *testing.T) {
	assert.Equal(t, 0.0, Score("   ", "hello"))
}

func TestScore_BandsAreOrdered(t *testing.T) {
	exact := Score("hello world", "hello world")
	contained := Score("hello", "say hello there")
	words := Score("world hello", "hello big world")
	fallback := Score("kitten", "sitting")

	assert.Greater(t, exact, contained)
	assert.Greater(t, contained, words)
	assert.Greater(t, words, fallback)
}

func TestCompositeScore_TitleDominates(t *testing.T) {
	snippet := &core.Snippet{
		Title:       "Fibonacci Sequence",
		Code:        "def fib(n):\n    if n <= 1:\n        return n\n    return fib(n-1) + fib(n-2)",
		Tags:        []string{"math", "recursion"},
		Description: "Classic recursive Fibonacci",
	}
	assert.InDelta(t, 83.33, CompositeScore("fib", snippet), 0.01)
}

func TestCompositeScore_TagMatch(t *testing.T) {
	snippet := &core.Snippet{
		Title:       "Shuffle List",
		Code:        "import random\nrandom.shuffle(xs)",
		Tags:        []string{"utility", "random"},
		Description: "In-place shuffle",
	}
	// Exact tag match at tag weight outscores the weak title match.
	assert.InDelta(t, 80.0, CompositeScore("utility", snippet), 0.01)
}

func TestCompositeScore_CodeMatchIsHalved(t *testing.T) {
	snippet := &core.Snippet{
		Title:       "Alpha",
		Code:        "grep -rn pattern .",
		Tags:        []string{"misc"},
		Description: "none",
	}
	assert.InDelta(t, 50.0, CompositeScore("grep -rn pattern .", snippet), 0.01)
}

func TestCompositeScore_BestFieldWins(t *testing.T) {
	snippet := &core.Snippet{
		Title: "Hello World",
		Code:  "print('Hello, World!')",
		Tags:  []string{"demo"},
	}
	// Exact title match; weighted code and tag scores cannot raise it.
	assert.Equal(t, 100.0, CompositeScore("hello world", snippet))
}
