package muxer

import (
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// Slab dimensions match what fzf itself allocates per matcher worker.
const (
	fuzzySlab16Size = 100 * 1024
	fuzzySlab32Size = 2048
)

func init() {
	algo.Init("default")
}

// FuzzyResult is the outcome of matching a pattern against one candidate
// line. Score is 0 when the pattern does not match; Positions holds the
// matched rune indices for highlighting.
type FuzzyResult struct {
	Score     int
	Positions []int
}

// NewFuzzySlab allocates scratch space for FuzzyMatch. One slab per matching
// loop; it is reused across calls and is not safe for concurrent use.
func NewFuzzySlab() *util.Slab {
	return util.MakeSlab(fuzzySlab16Size, fuzzySlab32Size)
}

// FuzzyMatch scores pattern against text using fzf's V2 algorithm,
// case-insensitively. An empty pattern matches nothing (callers treat an
// empty query as "show everything" without scoring).
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}
	// The algorithm expects a lowercased pattern in case-insensitive mode;
	// it folds the text side itself.
	lowered := make([]rune, len(pattern))
	for i, r := range pattern {
		lowered[i] = unicode.ToLower(r)
	}
	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, false, true, &chars, lowered, true, slab)
	if result.Score <= 0 {
		return FuzzyResult{}
	}
	out := FuzzyResult{Score: result.Score}
	if positions != nil {
		out.Positions = *positions
	}
	return out
}
