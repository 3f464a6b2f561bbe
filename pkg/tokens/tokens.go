// Package tokens estimates how many model tokens a piece of serialized text
// will consume. The estimate labels output size for display only; it does not
// match any particular tokenizer and must not drive truncation decisions.
package tokens

import (
	"math"
	"regexp"
	"strings"
)

const (
	wordWeight    = 1.3
	specialWeight = 0.3
	numberWeight  = 0.5
)

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Estimate returns max(1, round(words*1.3 + specials*0.3 + numbers*0.5)),
// where words are whitespace-delimited runs, specials are the JSON structural
// characters { } [ ] " , : and numbers are digit runs with an optional
// fractional part. The empty string estimates to 0.
func Estimate(text string) int {
	if text == "" {
		return 0
	}

	words := len(strings.Fields(text))
	specials := countSpecial(text)
	numbers := len(numberPattern.FindAllStringIndex(text, -1))

	estimate := int(math.Round(float64(words)*wordWeight + float64(specials)*specialWeight + float64(numbers)*numberWeight))
	return max(1, estimate)
}

func countSpecial(text string) int {
	n := 0
	for _, r := range text {
		switch r {
		case '{', '}', '[', ']', '"', ',', ':':
			n++
		}
	}
	return n
}
