// Package textsim provides the lexical similarity primitive used for ranking
// and a few text helpers shared by the chat and negotiation layers.
package textsim

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

var whitespace = regexp.MustCompile(`\s+`)

// Clean lowercases s, strips ASCII punctuation and collapses whitespace.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		if isASCIIPunct(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

func isASCIIPunct(r rune) bool {
	return (r >= '!' && r <= '/') || (r >= ':' && r <= '@') ||
		(r >= '[' && r <= '`') || (r >= '{' && r <= '~')
}

// Ratio cleans both strings and returns their Ratcliff/Obershelp similarity in
// [0, 1]. Either input being empty yields 0.
func Ratio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	return MatchRatio(Clean(a), Clean(b))
}

// MatchRatio compares a and b character by character without cleaning. Two
// empty strings are identical and score 1.
func MatchRatio(a, b string) float64 {
	return difflib.NewMatcher(chars(a), chars(b)).Ratio()
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$(\d+\.?\d*)`),
	regexp.MustCompile(`(\d+\.?\d*)\s*dollars`),
	regexp.MustCompile(`(\d+\.?\d*)\s*USD`),
}

// ExtractPrice finds the first price mentioned in s, trying "$12.50",
// "12 dollars" and "12 USD" in that order.
func ExtractPrice(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	for _, re := range pricePatterns {
		m := re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return v, true
	}
	return 0, false
}
