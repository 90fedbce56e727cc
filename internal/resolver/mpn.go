package resolver

import (
	"regexp"
	"strings"
)

// fillerWords are tokens that never identify a part: quantity and unit
// nouns, conjunctions, and generic product-type words.
var fillerWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "from": {},
	"pcs": {}, "pc": {}, "piece": {}, "pieces": {}, "set": {}, "kit": {},
	"type": {}, "model": {}, "series": {},
	"resistor": {}, "capacitor": {}, "inductor": {}, "diode": {},
	"transistor": {}, "regulator": {}, "voltage": {}, "current": {},
	"power": {}, "supply": {}, "module": {}, "sensor": {}, "switch": {},
	"connector": {}, "cable": {}, "wire": {}, "board": {}, "screw": {},
	"element": {}, "thermostat": {}, "sheet": {}, "steel": {},
	"heating": {}, "silicone": {}, "stainless": {},
}

var tokenPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._/-]*$`)

var digitPattern = regexp.MustCompile(`[0-9]`)

// ExtractMPN heuristically extracts the most likely manufacturer part
// number token from free text. Tokens carrying a digit dominate over purely
// alphabetic ones; longer tokens win among equals. Returns "" when no
// candidate survives filtering.
func ExtractMPN(text string) string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', ',', ';', ':', '(', ')', '[', ']', '"', '\'':
			return true
		}
		return false
	})

	best := ""
	bestScore := 0
	for _, tok := range fields {
		tok = strings.Trim(tok, ".")
		if len(tok) < 3 {
			continue
		}
		if _, filler := fillerWords[strings.ToLower(tok)]; filler {
			continue
		}
		if !tokenPattern.MatchString(tok) {
			continue
		}
		score := len(tok)
		if digitPattern.MatchString(tok) {
			score += 1000
		}
		if score > bestScore {
			best = tok
			bestScore = score
		}
	}
	return best
}
