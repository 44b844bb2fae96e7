// Package textfmt formats resolved game strings: positional parameter
// substitution and Unity rich-text stripping.
package textfmt

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// placeholder matches #N[i], #N[fD] and their percent forms.
var placeholder = regexp.MustCompile(`#(\d+)\[(i|f(\d+))\](%?)`)

// FormatWithParams substitutes positional parameters into placeholder tokens.
//
//	#1[i]    rounded to an integer, ties to even
//	#1[f2]   rounded to two decimal places
//	#1[i]%   multiplied by 100, then formatted as [i] with a trailing %
//	#1[f1]%  multiplied by 100, then formatted as [f1] with a trailing %
//
// Positions are 1-based. Tokens referring to a missing parameter are left as is.
func FormatWithParams(text string, params []float64) string {
	if len(params) == 0 {
		return text
	}
	return placeholder.ReplaceAllStringFunc(text, func(tok string) string {
		m := placeholder.FindStringSubmatch(tok)
		pos, err := strconv.Atoi(m[1])
		if err != nil || pos < 1 || pos > len(params) {
			return tok
		}
		value := params[pos-1]
		percent := m[4] == "%"
		if percent {
			value *= 100
		}

		var out string
		if m[2] == "i" {
			out = strconv.FormatFloat(math.RoundToEven(value), 'f', 0, 64)
		} else {
			places, err := strconv.Atoi(m[3])
			if err != nil {
				return tok
			}
			out = formatDecimal(roundTo(value, places))
		}
		if percent {
			out += "%"
		}
		return out
	})
}

// roundTo rounds v to the given number of decimal places, ties away from zero.
func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// formatDecimal renders the shortest representation of v, always keeping
// at least one fractional digit.
func formatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
