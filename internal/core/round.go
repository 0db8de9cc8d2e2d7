package core

import (
	"math"
	"strconv"
	"strings"
)

// Round2 rounds to 2 decimal places with ties going toward positive
// infinity regardless of sign: 100.555 -> 100.56, -100.555 -> -100.55.
//
// The tie is decided on the shortest decimal representation of the
// float64 rather than on the binary value, so the contract above holds
// even though 100.555 as a double sits fractionally below the true tie
// point. Every bucket total a report emits goes through this function.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	if len(frac) <= 2 {
		return v
	}

	var roundUp bool
	rest := frac[2:]
	if neg {
		// Toward +infinity: a negative tie keeps its magnitude.
		roundUp = rest[0] > '5' || (rest[0] == '5' && strings.Trim(rest[1:], "0") != "")
	} else {
		roundUp = rest[0] >= '5'
	}

	cents, err := strconv.ParseInt(intPart+frac[:2], 10, 64)
	if err != nil {
		// Magnitude beyond cents precision; rounding is meaningless.
		return v
	}
	if roundUp {
		cents++
	}
	out := float64(cents) / 100
	if neg {
		out = -out
	}
	return out
}
