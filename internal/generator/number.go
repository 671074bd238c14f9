package generator

import (
	"math"
	"strconv"
	"strings"
)

// Number is a numeric job field. A nil Number encodes as JSON null, which
// is what the renderer receives for absent or unparseable form values.
type Number *float64

// ParseNumber coerces a form value the way the editor's browser code does:
// an absent value and text that is not a finite number become nil, blank
// text becomes 0, anything else its numeric value. Unsigned 0x, 0o and 0b
// literals are accepted.
func ParseNumber(value string, present bool) Number {
	if !present {
		return nil
	}
	s := strings.TrimSpace(value)
	if s == "" {
		return num(0)
	}

	if len(s) > 2 && s[0] == '0' && strings.ContainsRune("xXoObB", rune(s[1])) {
		if strings.Contains(s, "_") {
			return nil
		}
		n, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return nil
		}
		return num(float64(n))
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		// Infinities have no JSON encoding; the browser sends null for them too.
		return nil
	}
	return num(f)
}

func num(f float64) Number {
	return &f
}
