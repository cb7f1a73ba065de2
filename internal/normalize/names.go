package normalize

import "strings"

// NameOrder is the token order a carrier prints holder names in.
type NameOrder int

const (
	// GivenFirst reads "MARIA DE LA LUZ GARCIA LOPEZ".
	GivenFirst NameOrder = iota
	// SurnamesFirst reads "GARCIA LOPEZ MARIA DE LA LUZ".
	SurnamesFirst
)

var surnameParticles = map[string]struct{}{
	"DE": {}, "DEL": {}, "LA": {}, "LAS": {}, "LOS": {}, "Y": {}, "VAN": {}, "VON": {}, "MC": {},
}

func isParticle(tok string) bool {
	_, ok := surnameParticles[Fold(tok)]
	return ok
}

// SplitPersonName splits a natural-person name into given name and the two
// surnames. Particles such as DE LA stay attached to the surname they precede.
func SplitPersonName(full string, order NameOrder) (given, paternal, maternal string) {
	toks := strings.Fields(full)
	switch len(toks) {
	case 0:
		return "", "", ""
	case 1:
		return toks[0], "", ""
	}
	if order == SurnamesFirst {
		return splitSurnamesFirst(toks)
	}
	return splitGivenFirst(toks)
}

func splitGivenFirst(toks []string) (given, paternal, maternal string) {
	end := len(toks)
	takeSurname := func() string {
		if end <= 1 {
			return ""
		}
		start := end - 1
		for start-1 >= 1 && isParticle(toks[start-1]) {
			start--
		}
		s := strings.Join(toks[start:end], " ")
		end = start
		return s
	}
	last := takeSurname()
	prev := takeSurname()
	if prev == "" {
		return strings.Join(toks[:end], " "), last, ""
	}
	return strings.Join(toks[:end], " "), prev, last
}

func splitSurnamesFirst(toks []string) (given, paternal, maternal string) {
	pos := 0
	takeSurname := func() string {
		if pos >= len(toks)-1 {
			return ""
		}
		start := pos
		for pos < len(toks)-1 && isParticle(toks[pos]) {
			pos++
		}
		pos++
		return strings.Join(toks[start:pos], " ")
	}
	paternal = takeSurname()
	maternal = takeSurname()
	return strings.Join(toks[pos:], " "), paternal, maternal
}
