package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/joseph-ayodele/policy-intake/internal/entity"
	"github.com/joseph-ayodele/policy-intake/internal/normalize"
)

const (
	covName    = `(?P<name>\p{L}[\p{L} .,/&()\-]*?)`
	covMoney   = `\$?\s?[\d,]+\.\d{2}`
	covAmount  = `\$?\s?[\d,]+(?:\.\d{2})?`
	covPercent = `\d+(?:\.\d+)?\s?%`
	covBasis   = `AMPARAD[AO]|VALOR (?:COMERCIAL|CONVENIDO|FACTURA)|COMMERCIAL VALUE|AGREED VALUE`
)

// DefaultCoverageLines are the row shapes tried, in order, on every line of a
// coverage section.
var DefaultCoverageLines = []*regexp.Regexp{
	// LIABILITY  $ 5,809.44  3.00%  COMMERCIAL VALUE
	regexp.MustCompile(`(?i)^\s*` + covName + `\s+(?P<premium>\$\s?[\d,]+\.\d{2})\s+(?P<deductible>` + covPercent + `)\s+(?P<insured>\p{L}[\p{L} ]*?)\s*$`),
	// DAÑOS MATERIALES  VALOR COMERCIAL  5%  $ 4,500.00
	regexp.MustCompile(`(?i)^\s*` + covName + `\s{2,}(?P<insured>` + covBasis + `|` + covAmount + `)\s{2,}(?P<deductible>` + covPercent + `|` + covAmount + `|N/?A|-+)\s{2,}(?P<premium>` + covMoney + `)\s*$`),
	// RESPONSABILIDAD CIVIL  $ 3,000,000.00  $ 850.00
	regexp.MustCompile(`(?i)^\s*` + covName + `\s{2,}(?P<insured>` + covBasis + `|` + covAmount + `)\s{2,}(?P<premium>` + covMoney + `)\s*$`),
	// ASISTENCIA VIAL  AMPARADA
	regexp.MustCompile(`(?i)^\s*` + covName + `\s{2,}(?P<insured>AMPARAD[AO])\b.*$`),
}

// KnownCoverages are searched for when no row shape matches.
var KnownCoverages = []string{
	"EXTENSION DE RESPONSABILIDAD CIVIL",
	"GASTOS MEDICOS OCUPANTES",
	"RESPONSABILIDAD CIVIL",
	"DANOS MATERIALES",
	"ROBO TOTAL",
	"ASISTENCIA LEGAL",
	"ASISTENCIA VIAL",
	"MUERTE DEL CONDUCTOR",
	"CRISTALES",
	"MEDICAL PAYMENTS",
	"LIABILITY",
	"COLLISION",
	"THEFT",
}

var (
	reTrailingAmount = regexp.MustCompile(`^[^\n]{0,80}?(` + covMoney + `)`)
	reTrailingCover  = regexp.MustCompile(`^\s*(AMPARAD[AO])`)
)

// CoverageLayout describes where an issuer prints its coverage table.
type CoverageLayout struct {
	Start *regexp.Regexp // opens the section; nil means the whole text
	End   *regexp.Regexp // closes it; nil means end of text
	Lines []*regexp.Regexp
}

// Section returns the text between the first Start match and the next End match.
func (l CoverageLayout) Section(text string) string {
	if l.Start != nil {
		loc := l.Start.FindStringIndex(text)
		if loc == nil {
			return ""
		}
		text = text[loc[1]:]
	}
	if l.End != nil {
		if loc := l.End.FindStringIndex(text); loc != nil {
			text = text[:loc[0]]
		}
	}
	return text
}

// ParseCoverages reads the coverage table. Issuer line shapes run before the
// defaults. When no line matches any shape, known coverage names are located
// and paired with the nearest trailing amount.
func ParseCoverages(text string, layout CoverageLayout) []entity.Coverage {
	section := layout.Section(text)
	if strings.TrimSpace(section) == "" {
		return []entity.Coverage{}
	}
	shapes := append(append([]*regexp.Regexp{}, layout.Lines...), DefaultCoverageLines...)

	out := make([]entity.Coverage, 0)
	for _, line := range strings.Split(section, "\n") {
		for _, re := range shapes {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			out = append(out, coverageFromMatch(re, m))
			break
		}
	}
	if len(out) > 0 {
		return out
	}
	return knownCoverages(section)
}

func coverageFromMatch(re *regexp.Regexp, m []string) entity.Coverage {
	var c entity.Coverage
	for i, name := range re.SubexpNames() {
		switch name {
		case "name":
			c.Name = strings.TrimRight(Clean(m[i]), " .-")
		case "insured":
			c.InsuredAmount = Clean(m[i])
		case "deductible":
			c.Deductible = Clean(m[i])
		case "premium":
			c.Premium = Clean(m[i])
		}
	}
	return c
}

type span struct{ start, end int }

func knownCoverages(section string) []entity.Coverage {
	folded := normalize.Fold(section)
	var taken []span
	type hit struct {
		pos int
		cov entity.Coverage
	}
	var hits []hit
	for _, name := range KnownCoverages {
		idx := strings.Index(folded, name)
		if idx < 0 {
			continue
		}
		sp := span{idx, idx + len(name)}
		if overlaps(taken, sp) {
			continue
		}
		taken = append(taken, sp)
		c := entity.Coverage{Name: name}
		rest := folded[sp.end:]
		if m := reTrailingCover.FindStringSubmatch(rest); m != nil {
			c.InsuredAmount = m[1]
		} else if m := reTrailingAmount.FindStringSubmatch(rest); m != nil {
			c.InsuredAmount = m[1]
		}
		hits = append(hits, hit{idx, c})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	out := make([]entity.Coverage, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.cov)
	}
	return out
}

func overlaps(taken []span, s span) bool {
	for _, t := range taken {
		if s.start < t.end && t.start < s.end {
			return true
		}
	}
	return false
}
