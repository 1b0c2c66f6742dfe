// Package surf logs the NWS surf-zone forecast text product for the
// coastal zone covering Panama City Beach.
package surf

import (
	"regexp"
	"strings"
)

// Fields are the values parsed from one forecast product. The product is
// free text issued by humans, so every field is best-effort and may be
// empty.
type Fields struct {
	IssuedLine     string
	RipCurrentRisk string
	Surf           string
	Wind           string
	UVIndex        string
	WaterTemp      string
	Tides          string
}

var (
	issuedRe = regexp.MustCompile(`(?im)^[ \t]*(?:\w{3}[ \t]+\w{3}[ \t]+\d{1,2}.*|.*ISSUED.*)$`)
	riskRe   = regexp.MustCompile(`(?i)rip\s*current\s*risk\W+\s*([A-Za-z][A-Za-z/\-\s]+)`)
	surfRe   = regexp.MustCompile(`(?i)\bSURF\W+\s*([0-9]+(?:\s*(?:to|-)\s*[0-9]+)?\s*(?:ft|feet|foot)?)`)
	windRe   = regexp.MustCompile(`(?i)\bWIND\W+\s*(.+)`)
	uvRe     = regexp.MustCompile(`(?i)\bUV\s*INDEX\W+\s*([A-Za-z0-9\s/+-]+)`)
	wtmpRe   = regexp.MustCompile(`(?i)\bWATER\s*TEMPERATURE\W+\s*([0-9]+(?:\s*-\s*[0-9]+)?\s*(?:F|°F|C|°C)?)`)
	tidesRe  = regexp.MustCompile(`(?is)\bTIDES?\W+\s*(.+?)(?:\n[A-Z ]{3,}:|\z)`)
)

// riskLevels in normalization order; the most severe wins on ambiguity.
var riskLevels = []string{"HIGH", "MODERATE", "LOW"}

// ParseFields pulls the known fields out of a forecast product.
func ParseFields(txt string) Fields {
	return Fields{
		IssuedLine:     strings.TrimSpace(issuedRe.FindString(txt)),
		RipCurrentRisk: normalizeRisk(capture(riskRe, txt)),
		Surf:           capture(surfRe, txt),
		Wind:           firstLine(capture(windRe, txt)),
		UVIndex:        capture(uvRe, txt),
		WaterTemp:      capture(wtmpRe, txt),
		Tides:          strings.Join(strings.Fields(capture(tidesRe, txt)), " "),
	}
}

// normalizeRisk collapses the captured risk wording to LOW/MODERATE/HIGH
// when one of those levels appears, otherwise keeps the raw value
// upper-cased.
func normalizeRisk(raw string) string {
	if raw == "" {
		return ""
	}
	upper := strings.ToUpper(raw)
	for _, lvl := range riskLevels {
		if strings.Contains(upper, lvl) {
			return lvl
		}
	}
	return upper
}

func capture(re *regexp.Regexp, txt string) string {
	m := re.FindStringSubmatch(txt)
	if len(m) < 2 {
		return ""
	}
	// Offices sometimes double up periods between clauses.
	return strings.ReplaceAll(strings.TrimSpace(m[1]), "..", ".")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
