package event

import (
	"regexp"
	"strings"

	"github.com/aamritt0/FermiToday-pwa/core"
)

// Summaries are free text typed by the school secretariat; identifiers are
// recovered with a small grammar of marker + capture + terminator rules.
// Extraction is a pure function of the text: same input, same output.
var (
	// "CLASSE 5A, 5B AULA 12" -> captures "5A, 5B"; the run of codes ends at
	// a dash, "AULA", "PROF" or end of text.
	classRunRegex   = regexp.MustCompile(`(?i)CLASS[EI]\s+([A-Z0-9,\s]+?)(?:\s*[-–]|\s+AULA|\s+PROF|\s*$)`)
	classSplitRegex = regexp.MustCompile(`[,\s]+`)

	// plural marker form: "PROFF. ROSSI, BIANCHI CLASSE ..."; also matches the
	// singular "PROF." and "PROF.ssa" variants with a comma-separated name list.
	profListRegex = regexp.MustCompile(`(?i)PROFF?\.(?:ssa)?\s*([A-Z][A-Z\s,.']+?)(?:\s*CLASSE|\s*AULA|\s*ASSENTE|\s*$)`)

	// fallback: every standalone "PROF ROSSI" occurrence.
	profSingleRegex = regexp.MustCompile(`(?i)PROF\.?(?:ssa)?\.?\s*([A-Z][A-Z\s]+?)(?:\s*[,()]|\s+ASSENTE|\s+CLASSE|\s*$)`)

	trailingQuoteRegex = regexp.MustCompile(`['"]+$`)
)

const maxNameLen = 50

// ClassCodes extracts every class code announced in a summary, uppercased.
// A single announcement may name several classes ("CLASSI 5A, 5B").
func ClassCodes(summary string) []string {
	m := classRunRegex.FindStringSubmatch(summary)
	if m == nil {
		return nil
	}
	var codes []string
	for _, tok := range classSplitRegex.Split(m[1], -1) {
		if tok = strings.TrimSpace(tok); tok != "" {
			codes = append(codes, strings.ToUpper(tok))
		}
	}
	return codes
}

// ProfessorNames extracts professor surnames from a summary, uppercased and
// whitespace-collapsed. The comma-separated list form wins when it matches;
// otherwise every standalone "PROF <NAME>" occurrence is collected.
func ProfessorNames(summary string) []string {
	if m := profListRegex.FindStringSubmatch(summary); m != nil {
		var names []string
		for _, name := range strings.Split(m[1], ",") {
			name = trailingQuoteRegex.ReplaceAllString(strings.TrimSpace(name), "")
			name = strings.ToUpper(core.CollapseSpaces(name))
			if len(name) > 0 && len(name) < maxNameLen {
				names = append(names, name)
			}
		}
		if len(names) > 0 {
			return names
		}
	}

	var names []string
	for _, m := range profSingleRegex.FindAllStringSubmatch(summary, -1) {
		name := strings.ToUpper(core.CollapseSpaces(strings.TrimSpace(m[1])))
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
