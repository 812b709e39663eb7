package extract

import (
	"regexp"
	"strings"
)

// Pattern lists are ordered: the first pattern that matches wins. All
// matching is case-insensitive.

var namePatterns = compilePatterns(
	`(?:patient|name|patient name)[:]\s*([A-Za-z\s]+)(?:\n|age|$)`,
	`name[:]\s*([A-Za-z\s]+)`,
	`patient[:]\s*([A-Za-z\s]+)`,
)

var agePatterns = compilePatterns(
	`age[:]\s*(\d+)`,
	`(\d+)\s*years?\s*old`,
	`age\s*(\d+)`,
)

var diagnosisPatterns = compilePatterns(
	`diagnosis[:]\s*([A-Za-z\s,]+)`,
	`condition[:]\s*([A-Za-z\s,]+)`,
	`diagnosed with[:]\s*([A-Za-z\s,]+)`,
)

var medicationPatterns = compilePatterns(
	`([A-Za-z]+(?:/[A-Za-z]+)?)\s*(\d+\s*mg)\s*.*?(\d+\s*tablets?)`,
	`([A-Za-z]+)\s*[-:]\s*(\d+\s*mg)\s*[-:]\s*(\d+\s*tablets?)`,
	`([A-Za-z]+(?:/[A-Za-z]+)?)\s*(\d+mg)\s*.*?quantity[:]\s*(\d+)`,
)

var procedurePatterns = compilePatterns(
	`procedures?[:]\s*([A-Za-z\s,]+)`,
	`tests?[:]\s*([A-Za-z\s,]+)`,
	`treatment[:]\s*([A-Za-z\s,]+)`,
)

var amountPatterns = compilePatterns(
	`total amount?[:]\s*[₦\$]?(\d+(?:,\d{3})*(?:\.\d{2})?)`,
	`total[:]\s*[₦\$]?(\d+(?:,\d{3})*(?:\.\d{2})?)`,
	`amount[:]\s*[₦\$]?(\d+(?:,\d{3})*(?:\.\d{2})?)`,
	`bill[:]\s*[₦\$]?(\d+(?:,\d{3})*(?:\.\d{2})?)`,
	`[₦\$]\s*(\d+(?:,\d{3})*(?:\.\d{2})?)`,
)

// datePattern groups a labeled date regex with the admission field it
// fills. Every matching pattern assigns its field, so later patterns in
// the list overwrite earlier ones.
type datePattern struct {
	re        *regexp.Regexp
	discharge bool
}

var datePatterns = []datePattern{
	{re: compilePattern(`admission date[:]\s*(\d{1,2}[\/\-]\d{1,2}[\/\-]\d{2,4})`)},
	{re: compilePattern(`admitted[:]\s*(\d{1,2}[\/\-]\d{1,2}[\/\-]\d{2,4})`)},
	{re: compilePattern(`discharge date[:]\s*(\d{1,2}[\/\-]\d{1,2}[\/\-]\d{2,4})`), discharge: true},
	{re: compilePattern(`discharged[:]\s*(\d{1,2}[\/\-]\d{1,2}[\/\-]\d{2,4})`), discharge: true},
}

// Keyword scans run after the labeled patterns and catch mentions that
// the labels missed. Each keyword matches on word boundaries.

var knownConditions = compileKeywords(
	"malaria", "fever", "headache", "typhoid", "flu", "cold", "infection",
)

var knownMedications = compileKeywords(
	"paracetamol", "ibuprofen", "artemether", "lumefantrine", "aspirin",
)

var knownProcedures = compileKeywords(
	"malaria test", "blood test", "rapid test", "x-ray", "consultation",
)

var admissionIndicators = compileKeywords(
	"admitted", "admission", "inpatient", "ward",
)

// Delimiters used to split multi-valued labeled fields.
var (
	diagnosisSplitRe = regexp.MustCompile(`[,;]\s*`)
	procedureSplitRe = regexp.MustCompile(`[,;-]\s*`)
)

type keyword struct {
	word string
	re   *regexp.Regexp
}

func compilePattern(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + pattern)
}

func compilePatterns(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = compilePattern(p)
	}
	return compiled
}

func compileKeywords(words ...string) []keyword {
	compiled := make([]keyword, len(words))
	for i, w := range words {
		compiled[i] = keyword{word: w, re: compilePattern(`\b` + w + `\b`)}
	}
	return compiled
}

// firstMatch returns the trimmed first capture group of the first
// pattern that matches, or "" when nothing matches.
func firstMatch(text string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// dedupe removes duplicate entries, keeping first occurrence order.
func dedupe(values []string) []string {
	seen := make(map[string]bool)
	var unique []string
	for _, v := range values {
		key := strings.ToLower(v)
		if !seen[key] {
			seen[key] = true
			unique = append(unique, v)
		}
	}
	return unique
}
