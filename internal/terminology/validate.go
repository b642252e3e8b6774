package terminology

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/meur/umaviewer/internal/config"
	"github.com/meur/umaviewer/internal/models"
	"github.com/tidwall/gjson"
)

const (
	sparkField    = "spark_array_enriched[].spark_name_en"
	epithetField  = "nickname_array_enriched[].nickname_name_en"
	sampleLength  = 50
	contextLength = 80
)

// CheckEnriched scans enriched output for non-Global terms. Only spark and epithet names
// are checked; skill and character names use these words inside proper nouns.
// Each offending term is reported once, at its first occurrence.
func CheckEnriched(raw []byte) []models.Issue {
	if !gjson.ValidBytes(raw) {
		return []models.Issue{{File: config.EnrichedFile, Problem: "Invalid JSON"}}
	}
	root := gjson.ParseBytes(raw)
	if !root.IsArray() {
		return []models.Issue{{File: config.EnrichedFile, Problem: "Expected array of characters"}}
	}

	var issues []models.Issue
	seen := make(map[string]bool)
	report := func(kind, field, value string, c Correction, idx int) {
		key := kind + ":" + c.Wrong
		if seen[key] {
			return
		}
		seen[key] = true
		i := idx
		issues = append(issues, models.Issue{
			File:      config.EnrichedFile,
			Field:     field,
			Found:     c.Wrong,
			Expected:  c.Right,
			Sample:    truncate(value, sampleLength),
			CharIndex: &i,
		})
	}

	for idx, char := range root.Array() {
		for _, spark := range char.Get("spark_array_enriched").Array() {
			if c, ok := exactMatch(spark.Get("spark_name_en").String(), sparkTerms); ok {
				report("spark", sparkField, spark.Get("spark_name_en").String(), c, idx)
			}
		}
		for _, nick := range char.Get("nickname_array_enriched").Array() {
			if c, ok := exactMatch(nick.Get("nickname_name_en").String(), epithetTerms); ok {
				report("epithet", epithetField, nick.Get("nickname_name_en").String(), c, idx)
			}
		}
	}
	return issues
}

func exactMatch(value string, terms []Correction) (Correction, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Correction{}, false
	}
	for _, c := range terms {
		if v == strings.ToLower(c.Wrong) {
			return c, true
		}
	}
	return Correction{}, false
}

type uiPattern struct {
	Correction
	re *regexp.Regexp
}

var uiPatterns = func() []uiPattern {
	out := make([]uiPattern, 0, len(uiTerms))
	for _, c := range uiTerms {
		out = append(out, uiPattern{
			Correction: c,
			re:         regexp.MustCompile(`(?i)aptitude-label["']?>(` + regexp.QuoteMeta(c.Wrong) + `)<`),
		})
	}
	return out
}()

// CheckViewer scans the viewer page for non-Global terms, restricted to text directly
// inside aptitude-label elements.
func CheckViewer(content string) []models.Issue {
	var issues []models.Issue
	for n, line := range strings.Split(content, "\n") {
		for _, p := range uiPatterns {
			m := p.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			issues = append(issues, models.Issue{
				File:     config.ViewerFile,
				Line:     n + 1,
				Found:    m[1],
				Expected: p.Right,
				Context:  truncate(strings.TrimSpace(line), contextLength),
			})
		}
	}
	return issues
}

// CheckEnrichedFile runs CheckEnriched on a file, reporting a missing file as an issue
func CheckEnrichedFile(path string) []models.Issue {
	raw, err := os.ReadFile(path)
	if err != nil {
		return []models.Issue{fileProblem(config.EnrichedFile, err)}
	}
	return CheckEnriched(raw)
}

// CheckViewerFile runs CheckViewer on a file, reporting a missing file as an issue
func CheckViewerFile(path string) []models.Issue {
	raw, err := os.ReadFile(path)
	if err != nil {
		return []models.Issue{fileProblem(config.ViewerFile, err)}
	}
	return CheckViewer(string(raw))
}

func fileProblem(name string, err error) models.Issue {
	if errors.Is(err, os.ErrNotExist) {
		return models.Issue{File: name, Problem: "File not found"}
	}
	return models.Issue{File: name, Problem: fmt.Sprintf("Could not read: %v", err)}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
