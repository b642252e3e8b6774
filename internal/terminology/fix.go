package terminology

import (
	"fmt"
	"os"
	"regexp"
)

type fix struct {
	re   *regexp.Regexp
	repl string
}

func labelFix(wrong, right string) fix {
	return fix{
		re:   regexp.MustCompile(`(aptitude-label['"]?>)` + regexp.QuoteMeta(wrong) + `(<)`),
		repl: "${1}" + right + "${2}",
	}
}

func literalFix(wrong, right string) fix {
	return fix{
		re:   regexp.MustCompile(regexp.QuoteMeta("'" + wrong + "'")),
		repl: "'" + right + "'",
	}
}

// viewerFixes are applied in order. Kept narrow so code and property keys are untouched.
var viewerFixes = []fix{
	labelFix("Front-runner", "Front Runner"),
	labelFix("Frontrunner", "Front Runner"),
	labelFix("Runner", "Front Runner"),
	labelFix("Stalker", "Pace Chaser"),
	labelFix("Leader", "Pace Chaser"),
	labelFix("Betweener", "Late Surger"),
	labelFix("Chaser", "End Closer"),
	labelFix("Short", "Sprint"),
	labelFix("Mid-Distance", "Medium"),
	labelFix("Middle", "Medium"),
	labelFix("Wisdom", "Wit"),

	literalFix("Front-runner", "Front Runner"),
	literalFix("Stalker", "Pace Chaser"),
	literalFix("Short", "Sprint"),
	literalFix("Mid-Distance", "Medium"),
}

// FixViewer rewrites non-Global UI labels in the viewer page. It returns the new content
// and how many substitutions changed something.
func FixViewer(content string) (string, int) {
	fixes := 0
	for _, f := range viewerFixes {
		updated := f.re.ReplaceAllString(content, f.repl)
		if updated != content {
			fixes++
			content = updated
		}
	}
	return content, fixes
}

// FixViewerFile applies FixViewer to the file at path, writing it back only when
// something changed.
func FixViewerFile(path string) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, fixes := FixViewer(string(raw))
	if fixes == 0 {
		return 0, nil
	}
	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	return fixes, nil
}
