package terminology

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/meur/umaviewer/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrectSpark(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Runner", "Front Runner"},
		{"Chaser", "End Closer"},
		{"Wisdom", "Wit"},
		{"Bad Track Condition ◎", "Wet Conditions ◎"},
		{"Front Runner", "Front Runner"},
		{"Front Runner Corners ○", "Front Runner Corners ○"},
		{"Runner's Corners ○", "Front Runner Corners ○"},
		{"Frantic Runners Lv2", "Frenzied Front Runners Lv2"},
		{"Tokyo Yushun", "Tokyo Yushun"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CorrectSpark(tt.in), "CorrectSpark(%q)", tt.in)
	}
}

func TestCorrectNickname(t *testing.T) {
	assert.Equal(t, "Wit Bonus", CorrectNickname("Int Bonus"))
	assert.Equal(t, "Wit Cap Up", CorrectNickname("Int Cap Up"))
	assert.Equal(t, "Skill Point Bonus", CorrectNickname("Skill Point Bonus"))
	assert.Equal(t, "G1 Hunter", CorrectNickname("G1 Hunter"))
}

func TestCheckEnriched(t *testing.T) {
	raw := []byte(`[
		{"spark_array_enriched": [
			{"spark_id": 2101, "spark_name_en": "Runner"},
			{"spark_id": 2102, "spark_name_en": "Front Runner's Corners"},
			{"spark_id": 2103, "spark_name_en": " runner "}
		]},
		{"nickname_array_enriched": [
			{"nickname_id": 5, "nickname_name_en": "Skill Point Bonus"},
			{"nickname_id": 6, "nickname_name_en": "Int Bonus"},
			{"nickname_id": 7, "nickname_name_en": "Wit Bonus"}
		]}
	]`)

	issues := CheckEnriched(raw)
	require.Len(t, issues, 2)

	assert.Equal(t, "Runner", issues[0].Found)
	assert.Equal(t, "Front Runner", issues[0].Expected)
	assert.Equal(t, sparkField, issues[0].Field)
	require.NotNil(t, issues[0].CharIndex)
	assert.Equal(t, 0, *issues[0].CharIndex)

	assert.Equal(t, "Int Bonus", issues[1].Found)
	assert.Equal(t, "Wit Bonus", issues[1].Expected)
	assert.Equal(t, 1, *issues[1].CharIndex)
}

func TestCheckEnriched_Canonical(t *testing.T) {
	raw := []byte(`[{"spark_array_enriched": [{"spark_name_en": "Front Runner"}, {"spark_name_en": "Medium"}],
		"nickname_array_enriched": [{"nickname_name_en": "Wit Cap Up"}]}]`)
	assert.Empty(t, CheckEnriched(raw))
}

func TestCheckEnriched_BadInput(t *testing.T) {
	issues := CheckEnriched([]byte(`{"not": "an array"}`))
	require.Len(t, issues, 1)
	assert.Equal(t, "Expected array of characters", issues[0].Problem)

	issues = CheckEnriched([]byte(`[{`))
	require.Len(t, issues, 1)
	assert.Equal(t, "Invalid JSON", issues[0].Problem)
}

func TestCheckViewer(t *testing.T) {
	content := `<div>
  <span class="aptitude-label">Front Runner</span>
  <span class="aptitude-label">Stalker</span>
  <span class="aptitude-label">Medium</span>
  <span class='aptitude-label'>short</span>
  const label = char.wiz; // Wisdom
</div>`
	issues := CheckViewer(content)
	require.Len(t, issues, 2)

	assert.Equal(t, 3, issues[0].Line)
	assert.Equal(t, "Stalker", issues[0].Found)
	assert.Equal(t, "Pace Chaser", issues[0].Expected)
	assert.Equal(t, `<span class="aptitude-label">Stalker</span>`, issues[0].Context)

	assert.Equal(t, 5, issues[1].Line)
	assert.Equal(t, "short", issues[1].Found)
	assert.Equal(t, "Sprint", issues[1].Expected)
}

func TestFixViewer(t *testing.T) {
	content := `<span class="aptitude-label">Stalker</span>
<span class="aptitude-label">Front Runner</span>
<span class="aptitude-label">Middle</span>
const styles = ['Front-runner', 'Stalker'];
const wiz = char.wiz;`

	fixed, n := FixViewer(content)
	assert.Equal(t, 4, n)
	assert.Contains(t, fixed, `aptitude-label">Pace Chaser<`)
	assert.Contains(t, fixed, `aptitude-label">Front Runner<`)
	assert.Contains(t, fixed, `aptitude-label">Medium<`)
	assert.Contains(t, fixed, `['Front Runner', 'Pace Chaser']`)
	assert.Contains(t, fixed, `char.wiz`)
	assert.Empty(t, CheckViewer(fixed))

	again, n := FixViewer(fixed)
	assert.Zero(t, n)
	assert.Equal(t, fixed, again)
}

func TestFixViewerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.html")
	require.NoError(t, os.WriteFile(path, []byte(`<span class="aptitude-label">Short</span>`), 0o644))

	n, err := FixViewerFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `<span class="aptitude-label">Sprint</span>`, string(got))

	_, err = FixViewerFile(filepath.Join(t.TempDir(), "missing.html"))
	assert.Error(t, err)
}

func TestCheckFiles_Missing(t *testing.T) {
	dir := t.TempDir()
	issues := CheckEnrichedFile(filepath.Join(dir, "enriched_data.json"))
	require.Len(t, issues, 1)
	assert.Equal(t, "File not found", issues[0].Problem)

	issues = CheckViewerFile(filepath.Join(dir, "viewer.html"))
	require.Len(t, issues, 1)
	assert.Equal(t, "File not found", issues[0].Problem)
}

func TestWriteReference(t *testing.T) {
	var buf bytes.Buffer
	WriteReference(&buf)
	out := buf.String()
	assert.Contains(t, out, "OFFICIAL GLOBAL TERMINOLOGY REFERENCE")
	assert.Contains(t, out, "Front Runner   | Runner")
	assert.Contains(t, out, "Speed, Stamina, Power, Guts, Wit, Friend, Group")
}

func TestWriteIssue(t *testing.T) {
	idx := 2
	tests := []struct {
		name  string
		issue models.Issue
		want  []string
	}{
		{"viewer", models.Issue{File: "viewer.html", Line: 12, Found: "Stalker", Expected: "Pace Chaser", Context: `<span class="aptitude-label">Stalker</span>`},
			[]string{"viewer.html:12", "Found: 'Stalker' -> Should be: 'Pace Chaser'", "Context: <span"}},
		{"enriched", models.Issue{File: "enriched_data.json", Field: sparkField, Found: "Runner", Expected: "Front Runner", Sample: "Runner", CharIndex: &idx},
			[]string{"enriched_data.json [spark_array_enriched[].spark_name_en]", "Sample: Runner"}},
		{"file", models.Issue{File: "viewer.html", Problem: "File not found"},
			[]string{"viewer.html: File not found"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			WriteIssue(&buf, tt.issue)
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestWriteSummary(t *testing.T) {
	var issues []models.Issue
	for i := 0; i < 7; i++ {
		issues = append(issues, models.Issue{File: "enriched_data.json", Field: sparkField, Found: "Runner", Expected: "Front Runner"})
	}
	var buf bytes.Buffer
	WriteSummary(&buf, issues, 5)
	assert.Equal(t, 5, strings.Count(buf.String(), "'Runner' -> should be 'Front Runner'"))
	assert.Contains(t, buf.String(), "... and 2 more.")
}
