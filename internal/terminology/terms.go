// Package terminology maps community (JP-derived) terms to the official Global English
// vocabulary, and validates enriched output and the viewer page against it.
package terminology

import (
	"sort"
	"strings"
)

// Correction maps a non-canonical term to its Global replacement
type Correction struct {
	Wrong string
	Right string
}

// sparkCorrections fix UmaTL spark and race names that use JP community terms.
// Sourced from uma-tools umalator-global/skillnames.json.
var sparkCorrections = []Correction{
	// Running style aptitudes
	{"Runner", "Front Runner"},
	{"Leader", "Pace Chaser"},
	{"Betweener", "Late Surger"},
	{"Chaser", "End Closer"},

	// Track condition
	{"Bad Track Condition ○", "Wet Conditions ○"},
	{"Bad Track Condition ◎", "Wet Conditions ◎"},
	{"Bad Track Condition ×", "Wet Conditions ×"},

	// Running style skills
	{"Frontrunner", "Early Lead"},
	{"Runner's Corners ○", "Front Runner Corners ○"},
	{"Runner's Corners ◎", "Front Runner Corners ◎"},
	{"Runner's Straights ○", "Front Runner Straightaways ○"},
	{"Runner's Straights ◎", "Front Runner Straightaways ◎"},
	{"Runner's Tricks ○", "Front Runner Savvy ○"},
	{"Runner's Tricks ◎", "Front Runner Savvy ◎"},
	{"Leader's Corners ○", "Pace Chaser Corners ○"},
	{"Leader's Corners ◎", "Pace Chaser Corners ◎"},
	{"Leader's Straights ○", "Pace Chaser Straightaways ○"},
	{"Leader's Straights ◎", "Pace Chaser Straightaways ◎"},
	{"Leader's Tricks ○", "Pace Chaser Savvy ○"},
	{"Leader's Tricks ◎", "Pace Chaser Savvy ◎"},
	{"Betweener's Corners ○", "Late Surger Corners ○"},
	{"Betweener's Corners ◎", "Late Surger Corners ◎"},
	{"Betweener's Straights ○", "Late Surger Straightaways ○"},
	{"Betweener's Straights ◎", "Late Surger Straightaways ◎"},
	{"Betweener's Tricks ○", "Late Surger Savvy ○"},
	{"Betweener's Tricks ◎", "Late Surger Savvy ◎"},
	{"Chaser's Corners ○", "End Closer Corners ○"},
	{"Chaser's Corners ◎", "End Closer Corners ◎"},
	{"Chaser's Straights ○", "End Closer Straightaways ○"},
	{"Chaser's Straights ◎", "End Closer Straightaways ◎"},
	{"Chaser's Tricks ○", "End Closer Savvy ○"},
	{"Chaser's Tricks ◎", "End Closer Savvy ◎"},

	// Debuffs
	{"Frantic Runners", "Frenzied Front Runners"},
	{"Restrained Runners", "Subdued Front Runners"},
	{"Panicked Runners", "Flustered Front Runners"},
	{"Faltering Runners", "Hesitant Front Runners"},
	{"Frantic Leaders", "Frenzied Pace Chasers"},
	{"Restrained Leaders", "Subdued Pace Chasers"},
	{"Panicked Leaders", "Flustered Pace Chasers"},
	{"Faltering Leaders", "Hesitant Pace Chasers"},
	{"Frantic Betweeners", "Frenzied Late Surgers"},
	{"Restrained Betweeners", "Subdued Late Surgers"},
	{"Panicked Betweeners", "Flustered Late Surgers"},
	{"Faltering Betweeners", "Hesitant Late Surgers"},
	{"Frantic Chasers", "Frenzied End Closers"},
	{"Restrained Chasers", "Subdued End Closers"},
	{"Panicked Chasers", "Flustered End Closers"},
	{"Faltering Chasers", "Hesitant End Closers"},

	// Skill names that differ on Global
	{"Position Swiper", "Position Pilfer"},
	{"100K Horsepower", "1,500,000 CC"},
	{"1M Horsepower", "15,000,000 CC"},
	{"Blue Rose Chaser", "Blue Rose Closer"},
	{"Backup Belly", "Extra Tank"},
	{"Big Strides", "Furious Feat"},
	{"Autumn Girl ○", "Fall Runner ○"},
	{"Autumn Girl ◎", "Fall Runner ◎"},
	{"Autumn Girl ×", "Fall Runner ×"},

	// Stats
	{"Wisdom", "Wit"},
}

var nicknameCorrections = []Correction{
	{"Int Bonus", "Wit Bonus"},
	{"Int Cap Up", "Wit Cap Up"},
}

var (
	sparkExact    = exactIndex(sparkCorrections)
	nicknameExact = exactIndex(nicknameCorrections)
	// Only multi-word phrases are replaced inside longer names; single words such as
	// "Runner" would otherwise turn "Front Runner" into "Front Front Runner".
	sparkPhrases = phrasesLongestFirst(sparkCorrections)
)

func exactIndex(cs []Correction) map[string]string {
	m := make(map[string]string, len(cs))
	for _, c := range cs {
		m[c.Wrong] = c.Right
	}
	return m
}

func phrasesLongestFirst(cs []Correction) []Correction {
	var out []Correction
	for _, c := range cs {
		if strings.Contains(c.Wrong, " ") {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Wrong) > len(out[j].Wrong)
	})
	return out
}

// CorrectSpark applies Global terminology to a spark or race name
func CorrectSpark(name string) string {
	if name == "" {
		return name
	}
	if right, ok := sparkExact[name]; ok {
		return right
	}
	for _, c := range sparkPhrases {
		if strings.Contains(name, c.Wrong) {
			name = strings.ReplaceAll(name, c.Wrong, c.Right)
		}
	}
	return name
}

// CorrectNickname applies Global terminology to an epithet or bonus name (exact match only)
func CorrectNickname(name string) string {
	if right, ok := nicknameExact[name]; ok {
		return right
	}
	return name
}

// Terms flagged in enriched spark names (case-insensitive exact match)
var sparkTerms = []Correction{
	{"Runner", "Front Runner"},
	{"Frontrunner", "Front Runner"},
	{"Front-runner", "Front Runner"},
	{"Nige", "Front Runner"},
	{"Leader", "Pace Chaser"},
	{"Senko", "Pace Chaser"},
	{"Stalker", "Pace Chaser"},
	{"Betweener", "Late Surger"},
	{"Sashi", "Late Surger"},
	{"Chaser", "End Closer"},
	{"Oikomi", "End Closer"},
	{"Short", "Sprint"},
	{"Short Distance", "Sprint"},
	{"Mid-Distance", "Medium"},
	{"Middle Distance", "Medium"},
	{"Wisdom", "Wit"},
	{"Int", "Wit"},
	{"Intelligence", "Wit"},
}

// Terms flagged in epithet names. Exact match, so "Skill Point Bonus" is not caught by
// "Int Bonus". "Wit Bonus" and "Wit Cap Up" are already correct.
var epithetTerms = []Correction{
	{"Wisdom Bonus", "Wit Bonus"},
	{"Wisdom Cap Up", "Wit Cap Up"},
	{"Wiz Bonus", "Wit Bonus"},
	{"Int Bonus", "Wit Bonus"},
	{"Int Cap Up", "Wit Cap Up"},
}

// Terms flagged as viewer UI labels. Property keys such as char.wiz are never labels.
var uiTerms = []Correction{
	{"Runner", "Front Runner"},
	{"Frontrunner", "Front Runner"},
	{"Front-runner", "Front Runner"},
	{"Leader", "Pace Chaser"},
	{"Stalker", "Pace Chaser"},
	{"Betweener", "Late Surger"},
	{"Chaser", "End Closer"},
	{"Short", "Sprint"},
	{"Mid-Distance", "Medium"},
	{"Middle", "Medium"},
	{"Wisdom", "Wit"},
}
