package lookup

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Checked in this order so that ">=" is not mistaken for "=".
var conditionOps = []string{">=", "<=", "==", "!=", ">", "<", "="}

var (
	phaseNames        = map[string]string{"0": "Opening Leg", "1": "Middle Leg", "2": "Final Leg"}
	runningStyleNames = map[string]string{"1": "Front Runner", "2": "Pace Chaser", "3": "Late Surger", "4": "End Closer"}
	groundTypeNames   = map[string]string{"1": "Turf", "2": "Dirt"}
	distanceTypeNames = map[string]string{"1": "Sprint", "2": "Mile", "3": "Medium", "4": "Long"}
)

// ParseCondition turns a skill activation condition such as
// "phase>=2&order_rate<=50" into "Final Leg+ & Top 50%".
func ParseCondition(condition string) string {
	var parts []string
	for _, term := range strings.Split(condition, "&") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		if s, ok := translateTerm(term); ok {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return "Always"
	}
	return strings.Join(parts, " & ")
}

// translateTerm returns false for clauses that are dropped (always==1)
func translateTerm(term string) (string, bool) {
	var op, key, value string
	for _, candidate := range conditionOps {
		if k, v, found := strings.Cut(term, candidate); found {
			op, key, value = candidate, strings.TrimSpace(k), strings.TrimSpace(v)
			break
		}
	}
	if op == "" {
		return titleWords(term), true
	}

	switch {
	case key == "phase":
		name, ok := phaseNames[value]
		if !ok {
			name = "Phase " + value
		}
		switch op {
		case "==", "=":
			return name, true
		case ">=":
			return name + "+", true
		}
		return "phase" + op + value, true
	case key == "distance_rate":
		switch op {
		case ">=":
			return fmt.Sprintf("After %s%% of race", value), true
		case "<=":
			return fmt.Sprintf("Before %s%% of race", value), true
		}
		return value + "% of race", true
	case key == "order":
		switch op {
		case "<=":
			return "Top " + value, true
		case ">=":
			return "Position " + value + "+", true
		}
		return "Position " + value, true
	case key == "order_rate":
		switch op {
		case "<=":
			return "Top " + value + "%", true
		case ">=":
			if n, err := strconv.Atoi(value); err == nil {
				return fmt.Sprintf("Back %d%%", 100-n), true
			}
		}
		return value + "% of field", true
	case key == "running_style":
		if name, ok := runningStyleNames[value]; ok {
			return name, true
		}
		return "Style " + value, true
	case key == "corner":
		if value == "0" {
			return "Not in corner", true
		}
		return "Corner " + value, true
	case key == "is_lastspurt" && value == "1":
		return "Last Spurt", true
	case key == "is_finalcorner" && value == "1":
		return "Final Corner", true
	case key == "hp_per":
		switch op {
		case "<=":
			return "HP ≤" + value + "%", true
		case ">=":
			return "HP ≥" + value + "%", true
		}
		return "HP " + value + "%", true
	case key == "activate_count_heal":
		return "After " + value + " recovery skill(s)", true
	case key == "ground_type":
		if name, ok := groundTypeNames[value]; ok {
			return name, true
		}
		return "Ground " + value, true
	case key == "distance_type":
		if name, ok := distanceTypeNames[value]; ok {
			return name, true
		}
		return "Distance " + value, true
	case strings.HasSuffix(key, "_random") && value == "1":
		return "Random in " + titleWords(strings.ReplaceAll(key, "_random", "")), true
	case key == "always":
		return "", false
	}
	return titleWords(key) + " " + op + " " + value, true
}

// titleWords turns snake_case into Title Case
func titleWords(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}
