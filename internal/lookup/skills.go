package lookup

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/meur/umaviewer/internal/models"
)

// Effect type codes from uma-tools RaceSolver
var effectTypes = map[int]string{
	0:  "No Effect",
	1:  "Speed +",
	2:  "Stamina +",
	3:  "Power +",
	4:  "Guts +",
	5:  "Wit +",
	9:  "Stamina Recovery",
	10: "Start Delay x",
	14: "Set Start Delay",
	21: "Current Speed +",
	22: "Current Speed + (w/ decel)",
	27: "Target Speed +",
	28: "Lane Move Speed +",
	31: "Acceleration +",
	35: "Change Lane",
	37: "Activate Random Gold",
	42: "Extend Evolved Duration",
}

// Skill categories used by the viewer for color coding
const (
	SkillUnique    = "unique"
	SkillInherited = "inherited"
	SkillGold      = "gold"
	SkillGreen     = "green"
	SkillBlue      = "blue"
	SkillWhite     = "white"
)

func isStatBoost(effectType int) bool {
	return effectType >= 1 && effectType <= 5
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// EffectTypeName returns the label for an effect type, or "Unknown"
func EffectTypeName(effectType int) string {
	if name, ok := effectTypes[effectType]; ok {
		return name
	}
	return "Unknown"
}

// FormatEffect renders one effect for display
func FormatEffect(e models.SkillEffect) string {
	label, ok := effectTypes[e.Type]
	if !ok {
		label = fmt.Sprintf("Effect %d", e.Type)
	}

	switch {
	case isStatBoost(e.Type):
		return label + formatNumber(e.Modifier)
	case e.Type == 9:
		return fmt.Sprintf("Recover %.0f%% Stamina", e.Modifier/100)
	case e.Type == 21 || e.Type == 22 || e.Type == 27:
		// stored as m/s x 10000
		return fmt.Sprintf("%s%.2fm/s", label, e.Modifier/10000)
	case e.Type == 31:
		return fmt.Sprintf("%s%.4f", label, e.Modifier/10000)
	case e.Type == 10:
		return "Start Delay x" + formatNumber(e.Modifier)
	}
	return fmt.Sprintf("%s (%s)", label, formatNumber(e.Modifier))
}

// ClassifySkill derives a category from effects and the id pattern. ok is false when
// nothing matches and the caller should fall back to rarity.
func ClassifySkill(skillID int, effects []models.SkillEffect) (string, bool) {
	for _, e := range effects {
		if isStatBoost(e.Type) {
			return SkillGreen, true
		}
	}
	for _, e := range effects {
		if e.Modifier < 0 {
			return SkillBlue, true
		}
	}
	sid := strconv.Itoa(skillID)
	if len(sid) == 6 && strings.HasPrefix(sid, "10") {
		return SkillUnique, true
	}
	if len(sid) == 6 && strings.HasPrefix(sid, "90") {
		return SkillInherited, true
	}
	return "", false
}

// RarityName maps skill_data rarity to White/Gold/Unique
func RarityName(rarity int) string {
	switch {
	case rarity >= 1 && rarity <= 3:
		return "White"
	case rarity == 4 || rarity == 5:
		return "Gold"
	case rarity == 6:
		return "Unique"
	}
	return fmt.Sprintf("Rarity %d", rarity)
}

// SkillDetails derives rarity, condition, effects, duration, type and summary from
// skill_data. Only the first alternative is used; there is usually just one.
func (r *Resolver) SkillDetails(skillID int) (models.SkillDetails, bool) {
	entry, ok := r.tables.SkillData[strconv.Itoa(skillID)]
	if !ok {
		return models.SkillDetails{}, false
	}

	d := models.SkillDetails{Rarity: RarityName(entry.Rarity)}
	if len(entry.Alternatives) == 0 {
		return d, true
	}
	alt := entry.Alternatives[0]
	d.HasAlternative = true
	d.Condition = ParseCondition(alt.Condition)

	// baseDuration scales with distance: actual = baseDuration * (distance/1000) / 1000
	if alt.BaseDuration != 0 {
		d.DurationPer1000m = fmt.Sprintf("%.1fs", alt.BaseDuration/1000)
	}

	d.Effects = make([]models.Effect, 0, len(alt.Effects))
	readable := make([]string, 0, len(alt.Effects))
	for _, e := range alt.Effects {
		eff := models.Effect{
			Type:     e.Type,
			TypeName: EffectTypeName(e.Type),
			Modifier: e.Modifier,
			Readable: FormatEffect(e),
		}
		d.Effects = append(d.Effects, eff)
		readable = append(readable, eff.Readable)
	}

	if t, ok := ClassifySkill(skillID, alt.Effects); ok {
		d.SkillType = t
	} else {
		switch d.Rarity {
		case "Gold":
			d.SkillType = SkillGold
		case "Unique":
			d.SkillType = SkillUnique
		default:
			d.SkillType = SkillWhite
		}
	}

	d.Summary = d.Condition + " → " + strings.Join(readable, ", ")
	return d, true
}
