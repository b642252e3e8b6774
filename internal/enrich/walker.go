// Package enrich attaches English names to the character records of a data.json dump.
// Enrichment is additive: original keys are never removed, and a lookup miss simply
// leaves the corresponding output key unset.
package enrich

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/meur/umaviewer/internal/lookup"
	"github.com/meur/umaviewer/internal/models"
)

// Input keys of a character record
const (
	keyCardID         = "card_id"
	keyRaceClothID    = "race_cloth_id"
	keySkills         = "skill_array"
	keySkillID        = "skill_id"
	keyFactorIDs      = "factor_id_array"
	keyFactorInfo     = "factor_info_array"
	keyFactorID       = "factor_id"
	keyWinSaddleIDs   = "win_saddle_id_array"
	keyNicknameIDs    = "nickname_id_array"
	keySupportCards   = "support_card_list"
	keySupportCardID  = "support_card_id"
	keySuccession     = "succession_chara_array"
	keyRaceClothName  = "race_cloth_name_en"
	keySparksEnriched = "spark_array_enriched"
	keyWinsEnriched   = "win_saddle_array_enriched"
	keyNicksEnriched  = "nickname_array_enriched"
	keySkillName      = "skill_name_en"
	keySparkName      = "spark_name_en"
	keyStars          = "stars"
)

// Stats summarizes one enrichment run
type Stats struct {
	Characters     int
	WithNames      int // characters that gained at least one key
	WithSkillNames int // characters with at least one named skill
}

// Characters enriches every record in place
func Characters(records []any, r *lookup.Resolver) Stats {
	stats := Stats{Characters: len(records)}
	for _, rec := range records {
		char, ok := rec.(map[string]any)
		if !ok {
			continue
		}
		before := len(char)
		Character(char, r)
		if len(char) > before {
			stats.WithNames++
		}
		if hasNamedSkill(char) {
			stats.WithSkillNames++
		}
	}
	return stats
}

// Character enriches a single record in place
func Character(char models.Record, r *lookup.Resolver) {
	if cardID, ok := intID(char[keyCardID]); ok {
		mergeChara(char, r.Character(cardID))
	}

	if clothID, ok := intID(char[keyRaceClothID]); ok {
		if name, ok := r.RaceCloth(clothID); ok {
			char[keyRaceClothName] = name
		}
	}

	for _, skill := range objects(char[keySkills]) {
		enrichSkill(skill, r)
	}

	if ids := list(char[keyFactorIDs]); len(ids) > 0 {
		sparks := make([]models.SparkEntry, 0, len(ids))
		for _, raw := range ids {
			entry := models.SparkEntry{SparkID: raw}
			if id, ok := intID(raw); ok {
				entry.Name, _ = r.SparkName(id)
				entry.Stars, _ = lookup.StarLevel(id)
			}
			sparks = append(sparks, entry)
		}
		char[keySparksEnriched] = sparks
	}

	for _, info := range objects(char[keyFactorInfo]) {
		enrichFactor(info, r, false)
	}

	if ids := list(char[keyWinSaddleIDs]); len(ids) > 0 {
		wins := make([]models.WinEntry, 0, len(ids))
		for _, raw := range ids {
			entry := models.WinEntry{SaddleID: raw}
			if id, ok := intID(raw); ok {
				entry.RaceName, _ = r.RaceTitle(id)
			}
			wins = append(wins, entry)
		}
		char[keyWinsEnriched] = wins
	}

	if ids := list(char[keyNicknameIDs]); len(ids) > 0 {
		nicks := make([]models.NicknameEntry, 0, len(ids))
		for _, raw := range ids {
			entry := models.NicknameEntry{NicknameID: raw}
			if id, ok := intID(raw); ok {
				entry.Name, _ = r.Nickname(id)
			}
			nicks = append(nicks, entry)
		}
		char[keyNicksEnriched] = nicks
	}

	for _, card := range objects(char[keySupportCards]) {
		if id, ok := intID(card[keySupportCardID]); ok {
			mergeSupportCard(card, r.SupportCard(id))
		}
	}

	// Parents get names and spark names but are not walked any deeper.
	for _, parent := range objects(char[keySuccession]) {
		cardID, ok := intID(parent[keyCardID])
		if !ok {
			continue
		}
		mergeChara(parent, r.Character(cardID))
		for _, info := range objects(parent[keyFactorInfo]) {
			enrichFactor(info, r, true)
		}
	}
}

func enrichSkill(skill models.Record, r *lookup.Resolver) {
	id, ok := intID(skill[keySkillID])
	if !ok {
		return
	}
	if name, ok := r.SkillName(id); ok {
		skill[keySkillName] = name
	}

	d, ok := r.SkillDetails(id)
	if !ok {
		return
	}
	skill["rarity"] = d.Rarity
	if !d.HasAlternative {
		return
	}
	skill["skill_type"] = d.SkillType
	skill["condition"] = d.Condition
	skill["effects"] = d.Effects
	skill["summary"] = d.Summary
	if d.DurationPer1000m != "" {
		skill["duration"] = d.DurationPer1000m
	}
}

func enrichFactor(info models.Record, r *lookup.Resolver, withStars bool) {
	id, ok := intID(info[keyFactorID])
	if !ok {
		return
	}
	if name, ok := r.SparkName(id); ok {
		info[keySparkName] = name
	}
	if withStars {
		if stars, ok := lookup.StarLevel(id); ok {
			info[keyStars] = stars
		}
	}
}

func mergeChara(rec models.Record, info models.CharaInfo) {
	setMissing(rec, "chara_name_en", info.CharaName)
	setMissing(rec, "costume_name_en", info.CostumeName)
	setMissing(rec, "card_name_en", info.CardName)
}

func mergeSupportCard(card models.Record, info models.SupportCardInfo) {
	setString(card, "support_card_name_en", info.Name)
	setString(card, "support_card_title_en", info.Title)
	setString(card, "support_card_chara_en", info.Chara)
	setString(card, "support_card_type", info.Type)
}

func setMissing(rec models.Record, key, value string) {
	if value == "" {
		return
	}
	if _, exists := rec[key]; !exists {
		rec[key] = value
	}
}

func setString(rec models.Record, key, value string) {
	if value != "" {
		rec[key] = value
	}
}

func hasNamedSkill(char models.Record) bool {
	for _, skill := range objects(char[keySkills]) {
		if name, ok := skill[keySkillName].(string); ok && name != "" {
			return true
		}
	}
	return false
}

func list(v any) []any {
	items, _ := v.([]any)
	return items
}

func objects(v any) []models.Record {
	var out []models.Record
	for _, item := range list(v) {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

// intID reads a non-zero integral id from a decoded JSON value
func intID(v any) (int, bool) {
	var n int64
	switch x := v.(type) {
	case json.Number:
		i, err := x.Int64()
		if err != nil {
			f, ferr := x.Float64()
			if ferr != nil || f != math.Trunc(f) {
				return 0, false
			}
			i = int64(f)
		}
		n = i
	case float64:
		if x != math.Trunc(x) {
			return 0, false
		}
		n = int64(x)
	case int:
		n = int64(x)
	case int64:
		n = x
	case string:
		i, err := strconv.ParseInt(x, 10, 64)
		if err != nil {
			return 0, false
		}
		n = i
	default:
		return 0, false
	}
	if n == 0 {
		return 0, false
	}
	return int(n), true
}
