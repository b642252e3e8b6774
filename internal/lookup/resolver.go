// Package lookup decodes the game's numeric ids into English names using the lookup
// tables. Every decoder returns (value, ok); a miss is never an error.
package lookup

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/meur/umaviewer/internal/config"
	"github.com/meur/umaviewer/internal/models"
	"github.com/meur/umaviewer/internal/tables"
	"github.com/meur/umaviewer/internal/terminology"
)

// Text categories of text_data_dict.json
const (
	catRaceCloth     = "14"
	catRaceName      = "36"
	catSupportFull   = "75"
	catSupportTitle  = "76"
	catSupportChara  = "77"
	catRaceTitle     = "111"
	catEpithet       = "130"
	catSparkName     = "147"
	catSupportBonus  = "151"
	uniqueSkillBase  = 110001
	skillSparkOffset = 2000000
)

// SparkStrategy maps a 7-digit skill spark id (2000000-2999999) to a skill id.
// Two encodings exist in the wild; both are kept and tried in order.
type SparkStrategy struct {
	Name    string
	SkillID func(sparkID int) int
}

var (
	// CompactStrategy drops the star digits: 2001203 -> 200123
	CompactStrategy = SparkStrategy{Name: config.StrategyCompact, SkillID: func(id int) int { return (id/100)*10 + id%10 }}
	// OffsetStrategy subtracts the category base: 2001203 -> 1203
	OffsetStrategy = SparkStrategy{Name: config.StrategyOffset, SkillID: func(id int) int { return id - skillSparkOffset }}
)

// StrategiesByName resolves configured strategy names
func StrategiesByName(names []string) ([]SparkStrategy, error) {
	out := make([]SparkStrategy, 0, len(names))
	for _, n := range names {
		switch n {
		case CompactStrategy.Name:
			out = append(out, CompactStrategy)
		case OffsetStrategy.Name:
			out = append(out, OffsetStrategy)
		default:
			return nil, fmt.Errorf("unknown spark strategy %q", n)
		}
	}
	return out, nil
}

// supportCardTypes is keyed by the first digit of a support card id
var supportCardTypes = map[byte]string{
	'1': "Speed",
	'2': "Stamina",
	'3': "Power",
	'4': "Guts",
	'5': "Wit", // Global uses "Wit", not "Wisdom"
	'6': "Friend",
	'7': "Group",
}

// Resolver decodes ids against one set of tables
type Resolver struct {
	tables     *tables.Tables
	strategies []SparkStrategy
}

// NewResolver creates a Resolver. Without strategies, compact then offset is used.
func NewResolver(t *tables.Tables, strategies ...SparkStrategy) *Resolver {
	if t == nil {
		t = &tables.Tables{}
	}
	if len(strategies) == 0 {
		strategies = []SparkStrategy{CompactStrategy, OffsetStrategy}
	}
	return &Resolver{tables: t, strategies: strategies}
}

func (r *Resolver) text(category string, id int) (string, bool) {
	return r.tables.Text.Text(category, strconv.Itoa(id))
}

// SkillName prefers the official Global name, then the JP table's English translation
func (r *Resolver) SkillName(id int) (string, bool) {
	key := strconv.Itoa(id)
	if n, ok := r.tables.SkillsGlobal[key]; ok && n.Display() != "" {
		return n.Display(), true
	}
	if n, ok := r.tables.SkillsJP[key]; ok && n.Display() != "" {
		return n.Display(), true
	}
	return "", false
}

// SparkName decodes a spark (factor) id. Id layout:
//
//	1XX-5XX        stats
//	11XX-12XX      ground aptitude
//	21XX-24XX      running style aptitude
//	31XX-34XX      distance aptitude
//	100XXXXX       unique skill sparks (8 digits)
//	100XXXX        race sparks (7 digits, XXXX = race program)
//	200XXXX        skill sparks (7 digits)
//	3000XXX        scenario sparks
func (r *Resolver) SparkName(id int) (string, bool) {
	// 10040201 -> 110001 + 040 = 110041
	if id >= 10000000 && id < 20000000 {
		digits := strconv.Itoa(id)
		if middle, err := strconv.Atoi(digits[2:5]); err == nil {
			if name, ok := r.SkillName(uniqueSkillBase + middle); ok {
				return name, true
			}
		}
	}

	// Global skill names need no terminology correction.
	if id >= 2000000 && id < 3000000 {
		for _, s := range r.strategies {
			if name, ok := r.SkillName(s.SkillID(id)); ok {
				return name, true
			}
		}
	}

	if name, ok := r.text(catSparkName, id); ok {
		return terminology.CorrectSpark(name), true
	}

	if id >= 1000000 && id < 10000000 {
		program := id / 100
		if name, ok := r.text(catRaceName, 1000+program%1000); ok {
			return terminology.CorrectSpark(name), true
		}
	}

	return "", false
}

// StarLevel reads the star count from the last two digits of a spark id
func StarLevel(sparkID int) (int, bool) {
	stars := sparkID % 100
	if stars >= 1 && stars <= 3 {
		return stars, true
	}
	return 0, false
}

// RaceTitle names a race win (saddle) with line breaks flattened
func (r *Resolver) RaceTitle(saddleID int) (string, bool) {
	name, ok := r.text(catRaceTitle, saddleID)
	if !ok {
		return "", false
	}
	name = strings.ReplaceAll(name, "\r\n", " ")
	name = strings.TrimSpace(strings.ReplaceAll(name, "\n", " "))
	return name, name != ""
}

// Nickname names an epithet. Ids 1-32 are support card bonuses (category 151),
// 33+ are earned titles (category 130).
func (r *Resolver) Nickname(id int) (string, bool) {
	if name, ok := r.text(catSupportBonus, id); ok {
		return terminology.CorrectNickname(name), true
	}
	if name, ok := r.text(catEpithet, id); ok {
		return terminology.CorrectNickname(name), true
	}
	return "", false
}

// RaceCloth names a racing outfit
func (r *Resolver) RaceCloth(id int) (string, bool) {
	return r.text(catRaceCloth, id)
}

// SupportCard collects the independent support card fields; any subset may be set
func (r *Resolver) SupportCard(id int) models.SupportCardInfo {
	var info models.SupportCardInfo
	info.Name, _ = r.text(catSupportFull, id)
	info.Title, _ = r.text(catSupportTitle, id)
	info.Chara, _ = r.text(catSupportChara, id)
	if digits := strconv.Itoa(id); digits != "" {
		info.Type = supportCardTypes[digits[0]]
	}
	return info
}

// Character resolves names from a card id (chara id = card id / 100). The Global table
// wins; the full table only fills fields that are still missing.
func (r *Resolver) Character(cardID int) models.CharaInfo {
	charaID := strconv.Itoa(cardID / 100)
	cardKey := strconv.Itoa(cardID)

	var info models.CharaInfo
	fill := func(umas map[string]models.Uma) {
		uma, ok := umas[charaID]
		if !ok {
			return
		}
		if info.CharaName == "" {
			info.CharaName = uma.DisplayName()
		}
		if info.CostumeName == "" {
			if costume, ok := uma.Outfits[cardKey]; ok {
				info.CostumeName = costume
				info.CardName = strings.TrimSpace(costume + " " + info.CharaName)
			}
		}
	}

	fill(r.tables.UmasGlobal)
	if info.CharaName == "" || info.CostumeName == "" {
		fill(r.tables.UmasFull)
	}
	return info
}
