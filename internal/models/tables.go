package models

// SkillNameKind tags which shape a skill-name table entry was loaded from
type SkillNameKind int

const (
	// KindOfficial is a Global entry: ["Official Name"]
	KindOfficial SkillNameKind = iota
	// KindTranslated is a JP entry carrying a community translation: ["JP Name", "EN Name"]
	KindTranslated
)

// SkillName is a validated skill-name table entry
type SkillName struct {
	Kind     SkillNameKind `json:"kind"`
	Official string        `json:"official,omitempty"`
	Japanese string        `json:"japanese,omitempty"`
	English  string        `json:"english,omitempty"`
}

// Display returns the English name for the entry's kind
func (n SkillName) Display() string {
	if n.Kind == KindTranslated {
		return n.English
	}
	return n.Official
}

// Uma is a character entry from an umas.json table
type Uma struct {
	JapaneseName string            `json:"name_jp"`
	EnglishName  string            `json:"name_en"`
	Outfits      map[string]string `json:"outfits"` // card id -> costume name
}

// DisplayName prefers the English name and falls back to the Japanese one
func (u Uma) DisplayName() string {
	if u.EnglishName != "" {
		return u.EnglishName
	}
	return u.JapaneseName
}

// SkillDetail is a skill_data.json entry
type SkillDetail struct {
	Rarity       int           `json:"rarity"`
	Alternatives []Alternative `json:"alternatives"`
}

// Alternative is one activation variant of a skill
type Alternative struct {
	Condition    string        `json:"condition"`
	BaseDuration float64       `json:"baseDuration"` // ms per 1000m of race
	Effects      []SkillEffect `json:"effects"`
}

// SkillEffect is a raw effect as stored in skill_data.json
type SkillEffect struct {
	Type     int     `json:"type"`
	Modifier float64 `json:"modifier"`
}

// TextData maps a text category number to its id -> text table
type TextData map[string]map[string]string

// Text looks up a single entry
func (t TextData) Text(category, id string) (string, bool) {
	cat, ok := t[category]
	if !ok {
		return "", false
	}
	s, ok := cat[id]
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
