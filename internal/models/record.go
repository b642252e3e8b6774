package models

// Record is one character entry of data.json. The extractor's shape is open-ended, so
// records stay generic and enrichment only adds keys to them.
type Record = map[string]interface{}

// SparkEntry is an element of spark_array_enriched
type SparkEntry struct {
	SparkID interface{} `json:"spark_id"`
	Name    string      `json:"spark_name_en,omitempty"`
	Stars   int         `json:"stars,omitempty"`
}

// WinEntry is an element of win_saddle_array_enriched
type WinEntry struct {
	SaddleID interface{} `json:"saddle_id"`
	RaceName string      `json:"race_name_en,omitempty"`
}

// NicknameEntry is an element of nickname_array_enriched
type NicknameEntry struct {
	NicknameID interface{} `json:"nickname_id"`
	Name       string      `json:"nickname_name_en,omitempty"`
}

// Effect is a skill effect with its display string
type Effect struct {
	Type     int     `json:"type"`
	TypeName string  `json:"type_name"`
	Modifier float64 `json:"modifier"`
	Readable string  `json:"readable"`
}

// SkillDetails is what enrichment derives from a skill_data.json entry.
// Empty strings mean "not available" and are never written out.
type SkillDetails struct {
	Rarity           string
	Condition        string
	DurationPer1000m string
	Effects          []Effect
	SkillType        string
	Summary          string
	HasAlternative   bool
}

// SupportCardInfo holds the optional support card fields
type SupportCardInfo struct {
	Name  string `json:"support_card_name_en,omitempty"`
	Title string `json:"support_card_title_en,omitempty"`
	Chara string `json:"support_card_chara_en,omitempty"`
	Type  string `json:"support_card_type,omitempty"`
}

// CharaInfo holds the optional character/costume fields
type CharaInfo struct {
	CharaName   string `json:"chara_name_en,omitempty"`
	CostumeName string `json:"costume_name_en,omitempty"`
	CardName    string `json:"card_name_en,omitempty"`
}
