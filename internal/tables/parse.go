package tables

import (
	"errors"
	"fmt"

	"github.com/meur/umaviewer/internal/models"
	"github.com/tidwall/gjson"
)

var (
	// ErrInvalidJSON is returned when a downloaded document does not parse
	ErrInvalidJSON = errors.New("invalid JSON")
	// ErrUnexpectedShape is returned when the top level is not an object
	ErrUnexpectedShape = errors.New("unexpected document shape")
)

func parseObject(raw []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, ErrInvalidJSON
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return gjson.Result{}, fmt.Errorf("%w: want object, got %s", ErrUnexpectedShape, root.Type)
	}
	return root, nil
}

// ParseSkillNames reads a skillnames.json document. Global tables hold ["Name"],
// JP tables hold ["JP Name", "EN Name"]; entries that do not fit kind are dropped.
func ParseSkillNames(raw []byte, kind models.SkillNameKind) (map[string]models.SkillName, error) {
	root, err := parseObject(raw)
	if err != nil {
		return nil, err
	}

	out := make(map[string]models.SkillName)
	root.ForEach(func(key, value gjson.Result) bool {
		if !value.IsArray() {
			return true
		}
		names := value.Array()
		switch kind {
		case models.KindOfficial:
			if len(names) >= 1 && names[0].Type == gjson.String && names[0].Str != "" {
				out[key.String()] = models.SkillName{Kind: models.KindOfficial, Official: names[0].Str}
			}
		case models.KindTranslated:
			if len(names) >= 2 && names[1].Type == gjson.String && names[1].Str != "" {
				out[key.String()] = models.SkillName{
					Kind:     models.KindTranslated,
					Japanese: names[0].String(),
					English:  names[1].Str,
				}
			}
		}
		return true
	})
	return out, nil
}

// ParseUmas reads an umas.json document:
// {"1001": {"name": ["JP", "EN"], "outfits": {"100101": "Costume"}}}
func ParseUmas(raw []byte) (map[string]models.Uma, error) {
	root, err := parseObject(raw)
	if err != nil {
		return nil, err
	}

	out := make(map[string]models.Uma)
	root.ForEach(func(key, value gjson.Result) bool {
		if !value.IsObject() {
			return true
		}
		var uma models.Uma
		names := value.Get("name").Array()
		if len(names) > 0 {
			uma.JapaneseName = names[0].String()
		}
		if len(names) > 1 {
			uma.EnglishName = names[1].String()
		}
		outfits := value.Get("outfits")
		if outfits.IsObject() {
			uma.Outfits = make(map[string]string)
			outfits.ForEach(func(cardID, costume gjson.Result) bool {
				if costume.Type == gjson.String && costume.Str != "" {
					uma.Outfits[cardID.String()] = costume.Str
				}
				return true
			})
		}
		out[key.String()] = uma
		return true
	})
	return out, nil
}

// ParseSkillData reads skill_data.json (rarity, alternatives, conditions, effects)
func ParseSkillData(raw []byte) (map[string]models.SkillDetail, error) {
	root, err := parseObject(raw)
	if err != nil {
		return nil, err
	}

	out := make(map[string]models.SkillDetail)
	root.ForEach(func(key, value gjson.Result) bool {
		if !value.IsObject() {
			return true
		}
		detail := models.SkillDetail{Rarity: int(value.Get("rarity").Int())}
		for _, alt := range value.Get("alternatives").Array() {
			a := models.Alternative{
				Condition:    alt.Get("condition").String(),
				BaseDuration: alt.Get("baseDuration").Float(),
			}
			for _, eff := range alt.Get("effects").Array() {
				a.Effects = append(a.Effects, models.SkillEffect{
					Type:     int(eff.Get("type").Int()),
					Modifier: eff.Get("modifier").Float(),
				})
			}
			detail.Alternatives = append(detail.Alternatives, a)
		}
		out[key.String()] = detail
		return true
	})
	return out, nil
}

// ParseTextData reads text_data_dict.json: {"<category>": {"<id>": "text"}}.
// Non-string values are skipped.
func ParseTextData(raw []byte) (models.TextData, error) {
	root, err := parseObject(raw)
	if err != nil {
		return nil, err
	}

	out := make(models.TextData)
	root.ForEach(func(category, entries gjson.Result) bool {
		if !entries.IsObject() {
			return true
		}
		texts := make(map[string]string)
		entries.ForEach(func(id, text gjson.Result) bool {
			if text.Type == gjson.String {
				texts[id.String()] = text.Str
			}
			return true
		})
		out[category.String()] = texts
		return true
	})
	return out, nil
}
