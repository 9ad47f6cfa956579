package vision

import (
	"encoding/json"
	"fmt"
	"strings"
)

// unmarshalModelJSON decodes model output that may be wrapped in markdown
// code fences or surrounded by prose. Falls back to the outermost brace
// pair when the raw text does not parse.
func unmarshalModelJSON(text string, v any) error {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return fmt.Errorf("model response contains no JSON object")
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), v); err != nil {
		return fmt.Errorf("parse model response: %w", err)
	}
	return nil
}

// stringList accepts a JSON array of strings, tolerating a bare string or
// non-string array members the model sometimes emits.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var arr []any
	if err := json.Unmarshal(data, &arr); err == nil {
		out := make([]string, 0, len(arr))
		for _, v := range arr {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		*l = out
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if strings.TrimSpace(s) != "" {
			*l = []string{strings.TrimSpace(s)}
		} else {
			*l = nil
		}
		return nil
	}
	// Wrong type entirely, treat as absent.
	*l = nil
	return nil
}

// ParsePass1 decodes the first-pass analysis. Mistyped fields degrade to
// zero values instead of failing the whole item; an unparseable response
// is the only hard error.
func ParsePass1(text string) (Pass1Result, error) {
	var raw struct {
		Title       string                     `json:"title"`
		Description string                     `json:"description"`
		Tags        stringList                 `json:"tags"`
		Categories  stringList                 `json:"categories"`
		Descriptors map[string]json.RawMessage `json:"descriptors"`
		NSFW        bool                       `json:"nsfw"`
	}
	if err := unmarshalModelJSON(text, &raw); err != nil {
		return Pass1Result{}, err
	}

	result := Pass1Result{
		Title:       strings.TrimSpace(raw.Title),
		Description: strings.TrimSpace(raw.Description),
		Tags:        raw.Tags,
		Categories:  raw.Categories,
		NSFW:        raw.NSFW,
	}
	if len(raw.Descriptors) > 0 {
		result.Descriptors = make(map[string][]string, len(raw.Descriptors))
		for dtype, blob := range raw.Descriptors {
			var names stringList
			if err := json.Unmarshal(blob, &names); err != nil || len(names) == 0 {
				continue
			}
			result.Descriptors[strings.ToLower(strings.TrimSpace(dtype))] = names
		}
	}
	return result, nil
}

// ParsePass2 decodes the nested second-pass review into the flat result the
// pipeline works with. Missing sections come back as zero values; the
// quality gate downstream decides whether the result is usable.
func ParsePass2(text string) (Pass2Result, error) {
	var raw struct {
		TagsReview struct {
			Keep      stringList `json:"keep"`
			Remove    stringList `json:"remove"`
			Add       stringList `json:"add"`
			Reasoning string     `json:"reasoning"`
		} `json:"tags_review"`
		DescriptionReview struct {
			Quality             string     `json:"quality"`
			ImprovedDescription string     `json:"improved_description"`
			Reasons             stringList `json:"reasons"`
		} `json:"description_review"`
	}
	if err := unmarshalModelJSON(text, &raw); err != nil {
		return Pass2Result{}, err
	}

	return Pass2Result{
		Keep:                raw.TagsReview.Keep,
		Remove:              raw.TagsReview.Remove,
		Add:                 raw.TagsReview.Add,
		Reasoning:           strings.TrimSpace(raw.TagsReview.Reasoning),
		Quality:             strings.TrimSpace(strings.ToLower(raw.DescriptionReview.Quality)),
		ImprovedDescription: strings.TrimSpace(raw.DescriptionReview.ImprovedDescription),
		Reasons:             raw.DescriptionReview.Reasons,
	}, nil
}
