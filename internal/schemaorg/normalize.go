package schemaorg

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"cookbook/internal/models"
)

// importedTitle is the placeholder when a Recipe node has no usable name.
const importedTitle = "Imported Recipe"

// durationRe matches ISO-8601-style duration tokens as sites actually emit
// them: "PT" optionally followed by hours and/or minutes (PT1H30M, PT45M).
var durationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?`)

// yieldFillers are stripped from the servings text.
var yieldFillers = []string{"servings", "porções"}

// Normalize converts a matched Recipe node into a canonical draft. Every
// field is coerced defensively with an explicit fallback; no shape of input
// may cause an error or panic past this point.
func Normalize(node map[string]any, sourceURL string) models.RecipeDraft {
	return models.RecipeDraft{
		Title:        textOr(node["name"], importedTitle),
		PrepMinutes:  parseMinutes(firstText(node["totalTime"], node["prepTime"], node["cookTime"])),
		Servings:     normalizeYield(node["recipeYield"]),
		Instructions: joinInstructions(node["recipeInstructions"]),
		Ingredients:  ingredientDrafts(node["recipeIngredient"]),
		ImageRef:     imageRef(node["image"]),
		Source:       sourceURL,
		Notes:        authorNote(node["author"]),
	}
}

// ParseMinutes exposes duration parsing for callers that only need the
// PT(H)(M) arithmetic. Absent or non-matching input yields 0.
func ParseMinutes(iso string) int {
	return parseMinutes(iso)
}

func parseMinutes(iso string) int {
	if iso == "" {
		return 0
	}
	m := durationRe.FindStringSubmatch(iso)
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes
}

// textOr coerces v to a non-blank string or returns fallback.
func textOr(v any, fallback string) string {
	if s, ok := v.(string); ok {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

// firstText returns the first value that is a non-empty string.
func firstText(values ...any) string {
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// normalizeYield coerces recipeYield to text and strips known filler words.
// Sites emit it as a string ("4 servings"), a bare number, or a list.
func normalizeYield(v any) string {
	var text string
	switch y := v.(type) {
	case string:
		text = y
	case float64:
		text = fmt.Sprintf("%.0f", y)
	case []any:
		if len(y) > 0 {
			text = normalizeYield(y[0])
		}
	}
	lower := strings.ToLower(text)
	for _, filler := range yieldFillers {
		if idx := strings.Index(lower, filler); idx >= 0 {
			text = text[:idx] + text[idx+len(filler):]
			lower = strings.ToLower(text)
		}
	}
	return strings.TrimSpace(text)
}

// joinInstructions resolves recipeInstructions into newline-joined steps.
// A plain string is used verbatim; a list may mix strings and HowToStep
// objects with a text field. Unresolvable elements are skipped.
func joinInstructions(v any) string {
	switch inst := v.(type) {
	case string:
		return inst
	case []any:
		var steps []string
		for _, raw := range inst {
			switch step := raw.(type) {
			case string:
				steps = append(steps, step)
			case map[string]any:
				if text, ok := step["text"].(string); ok {
					steps = append(steps, text)
				}
			}
		}
		return strings.Join(steps, "\n")
	}
	return ""
}

// ingredientDrafts maps the recipeIngredient list to draft rows. Entries are
// expected as strings; anything else is skipped. Quantity/unit parsing from
// the free text is deliberately not attempted.
func ingredientDrafts(v any) []models.IngredientDraft {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	var drafts []models.IngredientDraft
	for _, raw := range list {
		s, ok := raw.(string)
		if !ok {
			continue
		}
		name := strings.TrimSpace(strings.ReplaceAll(s, "\u00a0", " "))
		if name == "" {
			continue
		}
		drafts = append(drafts, models.IngredientDraft{Name: name})
	}
	return drafts
}

// imageRef accepts the three shapes image appears in: a plain URL string, an
// ImageObject with a url field, or a list whose first element is either.
func imageRef(v any) string {
	switch img := v.(type) {
	case string:
		return img
	case map[string]any:
		if u, ok := img["url"].(string); ok {
			return u
		}
	case []any:
		if len(img) > 0 {
			return imageRef(img[0])
		}
	}
	return ""
}

// authorNote extracts a best-effort attribution line from the author field,
// which may be a Person object, a plain string, or a list of either.
func authorNote(v any) string {
	name := authorName(v)
	if name == "" {
		return ""
	}
	return "Author: " + name
}

func authorName(v any) string {
	switch a := v.(type) {
	case string:
		return strings.TrimSpace(a)
	case map[string]any:
		if n, ok := a["name"].(string); ok {
			return strings.TrimSpace(n)
		}
	case []any:
		if len(a) > 0 {
			return authorName(a[0])
		}
	}
	return ""
}
