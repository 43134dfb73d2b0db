// Package schemaorg extracts and normalizes schema.org/Recipe structured
// data embedded in arbitrary HTML. Input is untrusted: malformed JSON-LD
// blocks, unexpected field shapes, and adversarial nesting must degrade to
// a skipped block or a field fallback, never a panic.
package schemaorg

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoRecipe reports that no schema.org/Recipe node was found. This is an
// expected outcome for incompatible sites, not a failure.
var ErrNoRecipe = errors.New("no schema.org/Recipe node found")

// maxDepth bounds the recursive descent so that deeply nested @graph/array
// structures in hostile pages cannot blow the stack.
const maxDepth = 32

// ExtractRecipe scans html for JSON-LD script blocks and returns the first
// node, in document order, whose @type denotes a Recipe. Each block is
// decoded independently: a block that fails to parse is skipped and never
// prevents a later valid block from matching.
func ExtractRecipe(html string) (map[string]any, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var match map[string]any
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var block any
		if err := json.Unmarshal([]byte(s.Text()), &block); err != nil {
			return true // malformed block, keep scanning
		}
		if node := findRecipeNode(block, 0); node != nil {
			match = node
			return false
		}
		return true
	})

	if match == nil {
		return nil, ErrNoRecipe
	}
	return match, nil
}

// findRecipeNode walks a decoded JSON value looking for an object whose
// @type contains "Recipe". Objects are checked directly, @graph values and
// list elements are recursed in order; the first match wins.
func findRecipeNode(v any, depth int) map[string]any {
	if depth > maxDepth {
		return nil
	}

	switch node := v.(type) {
	case map[string]any:
		if isRecipeType(node["@type"]) {
			return node
		}
		if graph, ok := node["@graph"]; ok {
			return findRecipeNode(graph, depth+1)
		}
	case []any:
		for _, item := range node {
			if found := findRecipeNode(item, depth+1); found != nil {
				return found
			}
		}
	}
	return nil
}

// isRecipeType reports whether a @type value denotes a Recipe. The field may
// be a scalar ("Recipe") or a list (["Recipe","NewsArticle"]).
func isRecipeType(t any) bool {
	switch v := t.(type) {
	case string:
		return strings.Contains(v, "Recipe")
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && strings.Contains(s, "Recipe") {
				return true
			}
		}
	}
	return false
}
