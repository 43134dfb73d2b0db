package schemaorg

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func page(blocks ...string) string {
	var b strings.Builder
	b.WriteString("<html><head><title>x</title>")
	for _, block := range blocks {
		b.WriteString(`<script type="application/ld+json">`)
		b.WriteString(block)
		b.WriteString(`</script>`)
	}
	b.WriteString("</head><body><p>hello</p></body></html>")
	return b.String()
}

func TestExtractRecipe(t *testing.T) {
	t.Run("top_level_object", func(t *testing.T) {
		node, err := ExtractRecipe(page(`{"@type":"Recipe","name":"Bolo de Cenoura"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if node["name"] != "Bolo de Cenoura" {
			t.Errorf("expected name 'Bolo de Cenoura', got %v", node["name"])
		}
	})

	t.Run("nested_in_graph", func(t *testing.T) {
		block := `{"@context":"https://schema.org","@graph":[
			{"@type":"WebSite","name":"site"},
			{"@type":"Recipe","name":"Pão de Queijo"}]}`
		node, err := ExtractRecipe(page(block))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if node["name"] != "Pão de Queijo" {
			t.Errorf("expected graph recipe, got %v", node["name"])
		}
	})

	t.Run("type_as_list", func(t *testing.T) {
		node, err := ExtractRecipe(page(`{"@type":["NewsArticle","Recipe"],"name":"Feijoada"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if node["name"] != "Feijoada" {
			t.Errorf("expected list-typed recipe, got %v", node["name"])
		}
	})

	t.Run("top_level_array", func(t *testing.T) {
		node, err := ExtractRecipe(page(`[{"@type":"WebPage"},{"@type":"Recipe","name":"Moqueca"}]`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if node["name"] != "Moqueca" {
			t.Errorf("expected array recipe, got %v", node["name"])
		}
	})

	t.Run("first_match_in_document_order_wins", func(t *testing.T) {
		node, err := ExtractRecipe(page(
			`{"@type":"Recipe","name":"first"}`,
			`{"@type":"Recipe","name":"second"}`,
		))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if node["name"] != "first" {
			t.Errorf("expected first recipe, got %v", node["name"])
		}
	})

	t.Run("malformed_sibling_is_skipped", func(t *testing.T) {
		node, err := ExtractRecipe(page(
			`{"@type":"Recipe","name":"broken`,
			`{"@type":"Recipe","name":"valid"}`,
		))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if node["name"] != "valid" {
			t.Errorf("expected valid recipe after malformed block, got %v", node["name"])
		}
	})

	t.Run("no_recipe_block", func(t *testing.T) {
		_, err := ExtractRecipe(page(`{"@type":"NewsArticle","name":"not a recipe"}`))
		if !errors.Is(err, ErrNoRecipe) {
			t.Fatalf("expected ErrNoRecipe, got %v", err)
		}
	})

	t.Run("no_ldjson_at_all", func(t *testing.T) {
		_, err := ExtractRecipe("<html><body><h1>plain page</h1></body></html>")
		if !errors.Is(err, ErrNoRecipe) {
			t.Fatalf("expected ErrNoRecipe, got %v", err)
		}
	})

	t.Run("depth_guard_bounds_adversarial_nesting", func(t *testing.T) {
		deep := `{"@type":"Recipe","name":"buried"}`
		for i := 0; i < maxDepth+10; i++ {
			deep = fmt.Sprintf(`{"@graph":%s}`, deep)
		}
		_, err := ExtractRecipe(page(deep))
		if !errors.Is(err, ErrNoRecipe) {
			t.Fatalf("expected ErrNoRecipe past depth guard, got %v", err)
		}
	})

	t.Run("shallow_graph_nesting_still_found", func(t *testing.T) {
		node, err := ExtractRecipe(page(`{"@graph":[{"@graph":[{"@type":"Recipe","name":"nested"}]}]}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if node["name"] != "nested" {
			t.Errorf("expected nested recipe, got %v", node["name"])
		}
	})
}
