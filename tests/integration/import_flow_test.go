package integration

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const importedPage = `<!DOCTYPE html>
<html>
<head>
<script type="application/ld+json">
{
	"@context": "https://schema.org",
	"@graph": [
		{"@type": "WebSite", "name": "Receitas da Vovó"},
		{
			"@type": "Recipe",
			"name": "Pudim de Leite",
			"author": {"@type": "Person", "name": "Vovó Alzira"},
			"totalTime": "PT1H15M",
			"recipeYield": "10 porções",
			"image": ["https://img.example/pudim.jpg"],
			"recipeIngredient": ["1 lata de leite condensado", "3 ovos", "1 xícara de açúcar"],
			"recipeInstructions": [
				{"@type": "HowToStep", "text": "Caramelize a forma."},
				{"@type": "HowToStep", "text": "Bata os ingredientes e asse em banho-maria."}
			]
		}
	]
}
</script>
</head>
<body><h1>Pudim de Leite</h1></body>
</html>`

func TestImportFlow(t *testing.T) {
	app := setupApp(t)
	token, _ := app.createUser(t)

	t.Run("imports a draft from a recipe page", func(t *testing.T) {
		site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, importedPage)
		}))
		defer site.Close()

		rec := app.request("POST", "/api/v1/import", fmt.Sprintf(`{"url": %q}`, site.URL), token)
		if rec.Code != http.StatusOK {
			t.Fatalf("import failed: %d %s", rec.Code, rec.Body.String())
		}

		draft := parseJSON(t, rec)["draft"].(map[string]interface{})
		if draft["title"] != "Pudim de Leite" {
			t.Errorf("title = %v", draft["title"])
		}
		if draft["prep_minutes"] != float64(75) {
			t.Errorf("prep_minutes = %v", draft["prep_minutes"])
		}
		if draft["servings"] != "10" {
			t.Errorf("servings = %v", draft["servings"])
		}
		if draft["image_ref"] != "https://img.example/pudim.jpg" {
			t.Errorf("image_ref = %v", draft["image_ref"])
		}
		if draft["notes"] != "Author: Vovó Alzira" {
			t.Errorf("notes = %v", draft["notes"])
		}
		if draft["source"] != site.URL {
			t.Errorf("source = %v", draft["source"])
		}
		ingredients := draft["ingredients"].([]interface{})
		if len(ingredients) != 3 {
			t.Fatalf("expected 3 ingredients, got %d", len(ingredients))
		}

		// Nothing was persisted; the draft is the whole result.
		listRec := app.request("GET", "/api/v1/recipes", "", token)
		if data := parseJSON(t, listRec)["data"].([]interface{}); len(data) != 0 {
			t.Errorf("expected no persisted recipes after import, got %d", len(data))
		}
	})

	t.Run("imported draft round-trips through recipe create", func(t *testing.T) {
		site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, importedPage)
		}))
		defer site.Close()

		rec := app.request("POST", "/api/v1/import", fmt.Sprintf(`{"url": %q}`, site.URL), token)
		if rec.Code != http.StatusOK {
			t.Fatalf("import failed: %d", rec.Code)
		}

		payload := fmt.Sprintf(`{
			"title": "Pudim de Leite",
			"prep_minutes": 75,
			"servings": "10",
			"instructions": "Caramelize a forma.\nBata os ingredientes e asse em banho-maria.",
			"source": %q,
			"ingredients": [{"name": "1 lata de leite condensado"}, {"name": "3 ovos"}]
		}`, site.URL)
		rec = app.request("POST", "/api/v1/recipes", payload, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create from draft failed: %d %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("page without recipe data", func(t *testing.T) {
		site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<html><body><h1>Sem dados estruturados</h1></body></html>")
		}))
		defer site.Close()

		rec := app.request("POST", "/api/v1/import", fmt.Sprintf(`{"url": %q}`, site.URL), token)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d %s", rec.Code, rec.Body.String())
		}
		if code := errorCode(t, rec); code != "SITE_INCOMPATIBLE" {
			t.Errorf("expected SITE_INCOMPATIBLE, got %q", code)
		}
	})

	t.Run("upstream server error", func(t *testing.T) {
		site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer site.Close()

		rec := app.request("POST", "/api/v1/import", fmt.Sprintf(`{"url": %q}`, site.URL), token)
		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
	})

	t.Run("invalid url scheme", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/import", `{"url": "ftp://example.com/receita"}`, token)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "IMPORT_URL_INVALID" {
			t.Errorf("expected IMPORT_URL_INVALID, got %q", code)
		}
	})
}
