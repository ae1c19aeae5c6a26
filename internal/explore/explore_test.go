package explore

import (
	"strings"
	"testing"
)

func TestTarget(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		basePath string
		href     string
		want     string
	}{
		{
			// Absolute href under the root path keeps the duplicated
			// slash the rewrite has always produced.
			name:     "absolute href at root",
			host:     "192.168.1.50",
			basePath: "/",
			href:     "/Devices",
			want:     "/explore/192.168.1.50//Devices",
		},
		{
			name:     "relative href at root",
			host:     "192.168.1.50",
			basePath: "/",
			href:     "Devices",
			want:     "/explore/192.168.1.50/Devices",
		},
		{
			name:     "relative href under nested path",
			host:     "192.168.1.50",
			basePath: "/Devices/000123",
			href:     "State",
			want:     "/explore/192.168.1.50/Devices/000123/State",
		},
		{
			name:     "base path already has trailing slash",
			host:     "192.168.1.50",
			basePath: "/Devices/",
			href:     "000123",
			want:     "/explore/192.168.1.50/Devices/000123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Target(tt.host, tt.basePath, tt.href); got != tt.want {
				t.Errorf("Target() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRewrite(t *testing.T) {
	doc := map[string]any{
		"href": "/Devices",
		"Ident": map[string]any{
			"href": "Ident",
			"Name": "Oven",
		},
		"Items": []any{
			map[string]any{"href": "Items/1"},
			"plain string",
		},
		"Count": float64(2),
	}

	got, ok := Rewrite(doc, "192.168.1.50", "/").(map[string]any)
	if !ok {
		t.Fatal("Rewrite() did not return a map")
	}

	if got["href"] != "/explore/192.168.1.50//Devices" {
		t.Errorf("top-level href = %v, want /explore/192.168.1.50//Devices", got["href"])
	}

	ident := got["Ident"].(map[string]any)
	if ident["href"] != "/explore/192.168.1.50/Ident" {
		t.Errorf("nested href = %v, want /explore/192.168.1.50/Ident", ident["href"])
	}
	if ident["Name"] != "Oven" {
		t.Errorf("non-href field changed: %v", ident["Name"])
	}

	items := got["Items"].([]any)
	item := items[0].(map[string]any)
	if item["href"] != "/explore/192.168.1.50/Items/1" {
		t.Errorf("href inside array = %v, want /explore/192.168.1.50/Items/1", item["href"])
	}
	if items[1] != "plain string" {
		t.Errorf("array scalar changed: %v", items[1])
	}

	if got["Count"] != float64(2) {
		t.Errorf("numeric field changed: %v", got["Count"])
	}
}

func TestRewrite_NonStringHref(t *testing.T) {
	doc := map[string]any{"href": float64(7)}

	got := Rewrite(doc, "192.168.1.50", "/").(map[string]any)
	if got["href"] != float64(7) {
		t.Errorf("non-string href changed: %v", got["href"])
	}
}

func TestRenderPage(t *testing.T) {
	doc := map[string]any{
		"href": "/explore/192.168.1.50//Devices",
		"Name": "<script>alert(1)</script>",
	}

	page := string(RenderPage("192.168.1.50", "/", doc))

	if !strings.Contains(page, `<a href="/explore/192.168.1.50//Devices">`) {
		t.Error("rendered page is missing the href anchor")
	}
	if strings.Contains(page, "<script>") {
		t.Error("rendered page contains unescaped markup")
	}
	if !strings.Contains(page, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Error("rendered page is missing the escaped value")
	}
	if strings.Contains(page, `\u003c`) || strings.Contains(page, `\u003e`) {
		t.Error("rendered page contains JSON unicode escapes instead of HTML entities")
	}
	if !strings.Contains(page, "<h1>192.168.1.50/</h1>") {
		t.Error("rendered page is missing the host/path heading")
	}
}

func TestRenderPage_SortedKeys(t *testing.T) {
	doc := map[string]any{"b": float64(1), "a": float64(2), "c": float64(3)}
	page := string(RenderPage("10.0.0.1", "/", doc))

	a := strings.Index(page, `"a"`)
	b := strings.Index(page, `"b"`)
	c := strings.Index(page, `"c"`)
	if a < 0 || b < 0 || c < 0 || !(a < b && b < c) {
		t.Errorf("object keys not rendered in sorted order: a=%d b=%d c=%d", a, b, c)
	}
}

func TestRenderRaw(t *testing.T) {
	page := string(RenderRaw("192.168.1.50", "/Log", "error: <bad>"))

	if !strings.Contains(page, "Response was not valid JSON.") {
		t.Error("raw page is missing the not-JSON notice")
	}
	if !strings.Contains(page, "error: &lt;bad&gt;") {
		t.Error("raw page did not escape the payload")
	}
}

func TestRenderNoContent(t *testing.T) {
	page := string(RenderNoContent("192.168.1.50", "/Devices/", 204))

	if !strings.Contains(page, "204 No Content") {
		t.Error("no-content page is missing the status text")
	}
}
