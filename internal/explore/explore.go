package explore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"sort"
	"strings"
)

// hrefKey is the object field name the appliance uses for hypermedia
// links. Only fields literally named "href" are rewritten.
const hrefKey = "href"

// Rewrite walks a parsed JSON document and replaces the value of every
// string-valued "href" field with a link back through the bridge's
// explore route. Nested objects and arrays are walked recursively; maps
// are modified in place and the (possibly same) document is returned.
//
// Parameters:
//   - doc: Parsed JSON value (map[string]any / []any / scalars)
//   - host: Appliance IPv4 address being explored
//   - basePath: Device path of the current document, including leading slash
func Rewrite(doc any, host, basePath string) any {
	switch v := doc.(type) {
	case map[string]any:
		for key, val := range v {
			if key == hrefKey {
				if href, ok := val.(string); ok {
					v[key] = Target(host, basePath, href)
					continue
				}
			}
			v[key] = Rewrite(val, host, basePath)
		}
		return v
	case []any:
		for i, val := range v {
			v[i] = Rewrite(val, host, basePath)
		}
		return v
	default:
		return doc
	}
}

// Target builds the explore-route link for an href found under basePath.
//
// The href is appended to the current device path (given a trailing
// slash), including the duplicated slash an absolute href produces:
// href "/Devices" under path "/" becomes "/explore/192.168.1.50//Devices".
// Appliance hrefs are relative in practice; the absolute case keeps the
// historical form so bookmarked links keep working.
func Target(host, basePath, href string) string {
	base := basePath
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return "/explore/" + host + base + href
}

// RenderPage renders a rewritten JSON document as a browsable HTML page.
//
// The document is pretty-printed inside a <pre> block with two-space
// indentation and sorted object keys. Values of "href" fields (already
// rewritten by Rewrite) are emitted as anchors; everything else is
// HTML-escaped.
func RenderPage(host, path string, doc any) []byte {
	var body bytes.Buffer
	renderValue(&body, doc, 0)
	return page(host+path, "<pre>"+body.String()+"</pre>")
}

// RenderRaw renders a non-JSON plaintext payload as an error page. The
// upstream gateway returns this with status 200 so the payload is still
// inspectable in a browser.
func RenderRaw(host, path, text string) []byte {
	content := fmt.Sprintf(
		"<p class=\"error\">Response was not valid JSON.</p><hr><pre>%s</pre>",
		escapeText(text),
	)
	return page(host+path, content)
}

// RenderNoContent renders the page shown for an empty appliance response.
func RenderNoContent(host, path string, status int) []byte {
	return page(host+path, fmt.Sprintf("<p>%d No Content</p>", status))
}

// page wraps rendered content in the explore-mode HTML shell.
func page(title, content string) []byte {
	var b bytes.Buffer
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"UTF-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(&b, "<title>Explore: %s</title>\n", escapeText(title))
	b.WriteString("<style>\n")
	b.WriteString("body { font-family: sans-serif; background-color: #f8f9fa; margin: 1em; color: #212529; }\n")
	b.WriteString("h1 { color: #495057; border-bottom: 1px solid #dee2e6; padding-bottom: 0.5em; }\n")
	b.WriteString("pre { white-space: pre-wrap; word-wrap: break-word; background-color: #ffffff; border: 1px solid #ced4da; padding: 1em; border-radius: 0.25rem; font-size: 0.9em; }\n")
	b.WriteString("a { color: #007bff; text-decoration: none; }\n")
	b.WriteString("a:hover { text-decoration: underline; }\n")
	b.WriteString(".error { color: #dc3545; }\n")
	b.WriteString("</style>\n</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", escapeText(title))
	b.WriteString(content)
	b.WriteString("\n</body>\n</html>\n")
	return b.Bytes()
}

// renderValue pretty-prints a JSON value as escaped HTML, linkifying
// href fields. Object keys are sorted for deterministic output.
func renderValue(b *bytes.Buffer, v any, indent int) {
	switch val := v.(type) {
	case map[string]any:
		if len(val) == 0 {
			b.WriteString("{}")
			return
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString("{\n")
		for i, k := range keys {
			writeIndent(b, indent+1)
			fmt.Fprintf(b, "%s: ", escapeText(mustMarshal(k)))
			if s, ok := val[k].(string); ok && k == hrefKey {
				fmt.Fprintf(b, "\"<a href=\"%s\">%s</a>\"", html.EscapeString(s), escapeText(s))
			} else {
				renderValue(b, val[k], indent+1)
			}
			if i < len(keys)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		writeIndent(b, indent)
		b.WriteString("}")
	case []any:
		if len(val) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for i, item := range val {
			writeIndent(b, indent+1)
			renderValue(b, item, indent+1)
			if i < len(val)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		writeIndent(b, indent)
		b.WriteString("]")
	default:
		b.WriteString(escapeText(mustMarshal(v)))
	}
}

func writeIndent(b *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

// mustMarshal renders a scalar as JSON source text. The encoder's HTML
// escaping is disabled so that escapeText is the only escaping layer;
// otherwise \u003c and \u003e would reach the page as < and > literals.
// Scalars from json.Unmarshal cannot fail to re-marshal.
func mustMarshal(v any) string {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("%q", fmt.Sprint(v))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// escaper escapes text for placement inside element content. Quotes stay
// literal so the rendered JSON remains readable; attribute values use
// html.EscapeString instead.
var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeText(s string) string {
	return escaper.Replace(s)
}
