// Package explore renders decrypted appliance JSON as a browsable HTML
// page for interactive discovery of API paths.
//
// The Miele API is hypermedia-shaped: resources carry "href" fields
// pointing at related resources on the appliance itself. Explore mode
// rewrites every such field into a link back through the bridge's own
// /explore/ route, so clicking through the tree keeps requests signed
// and decrypted.
//
// The rewrite is a plain tree-walk over the parsed JSON value (type
// switches over map, slice and string, no reflection), followed by an
// HTML rendering pass that pretty-prints the document and emits rewritten
// hrefs as anchors. All other content is HTML-escaped.
package explore
