// Package render serializes dom trees to HTML.
//
// It is the read side of the engine: tests, the CLI and debugging tools
// use it to observe what the template engine produced.
//
//   - Text and attribute values are escaped
//   - Void elements (input, br, img, etc.) have no closing tag
//   - Boolean attributes with empty values are written as a bare name
//   - script and style content is written verbatim
//   - Binding markers can be stripped for clean output
//   - Shadow roots can be written as declarative templates
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{StripMarkers: true})
//	html, err := renderer.RenderToString(node)
//
// To stream HTML to a writer:
//
//	err := renderer.RenderToWriter(w, node)
package render
