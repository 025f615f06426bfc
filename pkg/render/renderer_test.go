package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/wecco-dev/wecco/pkg/dom"
	"github.com/wecco-dev/wecco/pkg/placeholder"
)

func mustRender(t *testing.T, r *Renderer, n *dom.Node) string {
	t.Helper()
	html, err := r.RenderToString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return html
}

func TestRenderText(t *testing.T) {
	html := mustRender(t, NewRenderer(RendererConfig{}), dom.NewText("<b>&</b>"))
	if html != "&lt;b&gt;&amp;&lt;/b&gt;" {
		t.Errorf("got %q", html)
	}
}

func TestRenderElement(t *testing.T) {
	div := dom.NewElement("div")
	div.SetAttr("class", "container")
	div.SetAttr("title", `say "hi"`)
	h1 := div.AppendChild(dom.NewElement("h1"))
	h1.AppendChild(dom.NewText("Title"))
	div.SetProp("value", "not rendered")

	got := mustRender(t, NewRenderer(RendererConfig{}), div)
	want := `<div class="container" title="say &quot;hi&quot;"><h1>Title</h1></div>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderRoundTrip(t *testing.T) {
	src := `<ul id="l"><li class="a">one</li><li>two<br></li></ul><input type="checkbox" checked>`
	frag := dom.MustParseFragment(src)

	if got := mustRender(t, NewRenderer(RendererConfig{}), frag); got != src {
		t.Errorf("round trip = %q, want %q", got, src)
	}
}

func TestRenderBooleanAttrs(t *testing.T) {
	input := dom.NewElement("input")
	input.SetAttr("disabled", "disabled")
	input.SetAttr("readonly", "")
	input.SetAttr("value", "")

	got := mustRender(t, NewRenderer(RendererConfig{}), input)
	if got != `<input disabled readonly value="">` {
		t.Errorf("got %q", got)
	}
}

func TestRenderRawText(t *testing.T) {
	frag := dom.MustParseFragment(`<script>if (a < b) {}</script>`)
	got := mustRender(t, NewRenderer(RendererConfig{}), frag)
	if got != `<script>if (a < b) {}</script>` {
		t.Errorf("got %q", got)
	}
}

func TestRenderMarkers(t *testing.T) {
	p := dom.NewElement("p")
	p.AppendChild(dom.NewComment(placeholder.StartMarker(0)))
	p.AppendChild(dom.NewText("x"))
	p.AppendChild(dom.NewComment(placeholder.EndMarker(0)))
	p.AppendChild(dom.NewComment("keep"))

	kept := mustRender(t, NewRenderer(RendererConfig{}), p)
	if !strings.Contains(kept, "<!--wecco:0/start-->") {
		t.Errorf("markers should be written by default, got %q", kept)
	}

	stripped := mustRender(t, NewRenderer(RendererConfig{StripMarkers: true}), p)
	if stripped != "<p>x<!--keep--></p>" {
		t.Errorf("got %q, want %q", stripped, "<p>x<!--keep--></p>")
	}
}

func TestRenderShadowRoot(t *testing.T) {
	host := dom.NewElement("x-card")
	host.AttachShadow().AppendChild(dom.NewText("inside"))
	host.AppendChild(dom.NewText("light"))

	plain := mustRender(t, NewRenderer(RendererConfig{}), host)
	if plain != "<x-card>light</x-card>" {
		t.Errorf("got %q", plain)
	}

	withShadow := mustRender(t, NewRenderer(RendererConfig{IncludeShadow: true}), host)
	want := `<x-card><template shadowrootmode="open">inside</template>light</x-card>`
	if withShadow != want {
		t.Errorf("got %q, want %q", withShadow, want)
	}
}

func TestRenderPretty(t *testing.T) {
	frag := dom.MustParseFragment("<div>\n  <p>Hi <b>there</b></p>\n</div>")

	got := mustRender(t, NewRenderer(RendererConfig{Pretty: true}), frag)
	want := "<div>\n  <p>\n    Hi\n    <b>there</b>\n  </p>\n</div>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestInnerHTML(t *testing.T) {
	div := dom.NewElement("div")
	div.AppendChild(dom.NewElement("span"))
	div.AppendChild(dom.NewText("t"))

	got, err := NewRenderer(RendererConfig{}).InnerHTML(div)
	if err != nil {
		t.Fatal(err)
	}
	if got != "<span></span>t" {
		t.Errorf("got %q", got)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestRenderWriterError(t *testing.T) {
	err := NewRenderer(RendererConfig{}).RenderToWriter(failingWriter{}, dom.NewElement("div"))
	if err == nil || err.Error() != "write failed" {
		t.Errorf("err = %v, want write failed", err)
	}
}

func TestRenderToWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer(RendererConfig{}).RenderToWriter(&buf, dom.NewComment("c")); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "<!--c-->" {
		t.Errorf("got %q", buf.String())
	}
}
