package dom

import "testing"

func TestParseFragment(t *testing.T) {
	frag, err := ParseFragment(`<p class="a">Hello <b>world</b></p><!--note--><br>tail`)
	if err != nil {
		t.Fatalf("ParseFragment() error = %v", err)
	}
	if got := childTags(frag); got != "p,!note,br,#tail" {
		t.Errorf("top level = %q, want p,!note,br,#tail", got)
	}
	p := frag.FirstChild()
	if v, _ := p.Attr("class"); v != "a" {
		t.Errorf("class = %q, want a", v)
	}
	if got := childTags(p); got != "#Hello ,b" {
		t.Errorf("p children = %q, want %q", got, "#Hello ,b")
	}
}

func TestParseFragmentNoImpliedStructure(t *testing.T) {
	frag := MustParseFragment(`<li>one</li><li>two</li>`)
	if got := childTags(frag); got != "li,li" {
		t.Errorf("children = %q, want li,li", got)
	}
}

func TestParseFragmentVoidAndSelfClosing(t *testing.T) {
	frag := MustParseFragment(`<div><input type="text"><img src="x" /><span>s</span></div>`)
	div := frag.FirstChild()
	if got := childTags(div); got != "input,img,span" {
		t.Errorf("children = %q, want input,img,span", got)
	}
	if !IsVoid("input") || IsVoid("div") {
		t.Error("IsVoid misclassifies elements")
	}
}

func TestParseFragmentAttributeCase(t *testing.T) {
	frag := MustParseFragment(`<input .valueAsNumber="1" @click+preventDefault="x" ?Disabled="y">`)
	input := frag.FirstChild()
	attrs := input.Attrs()
	want := []string{".valueAsNumber", "@click+preventDefault", "?Disabled"}
	if len(attrs) != len(want) {
		t.Fatalf("got %d attributes, want %d", len(attrs), len(want))
	}
	for i, name := range want {
		if attrs[i].Name != name {
			t.Errorf("attr[%d] = %q, want %q", i, attrs[i].Name, name)
		}
	}
}

func TestParseFragmentDuplicateAttributes(t *testing.T) {
	frag := MustParseFragment(`<div id="a" id="b"></div>`)
	attrs := frag.FirstChild().Attrs()
	if len(attrs) != 1 || attrs[0].Value != "a" {
		t.Errorf("attrs = %v, want first id only", attrs)
	}
}

func TestParseFragmentStrayEndTag(t *testing.T) {
	frag := MustParseFragment(`<div>a</span>b</div>c`)
	if got := childTags(frag); got != "div,#c" {
		t.Errorf("children = %q, want div,#c", got)
	}
	if got := frag.FirstChild().TextContent(); got != "ab" {
		t.Errorf("div text = %q, want ab", got)
	}
}

func TestParseFragmentEntities(t *testing.T) {
	frag := MustParseFragment(`<a title="x &amp; y">1 &lt; 2</a>`)
	a := frag.FirstChild()
	if v, _ := a.Attr("title"); v != "x & y" {
		t.Errorf("title = %q, want %q", v, "x & y")
	}
	if a.TextContent() != "1 < 2" {
		t.Errorf("text = %q, want %q", a.TextContent(), "1 < 2")
	}
}
