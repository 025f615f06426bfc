package dom

import "testing"

func TestQuerySelector(t *testing.T) {
	root := NewElement("div")
	root.AppendChild(MustParseFragment(
		`<ul id="list"><li class="item done">a</li><li class="item" data-k="2">b</li></ul><p>c</p>`,
	))

	tests := []struct {
		sel  string
		want string
	}{
		{"#list", "ul"},
		{"li.item", "a"},
		{".item.done", "a"},
		{"[data-k]", "b"},
		{"li[data-k=2]", "b"},
		{`li[data-k="2"]`, "b"},
		{"p, li", "a"},
	}
	for _, tt := range tests {
		t.Run(tt.sel, func(t *testing.T) {
			n, err := root.QuerySelector(tt.sel)
			if err != nil {
				t.Fatalf("QuerySelector() error = %v", err)
			}
			if n == nil {
				t.Fatal("no match")
			}
			got := n.Tag()
			if got == "li" {
				got = n.TextContent()
			}
			if got != tt.want {
				t.Errorf("match = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuerySelectorAll(t *testing.T) {
	root := MustParseFragment(`<li class="x"></li><div><li class="x"></li></div><li></li>`)
	all, err := root.QuerySelectorAll("li.x")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("got %d matches, want 2", len(all))
	}
}

func TestQuerySelectorSkipsShadowRoots(t *testing.T) {
	root := NewElement("div")
	host := root.AppendChild(NewElement("x-host"))
	host.AttachShadow().AppendChild(NewElement("span"))

	n, err := root.QuerySelector("span")
	if err != nil {
		t.Fatal(err)
	}
	if n != nil {
		t.Error("QuerySelector should not enter shadow roots")
	}
}

func TestQuerySelectorInvalid(t *testing.T) {
	root := NewElement("div")
	for _, sel := range []string{"", "div >", ".", "[x", "a,"} {
		if _, err := root.QuerySelector(sel); err == nil {
			t.Errorf("QuerySelector(%q) expected error", sel)
		}
	}
}

func TestMatches(t *testing.T) {
	el := NewElement("button")
	el.SetAttr("class", "primary big")
	ok, err := el.Matches("button.big")
	if err != nil || !ok {
		t.Errorf("Matches() = %v, %v; want true, nil", ok, err)
	}
}
