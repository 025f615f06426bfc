package component

import "testing"

func TestKeyAttributeConversion(t *testing.T) {
	tests := []struct {
		key  string
		attr string
	}{
		{"title", "title"},
		{"fooBar", "foo-bar"},
		{"itemCountLimit", "item-count-limit"},
		{"aB", "a-b"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := KeyToAttribute(tt.key); got != tt.attr {
				t.Errorf("KeyToAttribute(%q) = %q, want %q", tt.key, got, tt.attr)
			}
			if got := AttributeToKey(tt.attr); got != tt.key {
				t.Errorf("AttributeToKey(%q) = %q, want %q", tt.attr, got, tt.key)
			}
		})
	}
}

func TestValidName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"todo-item", true},
		{"x-1", true},
		{"my-élément", true},
		{"todo", false},
		{"Todo-item", false},
		{"todo-Item", false},
		{"1-item", false},
		{"-item", false},
		{"", false},
		{"font-face", false},
		{"todo item", false},
	}
	for _, tt := range tests {
		if got := validName(tt.name); got != tt.want {
			t.Errorf("validName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
