package errors

import (
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "structure",
			code:    "W001",
			wantMsg: "Structural inconsistency",
			wantCat: CategoryStructure,
		},
		{
			name:    "authoring",
			code:    "W002",
			wantMsg: "Attribute requires exactly one placeholder",
			wantCat: CategoryAuthoring,
		},
		{
			name:    "target",
			code:    "W004",
			wantMsg: "Render target not found",
			wantCat: CategoryTarget,
		},
		{
			name:    "unknown error code",
			code:    "W999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "file %q not found", "page.html")
	if err.Message != `file "page.html" not found` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Category != CategoryCLI {
		t.Errorf("Category = %q, want %q", err.Category, CategoryCLI)
	}
}

func TestWeccoError_Error(t *testing.T) {
	err := New("W004")
	if got, want := err.Error(), "W004: Render target not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err.WithDetail(`selector "#app"`)
	if got, want := err.Error(), `W004: Render target not found: selector "#app"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	bare := &WeccoError{Message: "test error"}
	if bare.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", bare.Error(), "test error")
	}
}

func TestWeccoError_WithLocation(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "card.html")
	content := "<div>\n  <p>${title}</p>\n  <p>${body\n</div>\n"
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err := New("W012").WithLocation(tmpFile, 3, 6)
	if err.Location == nil {
		t.Fatal("Location is nil")
	}
	if err.Location.Line != 3 || err.Location.Column != 6 {
		t.Errorf("Location = %v", err.Location)
	}
	if len(err.Context) == 0 {
		t.Error("Context should not be empty")
	}
}

func TestWeccoError_Wrap(t *testing.T) {
	sentinel := stderrors.New("target not found")
	err := New("W004").Wrap(sentinel)

	if !stderrors.Is(err, sentinel) {
		t.Error("errors.Is should see the wrapped sentinel")
	}
	if err.Unwrap() != sentinel {
		t.Error("Unwrap() should return wrapped error")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "W001") != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	we := New("W001")
	if FromError(we, "W002") != we {
		t.Error("FromError should return WeccoError as-is")
	}

	std := stderrors.New("boom")
	result := FromError(std, "W011")
	if result.Wrapped != std {
		t.Error("standard error should be wrapped")
	}
	if result.Code != "W011" {
		t.Errorf("Code = %q, want W011", result.Code)
	}
}

func TestCode(t *testing.T) {
	inner := New("W007")
	outer := stderrors.Join(stderrors.New("context"), inner)
	if got := Code(inner); got != "W007" {
		t.Errorf("Code(inner) = %q", got)
	}
	if got := Code(stderrors.New("plain")); got != "" {
		t.Errorf("Code(plain) = %q, want empty", got)
	}
	// Join does not implement the single Unwrap, so Code stops there.
	if got := Code(outer); got != "" {
		t.Errorf("Code(joined) = %q, want empty", got)
	}
}

func TestLocation_String(t *testing.T) {
	tests := []struct {
		name string
		loc  *Location
		want string
	}{
		{name: "nil location", loc: nil, want: ""},
		{name: "with column", loc: &Location{File: "a.html", Line: 10, Column: 5}, want: "a.html:10:5"},
		{name: "without column", loc: &Location{File: "a.html", Line: 10}, want: "a.html:10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.loc.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	warn := New("W002").WithDetail(`attribute "?disabled" has 2 placeholders`).Format()
	if !strings.Contains(warn, "WARNING W002: Attribute requires exactly one placeholder") {
		t.Errorf("warning header missing: %q", warn)
	}
	if !strings.Contains(warn, "Hint: ") {
		t.Errorf("hint missing: %q", warn)
	}

	fatal := New("W004").Format()
	if !strings.Contains(fatal, "ERROR W004: Render target not found") {
		t.Errorf("error header missing: %q", fatal)
	}

	compact := New("W004").FormatCompact()
	if compact != "W004: Render target not found" {
		t.Errorf("FormatCompact() = %q", compact)
	}

	js, err := json.Marshal(New("W010"))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(js), `"code":"W010"`) || !strings.Contains(string(js), `"category":"config"`) {
		t.Errorf("MarshalJSON() = %s", js)
	}
}

func TestFormatExcerpt(t *testing.T) {
	DisableColors()
	defer EnableColors()

	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte("<p>\n${broken\n</p>\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	e := New("W012").WithLocation(path, 2, 3)
	if e.ContextLine != 1 || len(e.Context) != 3 {
		t.Fatalf("context = %d %q, want 3 lines from line 1", e.ContextLine, e.Context)
	}
	out := e.Format()
	if !strings.Contains(out, ">    2 | ${broken") {
		t.Errorf("error line not marked: %q", out)
	}
	if !strings.Contains(out, " |   ^") {
		t.Errorf("caret missing: %q", out)
	}

	compact := e.FormatCompact()
	if compact != path+":2:3: W012: "+e.Message {
		t.Errorf("FormatCompact() = %q", compact)
	}
}
