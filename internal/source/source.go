// Package source reads template source files for the command line tool.
//
// A source file is markup with ${key} holes. Keys are dotted paths into a
// data document ("user.name", "items.0"). A literal "${" is written as
// "\${".
package source

import (
	"os"
	"strings"

	"github.com/wecco-dev/wecco/internal/errors"
	"github.com/wecco-dev/wecco/pkg/template"
)

// Source is a parsed template source.
type Source struct {
	File      string
	Fragments []string
	Keys      []string
}

// ReadFile parses the source file at path.
func ReadFile(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("W012").WithDetail(err.Error()).Wrap(err)
	}
	return Parse(path, string(data))
}

// Parse splits src into literal fragments and hole keys. file is only
// used for error locations.
func Parse(file, src string) (*Source, error) {
	s := &Source{File: file}
	var lit strings.Builder
	line, col := 1, 1
	advance := func(text string) {
		for _, r := range text {
			if r == '\n' {
				line, col = line+1, 1
			} else {
				col++
			}
		}
	}

	for i := 0; i < len(src); {
		switch {
		case strings.HasPrefix(src[i:], `\${`):
			lit.WriteString("${")
			advance(`\${`)
			i += 3
		case strings.HasPrefix(src[i:], "${"):
			end := strings.IndexByte(src[i+2:], '}')
			if end < 0 {
				return nil, errors.New("W012").
					WithDetail("unterminated ${ hole").
					WithLocation(file, line, col)
			}
			key := strings.TrimSpace(src[i+2 : i+2+end])
			if !validKey(key) {
				return nil, errors.New("W012").
					WithDetailf("invalid hole key %q", key).
					WithLocation(file, line, col).
					WithSuggestion("Keys are dotted paths such as user.name or items.0")
			}
			s.Fragments = append(s.Fragments, lit.String())
			s.Keys = append(s.Keys, key)
			lit.Reset()
			advance(src[i : i+3+end])
			i += 3 + end
		default:
			lit.WriteByte(src[i])
			advance(src[i : i+1])
			i++
		}
	}
	s.Fragments = append(s.Fragments, lit.String())
	return s, nil
}

// Template returns the compiled template of s.
func (s *Source) Template() *template.Template {
	return template.Compile(s.Fragments...)
}

// Bind resolves every key of s against data. Missing keys resolve to nil.
func (s *Source) Bind(data any) *template.Result {
	values := make([]any, len(s.Keys))
	for i, k := range s.Keys {
		values[i], _ = Lookup(data, k)
	}
	return s.Template().With(values...)
}

// Missing returns the keys of s that do not resolve in data.
func (s *Source) Missing(data any) []string {
	var missing []string
	for _, k := range s.Keys {
		if _, ok := Lookup(data, k); !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

func validKey(key string) bool {
	if key == "" {
		return false
	}
	for _, seg := range strings.Split(key, ".") {
		if seg == "" {
			return false
		}
		for _, r := range seg {
			if !(r == '_' || r == '-' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
				return false
			}
		}
	}
	return true
}
