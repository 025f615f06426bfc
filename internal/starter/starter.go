package starter

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	"github.com/wecco-dev/wecco/internal/errors"
)

// Config contains starter variables.
type Config struct {
	// ProjectName is the name of the project.
	ProjectName string
}

// Starter is a named set of example files.
type Starter struct {
	// Name is the starter name.
	Name string

	// Description describes the starter.
	Description string

	// Files is a map of relative paths to file contents.
	Files map[string]string
}

var starters = map[string]*Starter{
	"minimal": {
		Name:        "minimal",
		Description: "Configuration only",
		Files:       map[string]string{},
	},
	"page": {
		Name:        "page",
		Description: "A page template with a JSON data document",
		Files: map[string]string{
			"page.html": `<main>
  <h1 title="${title}">${title}</h1>
  <p>${intro}</p>
</main>
`,
			"data.json": `{
  "title": "{{.ProjectName}}",
  "intro": "Edit page.html or data.json and run wecco render page.html --data data.json"
}
`,
		},
	},
	"list": {
		Name:        "list",
		Description: "A list page with a YAML data document",
		Files: map[string]string{
			"list.html": `<section>
  <h2>${heading}</h2>
  <ul>${items}</ul>
  <footer>${footer.note}</footer>
</section>
`,
			"data.yaml": `heading: {{.ProjectName}}
items:
  - Write a template
  - Render it
  - Watch it update
footer:
  note: Rendered by wecco
`,
		},
	},
}

// Get returns a starter by name.
func Get(name string) (*Starter, error) {
	s, ok := starters[name]
	if !ok {
		return nil, errors.Newf(errors.CategoryCLI, "starter %q not found", name).
			WithSuggestion("Available starters: list, minimal, page")
	}
	return s, nil
}

// List returns all starter names in sorted order.
func List() []string {
	names := make([]string, 0, len(starters))
	for name := range starters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create writes the starter files into dir. Existing files are left
// untouched and reported in the returned list.
func (s *Starter) Create(dir string, cfg Config) (skipped []string, err error) {
	paths := make([]string, 0, len(s.Files))
	for p := range s.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, relPath := range paths {
		tmpl, err := template.New(relPath).Parse(s.Files[relPath])
		if err != nil {
			return skipped, errors.Newf(errors.CategoryCLI, "invalid starter file %s: %v", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return skipped, errors.Newf(errors.CategoryCLI, "starter execute error %s: %v", relPath, err)
		}

		fullPath := filepath.Join(dir, relPath)
		if _, err := os.Stat(fullPath); err == nil {
			skipped = append(skipped, relPath)
			continue
		}
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return skipped, err
		}
		if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
			return skipped, err
		}
	}

	return skipped, nil
}
