// Package starter provides the example files written by 'wecco init'.
//
// # Available Starters
//
//   - minimal: no files besides the configuration
//   - page: a single page template with a JSON data document
//   - list: a list page with a YAML data document
//
// # Usage
//
//	s, err := starter.Get("page")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := s.Create(dir, starter.Config{ProjectName: "todo"}); err != nil {
//	    log.Fatal(err)
//	}
//
// # Variables
//
// Starter files support variable substitution:
//
//	{{.ProjectName}}     - Name of the project
package starter
