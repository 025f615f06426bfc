// Package errors provides structured, coded errors for wecco.
//
// Every problem the engine can report has a short code (e.g. "W001") that
// maps to a category, a one-line message and a longer explanation:
//
//   - structure: the live tree no longer matches the bindings that were
//     created for it (recovered by rebuilding the target)
//   - authoring: template markup that cannot be bound as written (the
//     offending binding is skipped)
//   - target: a render target that cannot be resolved (returned to callers)
//   - component: invalid or conflicting component definitions
//   - config / cli: tooling errors
//
// # Usage
//
//	err := errors.New("W004").
//	    WithDetail(`selector "#app" matched no node`).
//	    Wrap(template.ErrTargetNotFound)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR W004: Render target not found
//	//
//	//   selector "#app" matched no node
package errors
