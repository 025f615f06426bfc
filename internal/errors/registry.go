package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	"W001": {
		Category:   CategoryStructure,
		Message:    "Structural inconsistency",
		Suggestion: "Avoid mutating nodes owned by a template between renders; the target is rebuilt.",
	},
	"W002": {
		Category:   CategoryAuthoring,
		Message:    "Attribute requires exactly one placeholder",
		Suggestion: `Boolean (?), event (@) and property (.) attributes must be written as name="${value}".`,
	},
	"W003": {
		Category:   CategoryAuthoring,
		Message:    "Unknown directive",
		Suggestion: "Known directives: capture, passive, once, stopPropagation, stopImmediatePropagation, preventDefault, omitEmpty.",
	},
	"W004": {
		Category: CategoryTarget,
		Message:  "Render target not found",
	},
	"W005": {
		Category:   CategoryComponent,
		Message:    "Invalid component name",
		Suggestion: `Component names must contain a dash, e.g. "todo-item".`,
	},
	"W006": {
		Category: CategoryComponent,
		Message:  "Component already defined",
	},
	"W007": {
		Category:   CategoryTarget,
		Message:    "Unsupported update value",
		Suggestion: "Render callbacks must return text, a node, a list, an update function or a template result.",
	},
	"W008": {
		Category:   CategoryAuthoring,
		Message:    "Placeholder in unsupported position",
		Suggestion: "Placeholders may appear in text content or inside an attribute value.",
	},
	"W009": {
		Category: CategoryAuthoring,
		Message:  "Markup parse error",
	},
	"W010": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
	},
	"W011": {
		Category: CategoryRuntime,
		Message:  "Recovered panic in scheduled task",
	},
	"W012": {
		Category: CategoryCLI,
		Message:  "Invalid template source",
	},
}
