// Package template compiles markup with interpolation slots and applies it
// incrementally to dom trees.
//
// A template is written as static fragments around its slots:
//
//	var todoParts = []string{
//	    `<li class+omitEmpty="`, `"><input type="checkbox" ?checked="`,
//	    `" @change="`, `">`, `</li>`,
//	}
//
//	res := template.HTML(todoParts, class, done, onToggle, title)
//	err := template.Apply(target, res)
//
// Compile inserts a raw {{wecco:N}} token for slots inside attribute values
// and a pair of <!--wecco:N/start--><!--wecco:N/end--> comments for slots in
// content position. The compiled markup is parsed once and walked once to
// produce Descriptors.
//
// # Attribute sigils
//
//	?name="${v}"            boolean attribute, present when v is truthy
//	@name+directives="${v}" event listener
//	.name="${v}"            live property
//	name+omitEmpty="..."    attribute, removed when a slot value is nil
//
// Event directives are capture, passive, once, stopPropagation,
// stopImmediatePropagation and preventDefault.
//
// # Reuse
//
// A Renderer remembers, per target, the Instance it last applied. Applying
// the same template again pushes values into the existing bindings and
// skips every write whose value did not change. A different template, or a
// tree that was modified behind the engine's back, causes a full rebuild.
//
// Lists are reconciled by position, not by key.
package template
