package template

import (
	"log/slog"
	"strconv"
	"strings"
	"sync"

	werrors "github.com/wecco-dev/wecco/internal/errors"
	"github.com/wecco-dev/wecco/pkg/dom"
	"github.com/wecco-dev/wecco/pkg/metrics"
	"github.com/wecco-dev/wecco/pkg/placeholder"
)

// DebugMode enables debug logging of template compilation and binding
// extraction.
var DebugMode = false

var (
	pkgLogger   = slog.Default()
	pkgLoggerMu sync.RWMutex
)

// SetLogger sets the logger used for compile-time diagnostics.
func SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	pkgLoggerMu.Lock()
	pkgLogger = logger
	pkgLoggerMu.Unlock()
}

func compileLogger() *slog.Logger {
	pkgLoggerMu.RLock()
	defer pkgLoggerMu.RUnlock()
	return pkgLogger
}

// Template is a compiled, reusable description of a markup subtree with
// interpolation slots. Its identity is its pointer: Compile returns the same
// *Template for the same fragment sequence.
type Template struct {
	fragments []string
	markup    string
	slots     int

	once        sync.Once
	fragment    *dom.Node
	descriptors []Descriptor

	diagMu      sync.Mutex
	diagnostics []*werrors.WeccoError
}

var (
	registryMu sync.Mutex
	registry   = make(map[string]*Template)
)

// Compile compiles the static fragments of a template. A template with n
// interpolation slots has n+1 fragments. Calling Compile again with an equal
// fragment sequence returns the memoized *Template.
func Compile(fragments ...string) *Template {
	key := registryKey(fragments)

	registryMu.Lock()
	defer registryMu.Unlock()
	if t, ok := registry[key]; ok {
		return t
	}

	t := &Template{
		fragments: append([]string(nil), fragments...),
		slots:     max(len(fragments)-1, 0),
	}
	t.markup = t.compile()
	registry[key] = t
	metrics.Default().RecordCompile()
	if DebugMode {
		compileLogger().Debug("template compiled", "slots", t.slots, "markup", t.markup)
	}
	return t
}

// registryKey length-prefixes each fragment so distinct sequences never
// collide.
func registryKey(fragments []string) string {
	var b strings.Builder
	for _, f := range fragments {
		b.WriteString(strconv.Itoa(len(f)))
		b.WriteByte(':')
		b.WriteString(f)
	}
	return b.String()
}

// compile concatenates the fragments, inserting an attribute-value token or
// a pair of content markers for every slot depending on where the cursor
// stands.
func (t *Template) compile() string {
	var b strings.Builder
	var lx lexer
	for i, f := range t.fragments {
		b.WriteString(f)
		lx.feed(f)
		if i == len(t.fragments)-1 {
			break
		}

		var token string
		switch {
		case lx.inValue():
			token = placeholder.Encode(i)
		case lx.inText():
			token = "<!--" + placeholder.StartMarker(i) + "--><!--" + placeholder.EndMarker(i) + "-->"
		default:
			token = placeholder.Encode(i)
			t.report(werrors.New("W008").WithDetailf("slot %d is inside a %s", i, lx.state))
		}
		b.WriteString(token)
		lx.feed(token)
	}
	return strings.TrimSpace(b.String())
}

// report records and logs an authoring diagnostic.
func (t *Template) report(err *werrors.WeccoError) {
	t.diagMu.Lock()
	t.diagnostics = append(t.diagnostics, err)
	t.diagMu.Unlock()
	compileLogger().Warn("template authoring error",
		"code", err.Code,
		"error", err.Error())
}

// Markup returns the compiled markup with placeholder tokens.
func (t *Template) Markup() string { return t.markup }

// Slots returns the number of interpolation slots.
func (t *Template) Slots() int { return t.slots }

// Fragments returns a copy of the static fragments.
func (t *Template) Fragments() []string {
	return append([]string(nil), t.fragments...)
}

// Descriptors returns the binding descriptors, ordered by traversal index.
func (t *Template) Descriptors() []Descriptor {
	t.parse()
	return t.descriptors
}

// Fragment returns a fresh deep clone of the compiled fragment.
func (t *Template) Fragment() *dom.Node {
	t.parse()
	return t.fragment.Clone(true)
}

// Diagnostics returns the authoring errors found while compiling and
// extracting the template.
func (t *Template) Diagnostics() []*werrors.WeccoError {
	t.parse()
	t.diagMu.Lock()
	defer t.diagMu.Unlock()
	return append([]*werrors.WeccoError(nil), t.diagnostics...)
}

// parse parses the markup and extracts descriptors, once.
func (t *Template) parse() {
	t.once.Do(func() {
		frag, err := dom.ParseFragment(t.markup)
		if err != nil {
			t.report(werrors.New("W009").Wrap(err))
			frag = dom.NewFragment()
		}
		t.descriptors = extract(frag, t.report)
		t.fragment = frag
		if DebugMode {
			compileLogger().Debug("bindings extracted", "descriptors", len(t.descriptors))
		}
	})
}

// With binds values to the template's slots. Missing values are nil and
// extra values are ignored.
func (t *Template) With(values ...any) *Result {
	return &Result{Template: t, Values: values}
}

// Result is a template paired with the values for one render. It is the
// Updater form of a template.
type Result struct {
	Template *Template
	Values   []any
}

// value returns the value of slot i, or nil.
func (r *Result) value(i int) any {
	if i < 0 || i >= len(r.Values) {
		return nil
	}
	return r.Values[i]
}

// HTML compiles fragments (memoized) and binds values in one call.
//
//	var rowParts = []string{`<li class="`, `">`, `</li>`}
//
//	func row(class, text string) *template.Result {
//	    return template.HTML(rowParts, class, text)
//	}
//
// The fragment slice is the template's identity; declare it once per call
// site so repeated renders reuse the compiled template.
func HTML(fragments []string, values ...any) *Result {
	return Compile(fragments...).With(values...)
}
