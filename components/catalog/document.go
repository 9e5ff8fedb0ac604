package catalog

import (
	"sort"
	"strings"
	"sync"

	"github.com/ettle/strcase"
)

// Selectors the dashboard layout exposes to the theme applier and scroll handler.
const (
	SelectorRoot                = ":root"
	SelectorBody                = "body"
	SelectorLogo                = "#logo"
	SelectorTitle               = "#title"
	SelectorProductTitle        = "#product-title"
	SelectorDescription         = "#description"
	SelectorGoBackButton        = "#go-back-button"
	SelectorGoBackButtonPortal  = "#go-back-button-portal"
	SelectorSwaggerLabel        = "#swagger-label"
	SelectorInternalLink        = "#internal-link"
	SelectorWizardButtonLabel   = "#onboard-wizard-button-label"
	SelectorRefreshButtonLabel  = "#refresh-api-button-label"
	SelectorTileLabel           = "#tileLabel"
	SelectorGridContainer       = "#grid-container"
	SelectorHeader              = ".header"
	SelectorAPIs                = ".apis"
	SelectorContent             = ".content"
	SelectorDashboardGridHeader = ".dashboard-grid-header"
	SelectorFilteringContainer  = ".filtering-container"
)

// DefaultSelectors lists every element rendered by the dashboard templates.
func DefaultSelectors() []string {
	return []string{
		SelectorRoot,
		SelectorBody,
		SelectorLogo,
		SelectorTitle,
		SelectorProductTitle,
		SelectorDescription,
		SelectorGoBackButton,
		SelectorGoBackButtonPortal,
		SelectorSwaggerLabel,
		SelectorInternalLink,
		SelectorWizardButtonLabel,
		SelectorRefreshButtonLabel,
		SelectorTileLabel,
		SelectorGridContainer,
		SelectorHeader,
		SelectorAPIs,
		SelectorContent,
		SelectorDashboardGridHeader,
		SelectorFilteringContainer,
	}
}

// Element is a handle to a styled node of the document.
type Element struct {
	mu       sync.RWMutex
	selector string
	style    map[string]string
	classes  map[string]struct{}
	attrs    map[string]string
}

func newElement(selector string) *Element {
	return &Element{
		selector: selector,
		style:    map[string]string{},
		classes:  map[string]struct{}{},
		attrs:    map[string]string{},
	}
}

// Selector returns the selector the element was registered with.
func (e *Element) Selector() string { return e.selector }

// SetStyle sets an inline style property.
func (e *Element) SetStyle(property, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.style[property] = value
}

// RemoveStyle drops an inline style property.
func (e *Element) RemoveStyle(property string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.style, property)
}

// Style returns an inline style property.
func (e *Element) Style(property string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	value, ok := e.style[property]
	return value, ok
}

// AddClass adds a class name.
func (e *Element) AddClass(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.classes[name] = struct{}{}
}

// RemoveClass removes a class name.
func (e *Element) RemoveClass(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.classes, name)
}

// ToggleClass flips a class name and reports whether it is now present.
func (e *Element) ToggleClass(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.classes[name]; ok {
		delete(e.classes, name)
		return false
	}
	e.classes[name] = struct{}{}
	return true
}

// HasClass reports whether the class is present.
func (e *Element) HasClass(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.classes[name]
	return ok
}

// SetAttr sets an attribute such as src.
func (e *Element) SetAttr(name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.attrs[name] = value
}

// Attr returns an attribute value.
func (e *Element) Attr(name string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	value, ok := e.attrs[name]
	return value, ok
}

// InlineStyle renders the style map as a deterministic style attribute.
func (e *Element) InlineStyle() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if len(e.style) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.style))
	for key := range e.style {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var builder strings.Builder
	for _, key := range keys {
		value := e.style[key]
		if value == "" {
			continue
		}
		builder.WriteString(key)
		builder.WriteString(": ")
		builder.WriteString(value)
		builder.WriteString("; ")
	}
	return strings.TrimSpace(builder.String())
}

// ClassList renders the classes in sorted order.
func (e *Element) ClassList() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.classes))
	for name := range e.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, " ")
}

// Document is the explicit presentation model the theme applier mutates and
// the templates read. It replaces global document queries.
type Document struct {
	mu       sync.RWMutex
	title    string
	elements map[string]*Element
	order    []string
}

// NewDocument registers the given selectors; no selectors means DefaultSelectors.
func NewDocument(selectors ...string) *Document {
	if len(selectors) == 0 {
		selectors = DefaultSelectors()
	}
	doc := &Document{elements: make(map[string]*Element, len(selectors))}
	for _, selector := range selectors {
		doc.Register(selector)
	}
	return doc
}

// Register adds an element if it is not already present and returns it.
func (d *Document) Register(selector string) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	if el, ok := d.elements[selector]; ok {
		return el
	}
	el := newElement(selector)
	d.elements[selector] = el
	d.order = append(d.order, selector)
	return el
}

// Lookup returns the element for selector, if the layout has it.
func (d *Document) Lookup(selector string) (*Element, bool) {
	if d == nil {
		return nil, false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	el, ok := d.elements[selector]
	return el, ok
}

// All returns every element in registration order.
func (d *Document) All() []*Element {
	if d == nil {
		return nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*Element, 0, len(d.order))
	for _, selector := range d.order {
		out = append(out, d.elements[selector])
	}
	return out
}

// SetTitle sets the document title.
func (d *Document) SetTitle(title string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.title = title
}

// Title returns the document title.
func (d *Document) Title() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.title
}

// Styles maps template-friendly keys (go-back-button -> go_back_button) to
// inline styles, skipping unstyled elements.
func (d *Document) Styles() map[string]string {
	out := map[string]string{}
	for _, el := range d.All() {
		if style := el.InlineStyle(); style != "" {
			out[StyleKey(el.Selector())] = style
		}
	}
	return out
}

// Classes maps template-friendly keys to class lists.
func (d *Document) Classes() map[string]string {
	out := map[string]string{}
	for _, el := range d.All() {
		if classes := el.ClassList(); classes != "" {
			out[StyleKey(el.Selector())] = classes
		}
	}
	return out
}

// Attrs maps template-friendly keys to a single attribute value.
func (d *Document) Attrs(name string) map[string]string {
	out := map[string]string{}
	for _, el := range d.All() {
		if value, ok := el.Attr(name); ok && value != "" {
			out[StyleKey(el.Selector())] = value
		}
	}
	return out
}

// StyleKey converts a selector into the key used by templates.
func StyleKey(selector string) string {
	trimmed := strings.TrimLeft(selector, "#.:")
	return strcase.ToSnake(trimmed)
}
