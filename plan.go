package adplan

import (
	"fmt"

	"github.com/google/uuid"
)

// ProducerVersion is the version of the application that wrote a plan.
type ProducerVersion struct {
	Major uint16
	Minor uint16
	Patch uint16
}

func (v ProducerVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ParseProducerVersion parses a version in the form "major.minor.patch".
func ParseProducerVersion(s string) (ProducerVersion, error) {
	var v ProducerVersion
	var rest string
	n, _ := fmt.Sscanf(s+" end", "%d.%d.%d %s", &v.Major, &v.Minor, &v.Patch, &rest)
	if n != 4 || rest != "end" {
		return ProducerVersion{}, NewValidationError("invalid version %q", s)
	}
	return v, nil
}

// Page is one sheet in a plan. The order of drawables is the paint order.
type Page struct {
	Name      string
	Drawables []*Drawable
}

// NewPage creates an empty page.
func NewPage(name string) *Page {
	return &Page{Name: name}
}

// Len returns the number of drawables on the page.
func (p *Page) Len() int {
	return len(p.Drawables)
}

// Add appends drawables on top of the existing ones.
func (p *Page) Add(d ...*Drawable) {
	p.Drawables = append(p.Drawables, d...)
}

// Find returns the drawable with the given ID.
func (p *Page) Find(id uuid.UUID) (*Drawable, error) {
	for _, d := range p.Drawables {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, NewNotFound("drawable %v", id)
}

// Remove deletes all drawables with one of the given IDs and returns the
// number of removed drawables.
func (p *Page) Remove(ids ...uuid.UUID) int {
	drop := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := p.Drawables[:0]
	for _, d := range p.Drawables {
		if !drop[d.ID] {
			kept = append(kept, d)
		}
	}
	n := len(p.Drawables) - len(kept)
	for i := len(kept); i < len(p.Drawables); i++ {
		p.Drawables[i] = nil
	}
	p.Drawables = kept
	return n
}

// HitTest returns the topmost drawable hit at pt, or nil.
func (p *Page) HitTest(pt Point, tolerance float32) *Drawable {
	for i := len(p.Drawables) - 1; i >= 0; i-- {
		if p.Drawables[i].HitTest(pt, tolerance) {
			return p.Drawables[i]
		}
	}
	return nil
}

// Clone creates a deep copy of the page.
func (p *Page) Clone() *Page {
	return &Page{Name: p.Name, Drawables: CloneAll(p.Drawables)}
}

// Render paints all drawables in order.
func (p *Page) Render(c Canvas) {
	for _, d := range p.Drawables {
		d.Render(c)
	}
}

// CloneAll deep copies a list of drawables.
func CloneAll(l []*Drawable) []*Drawable {
	if l == nil {
		return nil
	}
	c := make([]*Drawable, len(l))
	for i, d := range l {
		c[i] = d.Clone()
	}
	return c
}

// Plan is a saved document: an ordered list of pages plus metadata.
type Plan struct {
	Name     string
	Producer ProducerVersion
	// FormatVersion is the plan format version read from or written to
	// the binary representation.
	FormatVersion uint32
	Pages         []*Page
}

// NewPlan creates a plan with a single empty page.
// A single page is the minimum for a plan that can be edited.
func NewPlan(name string) *Plan {
	return &Plan{
		Name:  name,
		Pages: []*Page{NewPage("Page 1")},
	}
}

// NumPages returns the number of pages in the plan.
func (p *Plan) NumPages() int {
	return len(p.Pages)
}

// Page returns the page at index i.
func (p *Plan) Page(i int) (*Page, error) {
	if i < 0 || i >= len(p.Pages) {
		return nil, NewNotFound("page %d", i)
	}
	return p.Pages[i], nil
}

// Storage persists plans by name.
type Storage interface {
	// List returns the names of all stored plans.
	List() ([]string, error)
	// Load reads a plan. A partially decoded plan may be returned together
	// with an error describing what was skipped.
	Load(name string) (*Plan, error)
	// Save writes the plan under its name.
	Save(p *Plan) error
	// Delete removes a stored plan.
	Delete(name string) error
}
