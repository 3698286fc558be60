// Package view holds the dashboard's view options, the current selection and
// the dispatch from a view id to the chart and cards it shows.
package view

// ID identifies one dashboard view.
type ID string

const (
	Balances   ID = "balances"
	Cumulative ID = "cumulative"
	Monthly    ID = "monthly"
	Comparison ID = "comparison"
	Risk       ID = "risk"
)

// Default is the view shown when the dashboard opens.
const Default = Balances

// Option is one button of the view bar.
type Option struct {
	ID    ID     `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// Options returns the view bar in display order.
func Options() []Option {
	return []Option{
		{ID: Balances, Label: "Monthly Balances"},
		{ID: Cumulative, Label: "Cumulative Performance"},
		{ID: Monthly, Label: "Monthly Performance"},
		{ID: Comparison, Label: "Strategy vs Gold Comparison"},
		{ID: Risk, Label: "Risk Metrics"},
	}
}

// Valid reports whether id is one of the five views.
func Valid(id ID) bool {
	return indexOf(id) >= 0
}

// Label returns the button label of id, or the id itself when unknown.
func Label(id ID) string {
	for _, o := range Options() {
		if o.ID == id {
			return o.Label
		}
	}
	return string(id)
}

func indexOf(id ID) int {
	for i, o := range Options() {
		if o.ID == id {
			return i
		}
	}
	return -1
}

// Selector owns the selected view id. It is not safe for concurrent use; the
// dashboard only touches it from its update loop.
type Selector struct {
	selected ID
}

// NewSelector starts on the default view.
func NewSelector() *Selector {
	return &Selector{selected: Default}
}

// Selected returns the current id, which may be unknown after Select.
func (s *Selector) Selected() ID {
	return s.selected
}

// Select stores id as given. Unknown ids are kept so the renderer can show
// its placeholder.
func (s *Selector) Select(id ID) {
	s.selected = id
}

// SelectIndex selects the i-th option; out of range indexes are ignored.
func (s *Selector) SelectIndex(i int) bool {
	opts := Options()
	if i < 0 || i >= len(opts) {
		return false
	}
	s.selected = opts[i].ID
	return true
}

// Index returns the position of the selected view or -1.
func (s *Selector) Index() int {
	return indexOf(s.selected)
}

// Next moves to the following option, wrapping around.
func (s *Selector) Next() {
	n := len(Options())
	s.SelectIndex((s.Index() + 1) % n)
}

// Prev moves to the preceding option, wrapping around.
func (s *Selector) Prev() {
	n := len(Options())
	i := s.Index()
	if i < 0 {
		i = 0
	}
	s.SelectIndex((i - 1 + n) % n)
}
