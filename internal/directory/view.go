package directory

import (
	"mentorlink-cli/internal/model"

	"golang.org/x/text/language"
)

// View keeps the three inputs of Derive and recomputes the projection whenever one changes.
type View struct {
	source []model.Mentor
	filter string
	sort   SortKey
	tag    language.Tag
	items  []model.Mentor
}

func NewView(tag language.Tag) View {
	return View{tag: tag, items: []model.Mentor{}}
}

func (v *View) SetSource(src []model.Mentor) {
	v.source = src
	v.recompute()
}

func (v *View) SetFilter(f string) {
	if f == v.filter {
		return
	}
	v.filter = f
	v.recompute()
}

func (v *View) SetSort(k SortKey) {
	if k == v.sort {
		return
	}
	v.sort = k
	v.recompute()
}

func (v View) Source() []model.Mentor { return v.source }
func (v View) Filter() string         { return v.filter }
func (v View) Sort() SortKey          { return v.sort }
func (v View) Items() []model.Mentor  { return v.items }
func (v View) Len() int               { return len(v.items) }

func (v *View) recompute() {
	v.items = Derive(v.source, v.filter, v.sort, v.tag)
}
