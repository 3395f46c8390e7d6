package nav

import (
	"github.com/romusmm/my-gift-box/internal/catalog"
	"github.com/romusmm/my-gift-box/internal/viewstate"
)

// Item represents a top-level navigation item.
type Item struct {
	Page  viewstate.Page
	Label string
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Page   string
	Label  string
	Active bool
}

// Crumb represents a breadcrumb entry. Page is empty for the current view.
type Crumb struct {
	Page   string
	KitID  string
	Label  string
	Active bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Page: viewstate.Landing, Label: "Inicio"},
	{Page: viewstate.CatalogList, Label: "Kits"},
	{Page: viewstate.HowItWorks, Label: "Cómo funciona"},
	{Page: viewstate.About, Label: "Historia"},
	{Page: viewstate.Contact, Label: "Contacto"},
}

// Build renders navigation items with active state for s.
func Build(s viewstate.State) []RenderedItem {
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Page:   string(it.Page),
			Label:  it.Label,
			Active: viewstate.NavActive(s, it.Page),
		})
	}
	return items
}

// Label returns the navigation label of p, or "" when p is not in Main.
func Label(p viewstate.Page) string {
	for _, it := range Main {
		if it.Page == p {
			return it.Label
		}
	}
	return ""
}

// Breadcrumbs builds the trail for the current view.
// Rules:
// - Always start with Inicio
// - Kit detail nests under Kits and ends with the kit name
// - Landing has a single, active crumb
func Breadcrumbs(s viewstate.State, kit catalog.Kit) []Crumb {
	crumbs := []Crumb{{Page: string(viewstate.Landing), Label: Label(viewstate.Landing), Active: s.Page == viewstate.Landing}}
	switch s.Page {
	case viewstate.Landing:
		return crumbs
	case viewstate.KitDetail:
		crumbs = append(crumbs,
			Crumb{Page: string(viewstate.CatalogList), Label: Label(viewstate.CatalogList)},
			Crumb{KitID: kit.ID, Label: kit.Name, Active: true},
		)
	default:
		crumbs = append(crumbs, Crumb{Page: string(s.Page), Label: Label(s.Page), Active: true})
	}
	return crumbs
}
