// Package viewstate holds the visitor's page state and the reducer that
// moves it between views.
package viewstate

// Page identifies one of the mutually exclusive views of the site.
type Page string

const (
	Landing     Page = "landing"
	CatalogList Page = "kits"
	KitDetail   Page = "kit"
	About       Page = "about"
	HowItWorks  Page = "how"
	Contact     Page = "contact"
)

// Pages lists every view in navigation order.
var Pages = []Page{Landing, CatalogList, KitDetail, About, HowItWorks, Contact}

// DefaultKitID is the selected kit before the visitor opens any kit.
const DefaultKitID = "KIT1"

// State is the per-visitor view state.
type State struct {
	Page           Page   `json:"page"`
	KitID          string `json:"kit,omitempty"`
	MobileMenuOpen bool   `json:"menu,omitempty"`
}

// Initial is the state of a new visitor.
func Initial() State {
	return State{Page: Landing, KitID: DefaultKitID}
}

// ParsePage maps form input to a Page. Unknown values map to Landing.
func ParsePage(s string) (Page, bool) {
	for _, p := range Pages {
		if string(p) == s {
			return p, true
		}
	}
	return Landing, false
}

// Valid reports whether p is a known page.
func (p Page) Valid() bool {
	_, ok := ParsePage(string(p))
	return ok
}

// ActionType enumerates the reducer inputs.
type ActionType int

const (
	ActionNavigate ActionType = iota + 1
	ActionOpenKit
	ActionToggleMenu
	ActionCloseMenu
)

// Action is a transition request issued by the shell or a page view.
type Action struct {
	Type  ActionType
	Page  Page
	KitID string
}

// Navigate requests a page without parameters.
func Navigate(p Page) Action { return Action{Type: ActionNavigate, Page: p} }

// OpenKit requests the kit detail view for id. Unknown ids are accepted.
func OpenKit(id string) Action { return Action{Type: ActionOpenKit, Page: KitDetail, KitID: id} }

// ToggleMenu flips the mobile menu.
func ToggleMenu() Action { return Action{Type: ActionToggleMenu} }

// CloseMenu closes the mobile menu.
func CloseMenu() Action { return Action{Type: ActionCloseMenu} }

// Reduce applies a to s. It never fails: invalid pages land on Landing and
// every navigation closes the mobile menu.
func Reduce(s State, a Action) State {
	s = normalize(s)
	switch a.Type {
	case ActionNavigate:
		p := a.Page
		if !p.Valid() {
			p = Landing
		}
		s.Page = p
		s.MobileMenuOpen = false
	case ActionOpenKit:
		s.Page = KitDetail
		s.KitID = a.KitID
		s.MobileMenuOpen = false
	case ActionToggleMenu:
		s.MobileMenuOpen = !s.MobileMenuOpen
	case ActionCloseMenu:
		s.MobileMenuOpen = false
	}
	return s
}

// normalize repairs state restored from a client cookie.
func normalize(s State) State {
	if !s.Page.Valid() {
		s.Page = Landing
	}
	return s
}

// Normalize is exported for callers that restore State from storage.
func Normalize(s State) State {
	if s.Page == "" && s.KitID == "" {
		return Initial()
	}
	return normalize(s)
}

// EntranceKey identifies a view instance. Two different kits in KitDetail
// yield different keys, so their entrance transition replays.
func EntranceKey(s State) string {
	if s.Page == KitDetail {
		return "kit-" + s.KitID
	}
	return string(s.Page)
}

// NavActive reports whether the navigation entry for target is highlighted.
func NavActive(s State, target Page) bool {
	if target == CatalogList {
		return s.Page == CatalogList || s.Page == KitDetail
	}
	return s.Page == target
}
