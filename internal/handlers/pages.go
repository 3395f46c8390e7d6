package handlers

import (
	"html/template"
	"time"

	"github.com/romusmm/my-gift-box/internal/catalog"
	"github.com/romusmm/my-gift-box/internal/cms"
	"github.com/romusmm/my-gift-box/internal/nav"
	"github.com/romusmm/my-gift-box/internal/seo"
	"github.com/romusmm/my-gift-box/internal/viewstate"
)

// PageData is the view model for the shared layout and every page view.
type PageData struct {
	Brand     string
	Instagram string
	Year      int
	SEO       seo.Meta
	Analytics Analytics
	CSRFToken string

	State       viewstate.State
	EntranceKey string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	MenuOpen    bool

	// OOB marks the header for an out-of-band htmx swap.
	OOB bool

	Content  cms.ContentPage
	Kits     []KitCard
	Kit      *KitDetail
	Confetti ConfettiView
}

// Page helpers for templates.
func (p PageData) IsLanding() bool { return p.State.Page == viewstate.Landing }
func (p PageData) IsKits() bool    { return p.State.Page == viewstate.CatalogList }
func (p PageData) IsKit() bool     { return p.State.Page == viewstate.KitDetail }
func (p PageData) IsAbout() bool   { return p.State.Page == viewstate.About }
func (p PageData) IsHow() bool     { return p.State.Page == viewstate.HowItWorks }
func (p PageData) IsContact() bool { return p.State.Page == viewstate.Contact }

// ShowBreadcrumbs is true for the catalog views.
func (p PageData) ShowBreadcrumbs() bool {
	return p.State.Page == viewstate.CatalogList || p.State.Page == viewstate.KitDetail
}

// Site holds the collaborators every page view is built from.
type Site struct {
	Brand     string
	Instagram string
	SiteURL   string
	Currency  string
	Catalog   *catalog.Store
	Content   *cms.Library
	Analytics Analytics
}

// contentSlug maps a page to the markdown page carrying its copy.
func contentSlug(p viewstate.Page) string {
	switch p {
	case viewstate.CatalogList, viewstate.KitDetail:
		return "kits"
	case viewstate.About:
		return "about"
	case viewstate.HowItWorks:
		return "how"
	case viewstate.Contact:
		return "contact"
	default:
		return "landing"
	}
}

// Build renders the view model for s. Unknown kit ids resolve to the
// first kit; Build never fails.
func (site Site) Build(s viewstate.State, now time.Time) PageData {
	s = viewstate.Normalize(s)
	kit := site.Catalog.ResolveKitOrDefault(s.KitID)

	data := PageData{
		Brand:       site.Brand,
		Instagram:   site.Instagram,
		Year:        now.Year(),
		Analytics:   site.Analytics,
		State:       s,
		EntranceKey: viewstate.EntranceKey(s),
		Nav:         nav.Build(s),
		Breadcrumbs: nav.Breadcrumbs(s, kit),
		MenuOpen:    s.MobileMenuOpen,
		Content:     site.Content.Page(contentSlug(s.Page)),
	}

	switch s.Page {
	case viewstate.Landing, viewstate.CatalogList:
		data.Kits = KitCards(site.Catalog.Kits())
	case viewstate.KitDetail:
		d := BuildKitDetail(kit, data.Content.Note)
		data.Kit = &d
	}
	data.SEO = site.meta(s, data.Content, kit)
	return data
}

func (site Site) meta(s viewstate.State, page cms.ContentPage, kit catalog.Kit) seo.Meta {
	title := page.SEO.Title
	if title == "" {
		title = page.Title + " · " + site.Brand
	}
	desc := page.SEO.Description
	if desc == "" {
		desc = page.Summary
	}
	image := page.SEO.OGImage
	ld := []template.JS{
		seo.Script(seo.Organization(site.Brand, site.SiteURL, site.Instagram)),
		seo.Script(seo.WebSite(site.Brand, site.SiteURL)),
	}

	switch s.Page {
	case viewstate.Landing, viewstate.CatalogList:
		ld = append(ld, seo.Script(seo.ItemList(site.Catalog.Kits(), site.SiteURL, site.currency())))
	case viewstate.KitDetail:
		title = kit.Name + " · " + site.Brand
		desc = kit.Short
		image = kit.HeroImage
		product := seo.Product(kit, site.SiteURL, site.currency())
		product["@context"] = "https://schema.org"
		ld = append(ld, seo.Script(product))
	}

	canonical := ""
	if site.SiteURL != "" {
		canonical = site.SiteURL + "/"
	}
	return seo.Meta{
		Title:       title,
		Description: desc,
		Canonical:   canonical,
		OG: seo.OpenGraph{
			Title:       title,
			Description: desc,
			Image:       image,
			Type:        "website",
			URL:         canonical,
			SiteName:    site.Brand,
		},
		Twitter: seo.Twitter{Card: "summary_large_image", Image: image},
		JSONLD:  ld,
	}
}

func (site Site) currency() string {
	if site.Currency == "" {
		return "USD"
	}
	return site.Currency
}
