package seo

import (
	"html/template"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/romusmm/my-gift-box/internal/catalog"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Script marshals v for embedding inside <script type="application/ld+json">.
func Script(v any) template.JS {
	return template.JS(JSON(v))
}

// Organization returns a minimal Organization schema.
func Organization(name, url, instagram string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if instagram != "" {
		m["sameAs"] = []string{"https://www.instagram.com/" + trimAt(instagram)}
	}
	return m
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	return m
}

// Product returns a product schema payload with a single offer.
func Product(k catalog.Kit, siteURL, currency string) map[string]any {
	m := map[string]any{
		"@type":       "Product",
		"name":        k.Name,
		"description": k.Short,
		"sku":         k.ID,
		"offers": map[string]any{
			"@type":         "Offer",
			"price":         decimal(k.Price),
			"priceCurrency": currency,
			"availability":  "https://schema.org/InStock",
		},
	}
	if k.HeroImage != "" {
		m["image"] = k.HeroImage
	}
	if siteURL != "" {
		m["url"] = siteURL + "/#" + k.Anchor()
	}
	return m
}

// ItemList wraps the catalog as a schema.org ItemList of products.
func ItemList(kits []catalog.Kit, siteURL, currency string) map[string]any {
	el := make([]map[string]any, 0, len(kits))
	for i, k := range kits {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"item":     Product(k, siteURL, currency),
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "ItemList",
		"itemListElement": el,
	}
}

func decimal(minor int64) string {
	return strconv.FormatFloat(float64(minor)/100, 'f', 2, 64)
}

func trimAt(s string) string {
	if len(s) > 0 && s[0] == '@' {
		return s[1:]
	}
	return s
}
