package cms

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a content page cannot be located.
var ErrNotFound = errors.New("cms: not found")

// ContentPage is a static page sourced from embedded markdown.
type ContentPage struct {
	Slug       string
	Title      string
	Summary    string
	Note       string
	Body       template.HTML
	Hero       *Hero
	FAQ        []FAQ
	Milestones []Milestone
	Quote      *Quote
	Steps      []Step
	Channels   []Channel
	SEO        ContentSEO
}

// ContentSEO holds optional metadata overrides for static pages.
type ContentSEO struct {
	Title       string
	Description string
	OGImage     string
}

// Hero is the landing banner.
type Hero struct {
	Badge        string
	Title        string
	Highlight    string
	Image        string
	Features     []string
	CardTitle    string
	CardSubtitle string
}

type FAQ struct {
	Question string
	Answer   string
}

type Milestone struct {
	Year        string
	Title       string
	Description string
}

type Quote struct {
	Text   string
	Author string
}

type Step struct {
	Icon        string
	Title       string
	Description string
}

// Channel is a contact line shown next to an icon.
type Channel struct {
	Icon  string
	Label string
}

type contentFrontMatter struct {
	Title      string                  `yaml:"title"`
	Summary    string                  `yaml:"summary"`
	Note       string                  `yaml:"note"`
	SEO        contentFrontMatterSEO   `yaml:"seo"`
	Hero       *contentFrontMatterHero `yaml:"hero"`
	FAQ        []struct {
		Q string `yaml:"q"`
		A string `yaml:"a"`
	} `yaml:"faq"`
	Milestones []struct {
		Year  string `yaml:"year"`
		Title string `yaml:"title"`
		Desc  string `yaml:"desc"`
	} `yaml:"milestones"`
	Quote *struct {
		Text   string `yaml:"text"`
		Author string `yaml:"author"`
	} `yaml:"quote"`
	Steps []struct {
		Icon  string `yaml:"icon"`
		Title string `yaml:"title"`
		Desc  string `yaml:"desc"`
	} `yaml:"steps"`
	Channels []struct {
		Icon  string `yaml:"icon"`
		Label string `yaml:"label"`
	} `yaml:"channels"`
}

type contentFrontMatterSEO struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	OGImage     string `yaml:"og_image"`
}

type contentFrontMatterHero struct {
	Badge        string   `yaml:"badge"`
	Title        string   `yaml:"title"`
	Highlight    string   `yaml:"highlight"`
	Image        string   `yaml:"image"`
	Features     []string `yaml:"features"`
	CardTitle    string   `yaml:"card_title"`
	CardSubtitle string   `yaml:"card_subtitle"`
}

// Library is the parsed set of pages, loaded once at startup.
type Library struct {
	pages map[string]ContentPage
}

// Load parses every *.md file at the root of fsys. Occurrences of
// {{key}} in the raw files are replaced with vars[key] before parsing.
func Load(fsys fs.FS, vars map[string]string) (*Library, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("cms: read content dir: %w", err)
	}
	replacer := placeholderReplacer(vars)
	md := newMarkdown()
	policy := newContentHTMLPolicy()

	lib := &Library{pages: make(map[string]ContentPage)}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".md" {
			continue
		}
		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("cms: read %s: %w", e.Name(), err)
		}
		slug := strings.TrimSuffix(e.Name(), ".md")
		page, err := parseContentPage(slug, replacer.Replace(string(data)), md, policy)
		if err != nil {
			return nil, err
		}
		lib.pages[slug] = page
	}
	return lib, nil
}

// Get returns a copy of the page with the given slug.
func (l *Library) Get(slug string) (ContentPage, error) {
	slug = sanitizeSlug(slug)
	if l == nil || slug == "" {
		return ContentPage{}, ErrNotFound
	}
	page, ok := l.pages[slug]
	if !ok {
		return ContentPage{}, ErrNotFound
	}
	return cloneContentPage(page), nil
}

// Page is Get without the error; missing pages come back with only the
// prettified slug as title.
func (l *Library) Page(slug string) ContentPage {
	page, err := l.Get(slug)
	if err != nil {
		return ContentPage{Slug: slug, Title: prettifySlug(slug)}
	}
	return page
}

// Slugs lists loaded pages in lexical order.
func (l *Library) Slugs() []string {
	if l == nil {
		return nil
	}
	out := make([]string, 0, len(l.pages))
	for slug := range l.pages {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}

func parseContentPage(slug, raw string, md goldmark.Markdown, policy *bluemonday.Policy) (ContentPage, error) {
	fm, body := splitFrontMatter(raw)
	front := contentFrontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return ContentPage{}, fmt.Errorf("cms: parse front matter %s: %w", slug, err)
		}
	}
	page := ContentPage{
		Slug:    slug,
		Title:   strings.TrimSpace(front.Title),
		Summary: strings.TrimSpace(front.Summary),
		Note:    strings.TrimSpace(front.Note),
		SEO: ContentSEO{
			Title:       strings.TrimSpace(front.SEO.Title),
			Description: strings.TrimSpace(front.SEO.Description),
			OGImage:     strings.TrimSpace(front.SEO.OGImage),
		},
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	if strings.TrimSpace(body) != "" {
		var buf bytes.Buffer
		if err := md.Convert([]byte(body), &buf); err != nil {
			return ContentPage{}, fmt.Errorf("cms: render %s: %w", slug, err)
		}
		page.Body = template.HTML(strings.TrimSpace(policy.Sanitize(buf.String())))
	}
	if h := front.Hero; h != nil {
		page.Hero = &Hero{
			Badge:        strings.TrimSpace(h.Badge),
			Title:        strings.TrimSpace(h.Title),
			Highlight:    strings.TrimSpace(h.Highlight),
			Image:        strings.TrimSpace(h.Image),
			Features:     append([]string(nil), h.Features...),
			CardTitle:    strings.TrimSpace(h.CardTitle),
			CardSubtitle: strings.TrimSpace(h.CardSubtitle),
		}
	}
	for _, f := range front.FAQ {
		page.FAQ = append(page.FAQ, FAQ{Question: strings.TrimSpace(f.Q), Answer: strings.TrimSpace(f.A)})
	}
	for _, m := range front.Milestones {
		page.Milestones = append(page.Milestones, Milestone{
			Year:        strings.TrimSpace(m.Year),
			Title:       strings.TrimSpace(m.Title),
			Description: strings.TrimSpace(m.Desc),
		})
	}
	if q := front.Quote; q != nil {
		page.Quote = &Quote{Text: strings.TrimSpace(q.Text), Author: strings.TrimSpace(q.Author)}
	}
	for _, s := range front.Steps {
		page.Steps = append(page.Steps, Step{
			Icon:        strings.TrimSpace(s.Icon),
			Title:       strings.TrimSpace(s.Title),
			Description: strings.TrimSpace(s.Desc),
		})
	}
	for _, c := range front.Channels {
		page.Channels = append(page.Channels, Channel{Icon: strings.TrimSpace(c.Icon), Label: strings.TrimSpace(c.Label)})
	}
	return page, nil
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(extension.GFM))
}

func newContentHTMLPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

func placeholderReplacer(vars map[string]string) *strings.Replacer {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(vars)*2)
	for _, k := range keys {
		pairs = append(pairs, "{{"+k+"}}", vars[k])
	}
	return strings.NewReplacer(pairs...)
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func prettifySlug(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return slug
	}
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = asciiUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if slug == "" || strings.Contains(slug, "..") || strings.Contains(slug, "/") {
		return ""
	}
	return slug
}

func cloneContentPage(src ContentPage) ContentPage {
	cp := src
	if src.Hero != nil {
		h := *src.Hero
		h.Features = append([]string(nil), src.Hero.Features...)
		cp.Hero = &h
	}
	if src.Quote != nil {
		q := *src.Quote
		cp.Quote = &q
	}
	cp.FAQ = append([]FAQ(nil), src.FAQ...)
	cp.Milestones = append([]Milestone(nil), src.Milestones...)
	cp.Steps = append([]Step(nil), src.Steps...)
	cp.Channels = append([]Channel(nil), src.Channels...)
	return cp
}

func asciiUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
