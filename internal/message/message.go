// Package message builds the WhatsApp texts and links the site hands off to.
package message

import (
	"net/url"
	"strings"

	"github.com/romusmm/my-gift-box/internal/catalog"
)

const placeholder = "(añadir)"

// ContactDraft carries the optional contact form fields.
type ContactDraft struct {
	Name     string
	Interest string
	Message  string
}

// Formatter renders message templates for a brand.
type Formatter struct {
	Brand string
}

// Contact renders the greeting line followed by one line per non-empty field.
func (f Formatter) Contact(d ContactDraft) string {
	lines := []string{"Hola, me gustaría más información sobre los kits de " + f.Brand + "."}
	if v := strings.TrimSpace(d.Name); v != "" {
		lines = append(lines, "Mi nombre es: "+v)
	}
	if v := strings.TrimSpace(d.Interest); v != "" {
		lines = append(lines, "Me interesa: "+v)
	}
	if v := strings.TrimSpace(d.Message); v != "" {
		lines = append(lines, "Mensaje: "+v)
	}
	return strings.Join(lines, "\n")
}

// KitPurchase renders the purchase request for a customized kit.
// The line layout is read by people on the other end; keep it stable.
func (f Formatter) KitPurchase(k catalog.Kit, d CustomizationDraft) string {
	var b strings.Builder
	b.WriteString("Hola, soy cliente de " + f.Brand + ". Quiero comprar el " + k.ID + ".\n\n")
	b.WriteString("Personalización:\n")
	b.WriteString("• Color de cinta/forro: " + d.Color + "\n")
	b.WriteString("• Para: " + orPlaceholder(d.Recipient) + "\n")
	b.WriteString("• Mensaje corto: " + orPlaceholder(d.Message) + "\n\n")
	b.WriteString("¿Me ayudan con el pago y envío?")
	return b.String()
}

// GenericOrder is the purchase intent sent from the site header.
func (f Formatter) GenericOrder() string {
	return "Hola, quiero comprar un kit de " + f.Brand + "."
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// LinkBuilder builds click-to-chat links for a fixed recipient.
type LinkBuilder struct {
	BaseURL   string // e.g. https://wa.me
	Recipient string // digits with country code, no "+"
}

// Build returns <base>/<recipient>?text=<escaped text>. It accepts any input.
func (b LinkBuilder) Build(text string) string {
	return strings.TrimRight(b.BaseURL, "/") + "/" + b.Recipient + "?text=" + escapeComponent(text)
}

// componentUnescaper restores the characters encodeURIComponent leaves
// alone but url.QueryEscape encodes.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escapeComponent percent-encodes s byte for byte like encodeURIComponent.
func escapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
