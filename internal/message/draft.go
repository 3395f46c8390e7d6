package message

import (
	"strings"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"

	"github.com/romusmm/my-gift-box/internal/catalog"
)

// Field limits, in UTF-16 code units like the browser's maxlength.
const (
	MaxShortMessage   = 120
	MaxName           = 80
	MaxInterest       = 40
	MaxContactMessage = 1000
)

// CustomizationDraft is the visitor's personalization of a single kit.
type CustomizationDraft struct {
	Color     string
	Recipient string
	Message   string
}

// NewCustomizationDraft normalizes raw form input against the kit. Unknown
// colors fall back to the kit's first color and the message is capped.
func NewCustomizationDraft(k catalog.Kit, color, recipient, msg string) CustomizationDraft {
	color = strings.TrimSpace(color)
	if !k.HasColor(color) {
		color = k.DefaultColor()
	}
	return CustomizationDraft{
		Color:     color,
		Recipient: strings.TrimSpace(capUnits(recipient, MaxName)),
		Message:   strings.TrimSpace(CapShortMessage(msg)),
	}
}

// NewContactDraft caps the contact form fields.
func NewContactDraft(name, interest, msg string) ContactDraft {
	return ContactDraft{
		Name:     capUnits(name, MaxName),
		Interest: capUnits(interest, MaxInterest),
		Message:  capUnits(msg, MaxContactMessage),
	}
}

// Length counts UTF-16 code units after NFC normalization, the unit the
// browser's maxlength and the character counter agree on.
func Length(s string) int {
	return units(norm.NFC.String(s))
}

// Remaining is the characters-remaining counter shown under the message box.
func Remaining(s string) int {
	r := MaxShortMessage - Length(s)
	if r < 0 {
		return 0
	}
	return r
}

// CapShortMessage truncates s to MaxShortMessage units.
func CapShortMessage(s string) string {
	return capUnits(s, MaxShortMessage)
}

func units(s string) int {
	n := 0
	for _, r := range s {
		n += runeUnits(r)
	}
	return n
}

func runeUnits(r rune) int {
	if w := utf16.RuneLen(r); w > 0 {
		return w
	}
	return 1
}

// capUnits truncates the NFC form of s to at most limit UTF-16 units without
// splitting a surrogate pair.
func capUnits(s string, limit int) string {
	s = norm.NFC.String(s)
	n := 0
	for i, r := range s {
		w := runeUnits(r)
		if n+w > limit {
			return s[:i]
		}
		n += w
	}
	return s
}
