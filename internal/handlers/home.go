package handlers

import (
	"time"

	"github.com/romusmm/my-gift-box/internal/catalog"
	"github.com/romusmm/my-gift-box/internal/format"
	"github.com/romusmm/my-gift-box/internal/message"
	"github.com/romusmm/my-gift-box/internal/sequencer"
)

// WarnRemaining is the counter value at and below which it turns to a warning tone.
const WarnRemaining = 15

// KitCard is a kit as shown on the landing and catalog grids.
type KitCard struct {
	ID     string
	Name   string
	Short  string
	Price  string
	Image  string
	Anchor string
}

// KitDetail is the kit detail view with its customization form.
type KitDetail struct {
	KitCard
	Items    []string
	Colors   []string
	Draft    message.CustomizationDraft
	Counter  Counter
	Shipping string
}

// Counter is the characters-remaining indicator under the card message box.
type Counter struct {
	Remaining int
	Max       int
	Warning   bool
}

// ConfettiView drives the celebration overlay. DelayMS is when the client
// should ask the server to complete the pending navigation.
type ConfettiView struct {
	Active    bool
	DelayMS   int64
	Deadline  int64
	Colors    []string
	CSRFToken string
	Fallback  string // target shown to clients without scripting
}

// ConfettiColors are the particle colors of the burst.
var ConfettiColors = []string{"#6366f1", "#f472b6", "#22c55e", "#f59e0b", "#06b6d4"}

func KitCards(kits []catalog.Kit) []KitCard {
	out := make([]KitCard, 0, len(kits))
	for _, k := range kits {
		out = append(out, kitCard(k))
	}
	return out
}

func kitCard(k catalog.Kit) KitCard {
	return KitCard{
		ID:     k.ID,
		Name:   k.Name,
		Short:  k.Short,
		Price:  format.Price(k.Price),
		Image:  k.HeroImage,
		Anchor: k.Anchor(),
	}
}

// BuildKitDetail builds the detail view with an empty draft.
func BuildKitDetail(k catalog.Kit, shipping string) KitDetail {
	return KitDetail{
		KitCard:  kitCard(k),
		Items:    append([]string(nil), k.Items...),
		Colors:   append([]string(nil), k.Colors...),
		Draft:    message.NewCustomizationDraft(k, "", "", ""),
		Counter:  BuildCounter(""),
		Shipping: shipping,
	}
}

// BuildCounter computes the counter for the current message text.
func BuildCounter(msg string) Counter {
	r := message.Remaining(msg)
	return Counter{Remaining: r, Max: message.MaxShortMessage, Warning: r <= WarnRemaining}
}

// BuildConfetti derives the overlay from the pending navigation.
func BuildConfetti(p sequencer.Pending, now time.Time) ConfettiView {
	if p.Idle() {
		return ConfettiView{}
	}
	return ConfettiView{
		Active:   true,
		DelayMS:  p.Remaining(now).Milliseconds(),
		Deadline: p.Deadline.UnixMilli(),
		Colors:   ConfettiColors,
		Fallback: p.TargetURL,
	}
}
