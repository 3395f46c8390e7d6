package main

import (
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/romusmm/my-gift-box/internal/handlers"
	"github.com/romusmm/my-gift-box/internal/message"
	mw "github.com/romusmm/my-gift-box/internal/middleware"
	"github.com/romusmm/my-gift-box/internal/observability"
	"github.com/romusmm/my-gift-box/internal/viewstate"
)

// openEventName is the client event that opens the WhatsApp link.
const openEventName = "giftbox:open"

// homeHandler renders the whole site for the session's view state.
func (a *app) homeHandler(w http.ResponseWriter, r *http.Request) {
	sd := mw.GetSession(r)
	a.render(w, r, "", a.pageData(r, sd))
}

func (a *app) navHandler(w http.ResponseWriter, r *http.Request) {
	sd := mw.GetSession(r)
	page, _ := viewstate.ParsePage(r.PostFormValue("page"))
	kit := strings.TrimSpace(r.PostFormValue("kit"))
	if page == viewstate.KitDetail && kit != "" {
		sd.Dispatch(viewstate.OpenKit(kit))
	} else {
		sd.Dispatch(viewstate.Navigate(page))
	}
	a.respondApp(w, r, sd)
}

func (a *app) menuHandler(w http.ResponseWriter, r *http.Request) {
	sd := mw.GetSession(r)
	sd.Dispatch(viewstate.ToggleMenu())
	a.respondApp(w, r, sd)
}

func (a *app) purchaseHandler(w http.ResponseWriter, r *http.Request) {
	kit := a.catalog.ResolveKitOrDefault(r.PostFormValue("kit"))
	draft := message.NewCustomizationDraft(kit,
		r.PostFormValue("color"),
		r.PostFormValue("recipient"),
		r.PostFormValue("message"),
	)
	a.requestNavigation(r, "purchase", a.formatter.KitPurchase(kit, draft))
	a.respondConfetti(w, r)
}

func (a *app) contactHandler(w http.ResponseWriter, r *http.Request) {
	draft := message.NewContactDraft(
		r.PostFormValue("name"),
		r.PostFormValue("interest"),
		r.PostFormValue("message"),
	)
	a.requestNavigation(r, "contact", a.formatter.Contact(draft))
	a.respondConfetti(w, r)
}

// orderHandler is the shell call-to-action. It also closes the mobile menu,
// so htmx receives the header as an out-of-band swap.
func (a *app) orderHandler(w http.ResponseWriter, r *http.Request) {
	sd := mw.GetSession(r)
	sd.Dispatch(viewstate.CloseMenu())
	a.requestNavigation(r, "order", a.formatter.GenericOrder())
	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	data := a.pageData(r, sd)
	data.OOB = true
	a.render(w, r, "frag_order", data)
}

// completeHandler fires the confetti timer. When the deadline has passed the
// pending link is cleared and handed to the client exactly once.
func (a *app) completeHandler(w http.ResponseWriter, r *http.Request) {
	sd := mw.GetSession(r)
	now := a.now()
	next, open, done := sd.Pending.Complete(now)
	sd.SetPending(next)

	logger := observability.FromContext(r.Context())
	if open != "" {
		logger.Info("whatsapp link opened", zap.String("session_id", sd.ID))
	} else if !done {
		logger.Debug("completion requested early", zap.Duration("remaining", sd.Pending.Remaining(now)))
	}

	if !mw.IsHTMX(r.Context()) {
		target := "/"
		if open != "" {
			target = open
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	if open != "" {
		payload, err := json.Marshal(map[string]map[string]string{openEventName: {"url": open}})
		if err != nil {
			logger.Error("encode open event", zap.Error(err))
			mw.WriteError(w, r, http.StatusInternalServerError, "encode error")
			return
		}
		w.Header().Set("HX-Trigger", string(payload))
	}
	a.render(w, r, "frag_confetti", a.confetti(r, sd, now))
}

func (a *app) remainingHandler(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, "frag_remaining", handlers.BuildCounter(r.PostFormValue("message")))
}

// requestNavigation builds the link for text and records it as the pending
// target. A running animation keeps its deadline.
func (a *app) requestNavigation(r *http.Request, action, text string) {
	sd := mw.GetSession(r)
	wasIdle := sd.Pending.Idle()
	sd.SetPending(sd.Pending.Request(a.links.Build(text), a.now(), a.cfg.Brand.AnimationDuration))
	observability.FromContext(r.Context()).Debug("whatsapp navigation requested",
		zap.String("action", action),
		zap.Bool("started", wasIdle),
	)
}

// respondConfetti swaps the overlay for htmx and redirects plain posts home,
// where the overlay renders with its no-script fallback.
func (a *app) respondConfetti(w http.ResponseWriter, r *http.Request) {
	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	sd := mw.GetSession(r)
	a.render(w, r, "frag_confetti", a.confetti(r, sd, a.now()))
}
