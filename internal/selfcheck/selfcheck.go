// Package selfcheck runs the startup assertions used outside production.
package selfcheck

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/romusmm/my-gift-box/internal/catalog"
	"github.com/romusmm/my-gift-box/internal/message"
	"github.com/romusmm/my-gift-box/internal/viewstate"
)

// Deps are the collaborators under check.
type Deps struct {
	Catalog   *catalog.Store
	Formatter message.Formatter
	Links     message.LinkBuilder
}

// Failure describes one assertion that did not hold.
type Failure struct {
	Name   string
	Detail string
}

type check struct {
	name string
	run  func(Deps) (bool, string)
}

var checks = []check{
	{
		name: "contact_message_has_newlines",
		run: func(d Deps) (bool, string) {
			msg := d.Formatter.Contact(sampleContact)
			return strings.Contains(msg, "\n"), msg
		},
	},
	{
		name: "link_encodes_newlines",
		run: func(d Deps) (bool, string) {
			link := d.Links.Build(d.Formatter.Contact(sampleContact))
			return strings.Contains(link, "%0A"), link
		},
	},
	{
		name: "open_kit_resolves_unknown_id",
		run: func(d Deps) (bool, string) {
			s := viewstate.Reduce(viewstate.Initial(), viewstate.OpenKit("__unknown__"))
			if s.Page != viewstate.KitDetail {
				return false, "page=" + string(s.Page)
			}
			if _, err := d.Catalog.Get(s.KitID); !errors.Is(err, catalog.ErrKitNotFound) {
				return false, "lookup of unknown id did not fail"
			}
			got := d.Catalog.ResolveKitOrDefault(s.KitID)
			want := d.Catalog.First()
			return got.ID == want.ID, "resolved=" + got.ID
		},
	},
}

var sampleContact = message.ContactDraft{Name: "Ana", Interest: "KIT2", Message: "Hola"}

// Run executes every assertion and returns the ones that failed.
func Run(ctx context.Context, d Deps) []Failure {
	return run(ctx, d, checks)
}

func run(ctx context.Context, d Deps, list []check) []Failure {
	var failures []Failure
	for _, c := range list {
		if ctx.Err() != nil {
			break
		}
		if ok, detail := c.run(d); !ok {
			failures = append(failures, Failure{Name: c.name, Detail: detail})
		}
	}
	return failures
}

// Report runs the assertions unless production is set, logging each
// failure as a warning. It stays silent in production.
func Report(ctx context.Context, production bool, d Deps, logger *zap.Logger) int {
	if production {
		return 0
	}
	return report(ctx, d, logger, checks)
}

func report(ctx context.Context, d Deps, logger *zap.Logger, list []check) int {
	failures := run(ctx, d, list)
	for _, f := range failures {
		logger.Warn("self-check failed", zap.String("check", f.Name), zap.String("detail", f.Detail))
	}
	if len(failures) == 0 {
		logger.Debug("self-check passed", zap.Int("checks", len(list)))
	}
	return len(failures)
}
