package handlers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/romusmm/my-gift-box/content"
	"github.com/romusmm/my-gift-box/internal/catalog"
	"github.com/romusmm/my-gift-box/internal/cms"
	"github.com/romusmm/my-gift-box/internal/sequencer"
	"github.com/romusmm/my-gift-box/internal/viewstate"
)

func testSite(t *testing.T) Site {
	t.Helper()
	lib, err := cms.Load(content.FS, map[string]string{"brand": "My Gift Box", "instagram": "@mygiftbox"})
	require.NoError(t, err)
	return Site{
		Brand:     "My Gift Box",
		Instagram: "@mygiftbox",
		SiteURL:   "https://mygiftbox.ec",
		Catalog:   catalog.Default(),
		Content:   lib,
	}
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestBuildLanding(t *testing.T) {
	t.Parallel()

	data := testSite(t).Build(viewstate.Initial(), fixedNow)
	require.True(t, data.IsLanding())
	require.Len(t, data.Kits, 3)
	require.Equal(t, "$ 19.99", data.Kits[0].Price)
	require.Len(t, data.Content.FAQ, 5)
	require.Equal(t, 2026, data.Year)
	require.Nil(t, data.Kit)
	require.Len(t, data.SEO.JSONLD, 3)
	require.Contains(t, string(data.SEO.JSONLD[2]), `"ItemList"`)
	require.False(t, data.ShowBreadcrumbs())
}

func TestBuildKitDetailFallsBackToFirstKit(t *testing.T) {
	t.Parallel()

	s := viewstate.Reduce(viewstate.Initial(), viewstate.OpenKit("NOPE"))
	data := testSite(t).Build(s, fixedNow)
	require.True(t, data.IsKit())
	require.NotNil(t, data.Kit)
	require.Equal(t, "KIT1", data.Kit.ID)
	require.Equal(t, "kits-KIT1", data.Kit.Anchor)
	require.Equal(t, "Marfil", data.Kit.Draft.Color)
	require.Equal(t, 120, data.Kit.Counter.Remaining)
	require.NotEmpty(t, data.Kit.Shipping)
	require.True(t, strings.HasPrefix(data.SEO.Title, data.Kit.Name))
	require.Equal(t, "kit-NOPE", data.EntranceKey)
}

func TestBuildEveryPage(t *testing.T) {
	t.Parallel()

	site := testSite(t)
	for _, p := range viewstate.Pages {
		data := site.Build(viewstate.Reduce(viewstate.Initial(), viewstate.Navigate(p)), fixedNow)
		require.NotEmpty(t, data.SEO.Title, p)
		require.NotEmpty(t, data.Content.Title, p)
		require.Len(t, data.Nav, 5, p)
	}
}

func TestBuildCounterWarning(t *testing.T) {
	t.Parallel()

	require.False(t, BuildCounter(strings.Repeat("a", 104)).Warning)
	c := BuildCounter(strings.Repeat("a", 105))
	require.Equal(t, 15, c.Remaining)
	require.True(t, c.Warning)
	require.Zero(t, BuildCounter(strings.Repeat("a", 130)).Remaining)
}

func TestBuildConfetti(t *testing.T) {
	t.Parallel()

	require.False(t, BuildConfetti(sequencer.Pending{}, fixedNow).Active)

	p := sequencer.Pending{}.Request("https://wa.me/1?text=x", fixedNow, 1600*time.Millisecond)
	v := BuildConfetti(p, fixedNow.Add(600*time.Millisecond))
	require.True(t, v.Active)
	require.EqualValues(t, 1000, v.DelayMS)
	require.Equal(t, p.Deadline.UnixMilli(), v.Deadline)
	require.Equal(t, "https://wa.me/1?text=x", v.Fallback)
}

func TestBuildUsesConfiguredCurrency(t *testing.T) {
	t.Parallel()

	site := testSite(t)
	data := site.Build(viewstate.Initial(), fixedNow)
	require.Contains(t, string(data.SEO.JSONLD[2]), `"priceCurrency":"USD"`)

	site.Currency = "EUR"
	data = site.Build(viewstate.Reduce(viewstate.Initial(), viewstate.OpenKit("KIT2")), fixedNow)
	require.Contains(t, string(data.SEO.JSONLD[2]), `"priceCurrency":"EUR"`)
}
