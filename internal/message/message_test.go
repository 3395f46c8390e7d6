package message

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/romusmm/my-gift-box/internal/catalog"
)

const greeting = "Hola, me gustaría más información sobre los kits de My Gift Box."

var (
	testFormatter = Formatter{Brand: "My Gift Box"}
	testLinks     = LinkBuilder{BaseURL: "https://wa.me", Recipient: "593969563324"}
)

func TestContactOnlyGreetingWhenEmpty(t *testing.T) {
	t.Parallel()

	require.Equal(t, greeting, testFormatter.Contact(ContactDraft{}))
	require.Equal(t, greeting, testFormatter.Contact(ContactDraft{Name: "  ", Message: "\t"}))
}

func TestContactInterestOnly(t *testing.T) {
	t.Parallel()

	got := testFormatter.Contact(ContactDraft{Interest: "KIT3"})
	require.Equal(t, greeting+"\nMe interesa: KIT3", got)
}

func TestContactAllFieldsInOrder(t *testing.T) {
	t.Parallel()

	got := testFormatter.Contact(ContactDraft{Name: "Ana", Interest: "KIT2", Message: "Hola"})
	require.Equal(t, strings.Join([]string{
		greeting,
		"Mi nombre es: Ana",
		"Me interesa: KIT2",
		"Mensaje: Hola",
	}, "\n"), got)
}

func TestContactLinePerNonEmptyField(t *testing.T) {
	t.Parallel()

	field := rapid.OneOf(rapid.Just(""), rapid.StringMatching(`[A-Za-zñ0-9 ]{0,20}`))
	rapid.Check(t, func(t *rapid.T) {
		d := ContactDraft{
			Name:     field.Draw(t, "name"),
			Interest: field.Draw(t, "interest"),
			Message:  field.Draw(t, "message"),
		}
		want := 1
		for _, v := range []string{d.Name, d.Interest, d.Message} {
			if strings.TrimSpace(v) != "" {
				want++
			}
		}
		out := testFormatter.Contact(d)
		lines := strings.Split(out, "\n")
		if len(lines) != want {
			t.Fatalf("expected %d lines, got %d: %q", want, len(lines), out)
		}
		if lines[0] != greeting {
			t.Fatalf("first line must be the greeting, got %q", lines[0])
		}
		for _, l := range lines {
			if l == "" {
				t.Fatalf("blank line in %q", out)
			}
		}
		if out != testFormatter.Contact(d) {
			t.Fatalf("output is not deterministic")
		}
	})
}

func TestKitPurchaseTemplate(t *testing.T) {
	t.Parallel()

	kit := catalog.Default().ResolveKitOrDefault("KIT2")
	draft := NewCustomizationDraft(kit, "Cobre", "Luis", "Feliz cumple")
	got := testFormatter.KitPurchase(kit, draft)
	want := "Hola, soy cliente de My Gift Box. Quiero comprar el KIT2.\n\n" +
		"Personalización:\n" +
		"• Color de cinta/forro: Cobre\n" +
		"• Para: Luis\n" +
		"• Mensaje corto: Feliz cumple\n\n" +
		"¿Me ayudan con el pago y envío?"
	require.Equal(t, want, got)

	link := testLinks.Build(got)
	require.True(t, strings.HasPrefix(link, "https://wa.me/593969563324?text="))
	require.Contains(t, link, "KIT2")
	require.Contains(t, link, "Cobre")
	require.Contains(t, link, "Feliz%20cumple")
	require.Contains(t, link, "%0A")

	decoded, err := url.QueryUnescape(strings.TrimPrefix(link, "https://wa.me/593969563324?text="))
	require.NoError(t, err)
	require.Equal(t, got, decoded)
}

func TestKitPurchasePlaceholders(t *testing.T) {
	t.Parallel()

	kit := catalog.Default().ResolveKitOrDefault("KIT1")
	got := testFormatter.KitPurchase(kit, NewCustomizationDraft(kit, "", "", ""))
	require.Contains(t, got, "• Color de cinta/forro: Marfil\n")
	require.Contains(t, got, "• Para: (añadir)\n")
	require.Contains(t, got, "• Mensaje corto: (añadir)\n")
}

func TestGenericOrder(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Hola, quiero comprar un kit de My Gift Box.", testFormatter.GenericOrder())
}

func TestBuildIsTotal(t *testing.T) {
	t.Parallel()

	require.Equal(t, "https://wa.me/593969563324?text=", testLinks.Build(""))

	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "text")
		link := testLinks.Build(s)
		if !strings.HasPrefix(link, "https://wa.me/593969563324?text=") {
			t.Fatalf("unexpected prefix: %q", link)
		}
		if strings.Count(s, "\n") >= 1 && !strings.Contains(link, "%0A") {
			t.Fatalf("multi-line input must encode newlines: %q", link)
		}
		if strings.ContainsAny(link[len("https://wa.me/593969563324?text="):], " \n&#") {
			t.Fatalf("unescaped characters in %q", link)
		}
	})
}

func TestBuildTrimsTrailingSlash(t *testing.T) {
	t.Parallel()

	b := LinkBuilder{BaseURL: "https://wa.me/", Recipient: "123"}
	require.Equal(t, "https://wa.me/123?text=a%2Bb%20c", b.Build("a+b c"))
}

func TestRemaining(t *testing.T) {
	t.Parallel()

	require.Equal(t, 120, Remaining(""))
	require.Equal(t, 108, Remaining("Feliz cumple"))
	require.Equal(t, 119, Remaining("ñ"))
	require.Equal(t, 0, Remaining(strings.Repeat("a", 120)))
	require.Equal(t, 0, Remaining(strings.Repeat("a", 130)))

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, MaxShortMessage).Draw(t, "len")
		s := strings.Repeat("x", n)
		if got := Remaining(s); got != MaxShortMessage-n {
			t.Fatalf("Remaining(len %d) = %d", n, got)
		}
	})
}

func TestLengthCountsUTF16Units(t *testing.T) {
	t.Parallel()

	require.Equal(t, 2, Length("🎁"))
	require.Equal(t, 1, Length("e\u0301"), "decomposed accents count once after NFC")
	require.Equal(t, 0, Remaining(strings.Repeat("🎁", 60)))
	require.Equal(t, 1, Remaining(strings.Repeat("🎁", 59)+"a"))

	capped := CapShortMessage(strings.Repeat("a", 119) + "🎁")
	require.Equal(t, strings.Repeat("a", 119), capped, "a surrogate pair is never split")
}

func TestNewContactDraftCapsFields(t *testing.T) {
	t.Parallel()

	d := NewContactDraft(strings.Repeat("n", 200), strings.Repeat("i", 90), strings.Repeat("ñ", 1500))
	require.Equal(t, MaxName, Length(d.Name))
	require.Equal(t, MaxInterest, Length(d.Interest))
	require.Equal(t, MaxContactMessage, Length(d.Message))
	require.Equal(t, ContactDraft{Name: "Ana", Message: "Hola"}, NewContactDraft("Ana", "", "Hola"))
}

func TestBuildMatchesEncodeURIComponent(t *testing.T) {
	t.Parallel()

	b := LinkBuilder{BaseURL: "https://wa.me", Recipient: "1"}
	require.Equal(t, "https://wa.me/1?text=(a%C3%B1adir)!*'~-_.", b.Build("(añadir)!*'~-_."))
	require.Equal(t, "https://wa.me/1?text=100%25%20%2521%20%26%3D%3F%23", b.Build("100% %21 &=?#"))
}

func TestCapShortMessage(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("é", 150)
	capped := CapShortMessage(long)
	require.Equal(t, MaxShortMessage, Length(capped))
	require.Equal(t, 0, Remaining(capped))
	require.Equal(t, "hola", CapShortMessage("hola"))
}

func TestNewCustomizationDraftNormalizes(t *testing.T) {
	t.Parallel()

	kit := catalog.Default().ResolveKitOrDefault("KIT3")
	d := NewCustomizationDraft(kit, "Cobre", "  Ana ", strings.Repeat("b", 200))
	require.Equal(t, "Arena", d.Color, "colors from another kit fall back to the default")
	require.Equal(t, "Ana", d.Recipient)
	require.Equal(t, MaxShortMessage, Length(d.Message))

	d = NewCustomizationDraft(kit, "Rojo vino", "", "")
	require.Equal(t, "Rojo vino", d.Color)
}
