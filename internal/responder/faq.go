package responder

import (
	"context"
	"strings"
	"unicode"
)

// faqEntry answers any message containing one of its keywords. Keywords
// match at the start of a word, so "kost" matches "kostet". Entries with
// wholeWords set only match complete words.
type faqEntry struct {
	keywords   []string
	answer     string
	wholeWords bool
}

var faqEntries = []faqEntry{
	{
		keywords: []string{"kost", "preis", "price", "cost", "teuer"},
		answer:   "Eine typische PV-Anlage für ein Einfamilienhaus (8-10 kWp) kostet 12.000-18.000 € inklusive Montage. Für ein genaues Angebot analysieren wir gern Ihr Dach.",
	},
	{
		keywords: []string{"speicher", "batterie", "battery", "storage"},
		answer:   "Ein Batteriespeicher erhöht Ihren Eigenverbrauch von rund 30 % auf bis zu 70 %. Wir empfehlen etwa 1 kWh Speicher pro kWp Anlagenleistung.",
	},
	{
		keywords: []string{"förder", "foerder", "subsid", "kfw", "grant"},
		answer:   "Für PV-Anlagen auf Wohngebäuden gilt seit 2023 ein Mehrwertsteuersatz von 0 %. Zusätzlich gibt es regionale Förderprogramme und KfW-Kredite.",
	},
	{
		keywords: []string{"dauer", "wie lange", "how long", "installation time"},
		answer:   "Nach Auftragserteilung dauert die Installation meist 4-8 Wochen. Die Montage selbst ist in 1-2 Tagen erledigt.",
	},
	{
		keywords: []string{"wallbox", "e-auto", "ladestation", "charger"},
		answer:   "Eine Wallbox lässt sich mit Ihrer PV-Anlage kombinieren, damit Ihr E-Auto mit eigenem Solarstrom lädt.",
	},
	{
		keywords: []string{"wartung", "maintenance", "reinigung", "cleaning"},
		answer:   "PV-Anlagen sind wartungsarm. Wir empfehlen alle 4 Jahre eine Sichtprüfung und eine Überprüfung des Wechselrichters.",
	},
	{
		keywords:   []string{"hallo", "hello", "hi", "guten tag", "moin"},
		answer:     "Hallo! Ich bin der Zoe-Solar-Assistent. Fragen Sie mich zu Kosten, Speichern, Förderung oder Installation.",
		wholeWords: true,
	},
}

const faqFallback = "Dazu habe ich leider keine Antwort parat. Unser Team meldet sich gern persönlich: info@zoe-solar.de."

// FAQResponder answers from a built-in list of frequently asked questions.
type FAQResponder struct {
	entries  []faqEntry
	fallback string
}

// NewFAQResponder returns a responder over the built-in FAQ.
func NewFAQResponder() *FAQResponder {
	return &FAQResponder{entries: faqEntries, fallback: faqFallback}
}

// RegisterFAQ registers the FAQ responder under "faq".
func RegisterFAQ() {
	Register("faq", func(Settings) (Responder, error) {
		return NewFAQResponder(), nil
	})
}

func (f *FAQResponder) Name() string { return "faq" }

// Respond returns the answer of the first entry with a keyword found in
// message, matched case-insensitively, or the fallback reply.
func (f *FAQResponder) Respond(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	normalized := normalizeWords(message)
	for _, e := range f.entries {
		for _, kw := range e.keywords {
			if e.matches(normalized, kw) {
				return e.answer, nil
			}
		}
	}
	return f.fallback, nil
}

func (e faqEntry) matches(normalized, keyword string) bool {
	needle := " " + keyword
	if e.wholeWords {
		needle += " "
	}
	return strings.Contains(normalized, needle)
}

// normalizeWords lowercases message and rewrites it as its words separated
// and surrounded by single spaces. Punctuation other than '-' separates
// words.
func normalizeWords(message string) string {
	words := strings.FieldsFunc(strings.ToLower(message), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
	return " " + strings.Join(words, " ") + " "
}
