package views

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"easylease-admin/internal/domain"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Spanish)

var months = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// Currency formats an amount in euros the es-ES way, e.g. "12.500,00 €".
func Currency(amount float64) string {
	return printer.Sprintf("%v €", number.Decimal(amount, number.Scale(2)))
}

// ShortDate is d/m/yyyy without padding. Zero times render as "-".
func ShortDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}

// LongDate is "1 de marzo de 2024".
func LongDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), months[t.Month()-1], t.Year())
}

// LongDateTime is "1 de marzo de 2024, 09:05".
func LongDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%s, %02d:%02d", LongDate(t), t.Hour(), t.Minute())
}

// DayString formats a yyyy-mm-dd (or RFC 3339) string as a long date; anything
// unparseable is returned as-is.
func DayString(s string) string {
	if s == "" {
		return "-"
	}
	day, _, _ := strings.Cut(s, "T")
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return s
	}
	return LongDate(t)
}

// Tone is the badge color of a status value.
func Tone(status string) string {
	switch status {
	case "published", "converted", "active":
		return "green"
	case "draft", "contacted", "pending":
		return "yellow"
	case "reserved", "new":
		return "blue"
	case "rented", "inactive":
		return "gray"
	case "discarded":
		return "red"
	}
	return "gray"
}

// Funcs are the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"currency":        Currency,
		"shortDate":       ShortDate,
		"longDate":        LongDate,
		"longDateTime":    LongDateTime,
		"dayString":       DayString,
		"tone":            Tone,
		"join":            func(items []string) string { return strings.Join(items, ", ") },
		"add":             func(a, b int) int { return a + b },
		"sub":             func(a, b int) int { return a - b },
		"last":            func(i, n int) bool { return i == n-1 },
		"listingStatuses": func() []domain.ListingStatus { return domain.ListingStatuses },
		"leadStatuses":    func() []domain.LeadStatus { return domain.LeadStatuses },
		"partnerStatuses": func() []domain.PartnerStatus { return domain.PartnerStatuses },
		"roomTypes":       func() []domain.RoomType { return domain.RoomTypes },
		"locales":         func() []domain.Locale { return domain.Locales },
		"dict":            dict,
	}
}

// dict builds a map from alternating keys and values, for passing several
// arguments to a partial.
func dict(kv ...interface{}) (map[string]interface{}, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]interface{}, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
		}
		m[k] = kv[i+1]
	}
	return m, nil
}
