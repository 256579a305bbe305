package loaders

import "easylease-admin/internal/domain"

type statused interface {
	GetStatus() string
}

// CountStatus counts the rows whose status equals status.
func CountStatus[T statused](rows []T, status string) int {
	n := 0
	for _, r := range rows {
		if r.GetStatus() == status {
			n++
		}
	}
	return n
}

// Stat is one counter card on a list page.
type Stat struct {
	Label string
	Icon  string
	Tone  string
	Count int
}

func ListingStats(rows []domain.Listing) []Stat {
	return []Stat{
		{Label: "Total", Icon: "📊", Tone: "gray", Count: len(rows)},
		{Label: "Publicados", Icon: "✅", Tone: "green", Count: CountStatus(rows, string(domain.ListingPublished))},
		{Label: "Borradores", Icon: "📝", Tone: "yellow", Count: CountStatus(rows, string(domain.ListingDraft))},
		{Label: "Reservados", Icon: "🔒", Tone: "blue", Count: CountStatus(rows, string(domain.ListingReserved))},
	}
}

func LeadStats(rows []domain.Lead) []Stat {
	return []Stat{
		{Label: "Total", Icon: "📊", Tone: "gray", Count: len(rows)},
		{Label: "Nuevos", Icon: "🆕", Tone: "blue", Count: CountStatus(rows, string(domain.LeadNew))},
		{Label: "Contactados", Icon: "📞", Tone: "yellow", Count: CountStatus(rows, string(domain.LeadContacted))},
		{Label: "Convertidos", Icon: "✅", Tone: "green", Count: CountStatus(rows, string(domain.LeadConverted))},
	}
}

func PartnerStats(rows []domain.Partner) []Stat {
	return []Stat{
		{Label: "Total", Icon: "📊", Tone: "gray", Count: len(rows)},
		{Label: "Activos", Icon: "✅", Tone: "green", Count: CountStatus(rows, string(domain.PartnerActive))},
		{Label: "Pendientes", Icon: "⏳", Tone: "yellow", Count: CountStatus(rows, string(domain.PartnerPending))},
	}
}
