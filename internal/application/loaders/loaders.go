// Package loaders fetch the data each page renders. They never fail: errors are
// turned into page state (an error panel, a not-found page or empty lists).
package loaders

import (
	"context"
	"errors"
	"strings"

	"easylease-admin/internal/domain"
	"easylease-admin/internal/infrastructure/backend"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// RecentLimit is how many rows the dashboard shows per recent list.
const RecentLimit = 5

// API is the read side of the backend client.
type API interface {
	ListListings(ctx context.Context, params backend.Params) ([]domain.Listing, error)
	ListLeads(ctx context.Context, status string) ([]domain.Lead, error)
	ListPartners(ctx context.Context, status string) ([]domain.Partner, error)
	GetListing(ctx context.Context, id string) (domain.Listing, error)
	GetLead(ctx context.Context, id string) (domain.Lead, error)
	GetPartner(ctx context.Context, id string) (domain.Partner, error)
}

// List is the data of a list page. Err is set (and Items empty) when loading failed.
type List[T any] struct {
	Items []T
	Err   string
	Hint  string
}

// Detail is the data of a view or edit page.
type Detail[T any] struct {
	Item     T
	NotFound bool
	Err      string
}

// Found reports whether Item holds a record.
func (d Detail[T]) Found() bool { return !d.NotFound && d.Err == "" }

type Loader struct {
	api  API
	host string
}

// New returns a Loader; baseURL is only used to tell the user where the API is expected.
func New(api API, baseURL string) *Loader {
	host := strings.TrimSuffix(strings.TrimRight(baseURL, "/"), "/api")
	if host == "" {
		host = "http://localhost:4000"
	}
	return &Loader{api: api, host: host}
}

// Hint is shown under a list error.
func (l *Loader) Hint() string {
	return "Asegúrate de que la API esté ejecutándose en " + l.host
}

func list[T any](l *Loader, what string, items []T, err error) List[T] {
	if err != nil {
		log.Error().Err(err).Str("page", what).Msg("Failed to fetch " + what)
		return List[T]{Items: []T{}, Err: backend.Message(err), Hint: l.Hint()}
	}
	if items == nil {
		items = []T{}
	}
	return List[T]{Items: items}
}

func (l *Loader) Listings(ctx context.Context) List[domain.Listing] {
	items, err := l.api.ListListings(ctx, nil)
	return list(l, "listings", items, err)
}

func (l *Loader) Leads(ctx context.Context) List[domain.Lead] {
	items, err := l.api.ListLeads(ctx, "")
	return list(l, "leads", items, err)
}

func (l *Loader) Partners(ctx context.Context) List[domain.Partner] {
	items, err := l.api.ListPartners(ctx, "")
	return list(l, "partners", items, err)
}

// detail maps an HTTP failure to NotFound and anything else to Err.
func detail[T any](what, id string, item T, err error) Detail[T] {
	if err == nil {
		return Detail[T]{Item: item}
	}
	var be *backend.Error
	if errors.As(err, &be) {
		log.Warn().Err(err).Str(what, id).Int("status", be.StatusCode).Msg("Record not available")
		return Detail[T]{NotFound: true}
	}
	log.Error().Err(err).Str(what, id).Msg("Error fetching " + what)
	return Detail[T]{Err: err.Error()}
}

func (l *Loader) Listing(ctx context.Context, id string) Detail[domain.Listing] {
	item, err := l.api.GetListing(ctx, id)
	return detail("listing", id, item, err)
}

func (l *Loader) Lead(ctx context.Context, id string) Detail[domain.Lead] {
	item, err := l.api.GetLead(ctx, id)
	return detail("lead", id, item, err)
}

func (l *Loader) Partner(ctx context.Context, id string) Detail[domain.Partner] {
	item, err := l.api.GetPartner(ctx, id)
	return detail("partner", id, item, err)
}

// Dashboard is the landing page aggregate.
type Dashboard struct {
	Listings []domain.Listing
	Leads    []domain.Lead
	Partners []domain.Partner

	PublishedListings int
	NewLeads          int
	ActivePartners    int

	RecentListings []domain.Listing
	RecentLeads    []domain.Lead
}

// Dashboard loads the three collections in parallel. If any of them fails all
// three are shown empty.
func (l *Loader) Dashboard(ctx context.Context) Dashboard {
	var (
		listings []domain.Listing
		leads    []domain.Lead
		partners []domain.Partner
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		listings, err = l.api.ListListings(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		leads, err = l.api.ListLeads(gctx, "")
		return err
	})
	g.Go(func() (err error) {
		partners, err = l.api.ListPartners(gctx, "")
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Error fetching stats")
		listings, leads, partners = nil, nil, nil
	}
	return NewDashboard(listings, leads, partners)
}

// NewDashboard derives the dashboard counters from the three collections.
func NewDashboard(listings []domain.Listing, leads []domain.Lead, partners []domain.Partner) Dashboard {
	if listings == nil {
		listings = []domain.Listing{}
	}
	if leads == nil {
		leads = []domain.Lead{}
	}
	if partners == nil {
		partners = []domain.Partner{}
	}
	return Dashboard{
		Listings:          listings,
		Leads:             leads,
		Partners:          partners,
		PublishedListings: CountStatus(listings, string(domain.ListingPublished)),
		NewLeads:          CountStatus(leads, string(domain.LeadNew)),
		ActivePartners:    CountStatus(partners, string(domain.PartnerActive)),
		RecentListings:    head(listings, RecentLimit),
		RecentLeads:       head(leads, RecentLimit),
	}
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
