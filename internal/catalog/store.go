package catalog

import (
	"context"
	"net/url"
	"strconv"

	"admin-dashboard/internal/collection"
	"admin-dashboard/internal/gateway"
)

// StoreService drives the second-hand equipment store page. The backend
// paginates listings, so filtering is server-side; the view's 0-based
// page translates to the wire's 1-based page parameter.
type StoreService struct {
	gw *gateway.Client
}

func NewStoreService(gw *gateway.Client) *StoreService {
	return &StoreService{gw: gw}
}

type listingPage struct {
	Listings   []Listing `json:"listings"`
	TotalCount int       `json:"totalCount"`
}

func (s *StoreService) List(ctx context.Context, q collection.Query) (collection.Result[Listing], error) {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page+1))
	v.Set("limit", strconv.Itoa(q.PageSize))
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}

	var page listingPage
	if err := s.gw.GetJSON(ctx, "/api/store/admin/listings", v, &page); err != nil {
		return collection.Result[Listing]{}, err
	}
	return collection.Result[Listing]{Items: page.Listings, TotalCount: page.TotalCount}, nil
}

// Create is not an admin operation; sellers create listings.
func (s *StoreService) Create(ctx context.Context, payload any) (Listing, error) {
	return Listing{}, ErrUnsupported
}

// Update sets a listing's status via the dedicated status endpoint; the
// payload is a ListingStatusUpdate.
func (s *StoreService) Update(ctx context.Context, id string, payload any) (Listing, error) {
	var l Listing
	err := s.gw.PutJSON(ctx, "/api/store/admin/listings/"+id+"/status", payload, &l)
	return l, err
}

func (s *StoreService) Delete(ctx context.Context, id string) error {
	return s.gw.Delete(ctx, "/api/store/admin/listings/"+id)
}

func (s *StoreService) Stats(ctx context.Context) (StoreStats, error) {
	var st StoreStats
	err := s.gw.GetJSON(ctx, "/api/store/admin/stats", nil, &st)
	return st, err
}

func (s *StoreService) GrantRights(ctx context.Context, g RightsGrant) error {
	return s.gw.PostJSON(ctx, "/api/store/admin/rights/grant", g, nil)
}

func (s *StoreService) View() *collection.View[Listing] {
	return collection.NewView(collection.Config[Listing]{
		Source:   s,
		Mode:     collection.ServerFiltered,
		PageSize: 25,
	})
}
