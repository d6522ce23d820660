package catalog

import (
	"context"
	"net/url"
	"strconv"

	"admin-dashboard/internal/collection"
	"admin-dashboard/internal/gateway"
	"admin-dashboard/internal/ticket"
)

// SupportService drives the support-ticket page. All of its endpoints
// are bearer-authenticated, so it is built with the token-carrying
// gateway client. The backend paginates tickets; filtering is
// server-side.
type SupportService struct {
	gw *gateway.Client
}

func NewSupportService(gw *gateway.Client) *SupportService {
	return &SupportService{gw: gw}
}

type ticketPage struct {
	Tickets    []ticket.Ticket `json:"tickets"`
	TotalCount int             `json:"totalCount"`
}

func (s *SupportService) List(ctx context.Context, q collection.Query) (collection.Result[ticket.Ticket], error) {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page+1))
	v.Set("limit", strconv.Itoa(q.PageSize))
	if q.Status != "" {
		v.Set("status", q.Status)
	}

	var page ticketPage
	if err := s.gw.GetJSON(ctx, "/api/support/admin/tickets", v, &page); err != nil {
		return collection.Result[ticket.Ticket]{}, err
	}
	return collection.Result[ticket.Ticket]{Items: page.Tickets, TotalCount: page.TotalCount}, nil
}

func (s *SupportService) Create(ctx context.Context, payload any) (ticket.Ticket, error) {
	return ticket.Ticket{}, ErrUnsupported
}

// Update patches a ticket's status; the payload is {"status": ...}.
func (s *SupportService) Update(ctx context.Context, id string, payload any) (ticket.Ticket, error) {
	var t ticket.Ticket
	err := s.gw.PatchJSON(ctx, "/api/support/admin/tickets/"+id+"/status", payload, &t)
	return t, err
}

func (s *SupportService) Delete(ctx context.Context, id string) error {
	return ErrUnsupported
}

// Respond appends an admin reply, optionally moving the ticket to a new
// status in the same call.
func (s *SupportService) Respond(ctx context.Context, id, body string, newStatus ticket.Status) error {
	return s.gw.PostJSON(ctx, "/api/support/admin/tickets/"+id+"/respond", ticket.ReplyPayload(body, newStatus), nil)
}

func (s *SupportService) Stats(ctx context.Context) (TicketStats, error) {
	var st TicketStats
	err := s.gw.GetJSON(ctx, "/api/support/admin/tickets/stats", nil, &st)
	return st, err
}

func (s *SupportService) View() *collection.View[ticket.Ticket] {
	return collection.NewView(collection.Config[ticket.Ticket]{
		Source:   s,
		Mode:     collection.ServerFiltered,
		PageSize: 25,
	})
}
