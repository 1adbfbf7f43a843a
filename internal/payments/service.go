// Package payments holds the payment history slices of a session: sent and
// received payments plus the payment summaries.
package payments

import (
	"context"

	"github.com/squeaknode/squeakweb/internal/cache"
	"github.com/squeaknode/squeakweb/internal/models"
	"github.com/squeaknode/squeakweb/internal/rpc"
)

// DefaultLimit is the page size used when a caller does not give one.
const DefaultLimit = 10

// Filter scopes a payment query. See rpc.PaymentFilter for precedence.
type Filter = rpc.PaymentFilter

// Gateway is the part of the admin gateway the payment slices use.
type Gateway interface {
	GetPaymentSummary(ctx context.Context, f rpc.PaymentFilter) (models.PaymentSummary, error)
	GetSentPayments(ctx context.Context, f rpc.PaymentFilter, limit int, last *models.SentPayment) ([]models.SentPayment, error)
	GetReceivedPayments(ctx context.Context, f rpc.PaymentFilter, limit int, last *models.ReceivedPayment) ([]models.ReceivedPayment, error)
	ReprocessReceivedPayments(ctx context.Context) error
}

// State is one session's payment cache. Each summary is kept separately so
// a squeak page and a peer page can show theirs side by side.
type State struct {
	Sent     cache.List[models.SentPayment]
	Received cache.List[models.ReceivedPayment]

	Summary          cache.Item[models.PaymentSummary]
	SqueakSummary    cache.Item[models.PaymentSummary]
	PubkeySummary    cache.Item[models.PaymentSummary]
	PeerSummary      cache.Item[models.PaymentSummary]
	ReprocessRunning cache.Flag
}

func NewState() *State {
	return &State{}
}

// summary picks the slot that matches the filter's scope.
func (st *State) summary(f Filter) *cache.Item[models.PaymentSummary] {
	switch f.Scope() {
	case "squeak":
		return &st.SqueakSummary
	case "pubkey":
		return &st.PubkeySummary
	case "peer":
		return &st.PeerSummary
	default:
		return &st.Summary
	}
}

// Page selects a page of history. Without More the list is refetched from the start.
type Page struct {
	Limit int
	More  bool
}

func (p Page) limit() int {
	if p.Limit <= 0 {
		return DefaultLimit
	}
	return p.Limit
}

// Service runs payment actions against a session's State.
type Service struct {
	gw Gateway
}

// NewService constructs a payment service.
func NewService(gw Gateway) *Service {
	return &Service{gw: gw}
}

// FetchSummary loads the summary for f into the matching slot.
func (s *Service) FetchSummary(ctx context.Context, st *State, f Filter) error {
	slot := st.summary(f)
	slot.Begin()
	sum, err := s.gw.GetPaymentSummary(ctx, f)
	if err != nil {
		slot.Fail()
		return err
	}
	slot.Set(&sum)
	return nil
}

// FetchSent appends a page of sent payments matching f.
func (s *Service) FetchSent(ctx context.Context, st *State, f Filter, p Page) error {
	var cursor *models.SentPayment
	if p.More {
		cursor = st.Sent.Last()
	} else {
		st.Sent.Clear()
	}
	st.Sent.Begin()
	page, err := s.gw.GetSentPayments(ctx, f, p.limit(), cursor)
	if err != nil {
		st.Sent.Fail()
		return err
	}
	st.Sent.Append(page)
	return nil
}

// FetchReceived appends a page of received payments matching f.
func (s *Service) FetchReceived(ctx context.Context, st *State, f Filter, p Page) error {
	var cursor *models.ReceivedPayment
	if p.More {
		cursor = st.Received.Last()
	} else {
		st.Received.Clear()
	}
	st.Received.Begin()
	page, err := s.gw.GetReceivedPayments(ctx, f, p.limit(), cursor)
	if err != nil {
		st.Received.Fail()
		return err
	}
	st.Received.Append(page)
	return nil
}

// ReprocessReceived asks the node to rescan its invoices, then reloads the
// global summary and the first page of received payments.
func (s *Service) ReprocessReceived(ctx context.Context, st *State) error {
	st.ReprocessRunning.Begin()
	defer st.ReprocessRunning.End()
	if err := s.gw.ReprocessReceivedPayments(ctx); err != nil {
		return err
	}
	if err := s.FetchSummary(ctx, st, Filter{}); err != nil {
		return err
	}
	return s.FetchReceived(ctx, st, Filter{}, Page{})
}
