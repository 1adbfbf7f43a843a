package rpc

import (
	"context"

	"github.com/squeaknode/squeakweb/internal/models"
)

// PaymentFilter scopes payment queries. When several fields are set the squeak
// hash wins over the pubkey, and the pubkey over the peer address. A peer
// address only counts when all its components are set.
type PaymentFilter struct {
	SqueakHash  string
	Pubkey      string
	PeerAddress *models.PeerAddress
}

// Scope names the field that decides the query: "squeak", "pubkey", "peer" or "".
func (f PaymentFilter) Scope() string {
	switch {
	case f.SqueakHash != "":
		return "squeak"
	case f.Pubkey != "":
		return "pubkey"
	case f.PeerAddress != nil && f.PeerAddress.Complete():
		return "peer"
	default:
		return ""
	}
}

func (f PaymentFilter) request() PaymentsRequest {
	switch f.Scope() {
	case "squeak":
		return PaymentsRequest{SqueakHash: f.SqueakHash}
	case "pubkey":
		return PaymentsRequest{Pubkey: f.Pubkey}
	case "peer":
		addr := *f.PeerAddress
		return PaymentsRequest{PeerAddress: &addr}
	default:
		return PaymentsRequest{}
	}
}

func (f PaymentFilter) endpoint(all, squeak, pubkey, peer string) string {
	switch f.Scope() {
	case "squeak":
		return squeak
	case "pubkey":
		return pubkey
	case "peer":
		return peer
	default:
		return all
	}
}

func (c *Client) GetPaymentSummary(ctx context.Context, f PaymentFilter) (models.PaymentSummary, error) {
	endpoint := f.endpoint(EndpointGetPaymentSummary, EndpointGetPaymentSummaryForSqueak,
		EndpointGetPaymentSummaryForPubkey, EndpointGetPaymentSummaryForPeer)
	var reply SummaryReply
	if err := c.Call(ctx, endpoint, f.request(), &reply); err != nil {
		return models.PaymentSummary{}, err
	}
	return reply.Summary, nil
}

func (c *Client) GetSentPayments(ctx context.Context, f PaymentFilter, limit int, last *models.SentPayment) ([]models.SentPayment, error) {
	endpoint := f.endpoint(EndpointGetSentPayments, EndpointGetSentPaymentsForSqueak,
		EndpointGetSentPaymentsForPubkey, EndpointGetSentPaymentsForPeer)
	req := f.request()
	req.Limit = limit
	req.LastSentPayment = last
	var reply SentPaymentsReply
	if err := c.Call(ctx, endpoint, req, &reply); err != nil {
		return nil, err
	}
	return reply.SentPayments, nil
}

func (c *Client) GetReceivedPayments(ctx context.Context, f PaymentFilter, limit int, last *models.ReceivedPayment) ([]models.ReceivedPayment, error) {
	endpoint := f.endpoint(EndpointGetReceivedPayments, EndpointGetReceivedPaymentsForSqueak,
		EndpointGetReceivedPaymentsForPubkey, EndpointGetReceivedPaymentsForPeer)
	req := f.request()
	req.Limit = limit
	req.LastReceivedPayment = last
	var reply ReceivedPaymentsReply
	if err := c.Call(ctx, endpoint, req, &reply); err != nil {
		return nil, err
	}
	return reply.ReceivedPayments, nil
}

// ReprocessReceivedPayments asks the node to rescan its invoices for payments it missed.
func (c *Client) ReprocessReceivedPayments(ctx context.Context) error {
	return c.Call(ctx, EndpointReprocessReceived, Empty{}, nil)
}
