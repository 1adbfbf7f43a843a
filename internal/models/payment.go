package models

// SentPayment records an offer this node paid for.
type SentPayment struct {
	SentPaymentID int64        `cbor:"1,keyasint,omitempty" json:"sent_payment_id"`
	SqueakHash    string       `cbor:"2,keyasint,omitempty" json:"squeak_hash"`
	PaymentHash   string       `cbor:"3,keyasint,omitempty" json:"payment_hash"`
	PriceMsat     int64        `cbor:"4,keyasint,omitempty" json:"price_msat"`
	NodePubkey    string       `cbor:"5,keyasint,omitempty" json:"node_pubkey"`
	Valid         bool         `cbor:"6,keyasint,omitempty" json:"valid"`
	TimeMs        int64        `cbor:"7,keyasint,omitempty" json:"time_ms"`
	PeerAddress   *PeerAddress `cbor:"8,keyasint,omitempty" json:"peer_address,omitempty"`
}

// ReceivedPayment records a peer paying this node for a squeak.
type ReceivedPayment struct {
	ReceivedPaymentID int64        `cbor:"1,keyasint,omitempty" json:"received_payment_id"`
	SqueakHash        string       `cbor:"2,keyasint,omitempty" json:"squeak_hash"`
	PaymentHash       string       `cbor:"3,keyasint,omitempty" json:"payment_hash"`
	PriceMsat         int64        `cbor:"4,keyasint,omitempty" json:"price_msat"`
	TimeMs            int64        `cbor:"5,keyasint,omitempty" json:"time_ms"`
	PeerAddress       *PeerAddress `cbor:"6,keyasint,omitempty" json:"peer_address,omitempty"`
}

// PaymentSummary totals payments, optionally scoped to a squeak, pubkey or peer.
type PaymentSummary struct {
	NumReceivedPayments int64 `cbor:"1,keyasint,omitempty" json:"num_received_payments"`
	NumSentPayments     int64 `cbor:"2,keyasint,omitempty" json:"num_sent_payments"`
	AmountEarnedMsat    int64 `cbor:"3,keyasint,omitempty" json:"amount_earned_msat"`
	AmountSpentMsat     int64 `cbor:"4,keyasint,omitempty" json:"amount_spent_msat"`
}

// NetMsat is earned minus spent.
func (s PaymentSummary) NetMsat() int64 {
	return s.AmountEarnedMsat - s.AmountSpentMsat
}
