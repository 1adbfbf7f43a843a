package rpc

import "github.com/squeaknode/squeakweb/internal/models"

// Request and reply envelopes. Integer keys are the field numbers of the
// gateway schema; fields left at their zero value are not sent.

type Empty struct{}

type SqueakHashRequest struct {
	SqueakHash string `cbor:"1,keyasint,omitempty"`
}

type PubkeyRequest struct {
	Pubkey string `cbor:"1,keyasint,omitempty"`
}

// SqueakPageRequest asks for the next page of a squeak list. LastEntry is the
// cursor: the last squeak of the previous page, nil for the first page.
type SqueakPageRequest struct {
	Limit      int            `cbor:"1,keyasint,omitempty"`
	LastEntry  *models.Squeak `cbor:"2,keyasint,omitempty"`
	SqueakHash string         `cbor:"3,keyasint,omitempty"`
	Pubkey     string         `cbor:"4,keyasint,omitempty"`
	SearchText string         `cbor:"5,keyasint,omitempty"`
}

type SqueakReply struct {
	Entry *models.Squeak `cbor:"1,keyasint,omitempty"`
}

type SqueaksReply struct {
	Entries []models.Squeak `cbor:"1,keyasint,omitempty"`
}

type MakeSqueakRequest struct {
	ProfileID          int64  `cbor:"1,keyasint,omitempty"`
	Content            string `cbor:"2,keyasint,omitempty"`
	ReplyTo            string `cbor:"3,keyasint,omitempty"`
	HasRecipient       bool   `cbor:"4,keyasint,omitempty"`
	RecipientProfileID int64  `cbor:"5,keyasint,omitempty"`
}

type MakeResqueakRequest struct {
	ProfileID      int64  `cbor:"1,keyasint,omitempty"`
	ResqueakedHash string `cbor:"2,keyasint,omitempty"`
	ReplyTo        string `cbor:"3,keyasint,omitempty"`
}

type SqueakHashReply struct {
	SqueakHash string `cbor:"1,keyasint,omitempty"`
}

type OfferRequest struct {
	OfferID int64 `cbor:"1,keyasint,omitempty"`
}

type OfferReply struct {
	Offer *models.Offer `cbor:"1,keyasint,omitempty"`
}

type OffersReply struct {
	Offers []models.Offer `cbor:"1,keyasint,omitempty"`
}

type PayOfferReply struct {
	SentPaymentID int64 `cbor:"1,keyasint,omitempty"`
}

type DownloadReply struct {
	Result models.DownloadResult `cbor:"1,keyasint"`
}

type NetworkReply struct {
	Network string `cbor:"1,keyasint,omitempty"`
}

type ProfileIDRequest struct {
	ProfileID int64 `cbor:"1,keyasint,omitempty"`
}

type ProfileReply struct {
	Profile *models.Profile `cbor:"1,keyasint,omitempty"`
}

type ProfilesReply struct {
	Profiles []models.Profile `cbor:"1,keyasint,omitempty"`
}

// UpdateProfileRequest carries the one attribute a profile mutation changes.
type UpdateProfileRequest struct {
	ProfileID    int64  `cbor:"1,keyasint,omitempty"`
	Following    bool   `cbor:"2,keyasint,omitempty"`
	ProfileName  string `cbor:"3,keyasint,omitempty"`
	ProfileImage string `cbor:"4,keyasint,omitempty"`
}

type CreateProfileRequest struct {
	ProfileName string `cbor:"1,keyasint,omitempty"`
	Pubkey      string `cbor:"2,keyasint,omitempty"`
	PrivateKey  string `cbor:"3,keyasint,omitempty"`
}

type ProfileIDReply struct {
	ProfileID int64 `cbor:"1,keyasint,omitempty"`
}

type PrivateKeyReply struct {
	PrivateKey string `cbor:"1,keyasint,omitempty"`
}

type PeerAddressRequest struct {
	PeerAddress models.PeerAddress `cbor:"1,keyasint"`
}

// UpdatePeerRequest identifies a saved peer and carries the attribute being changed.
type UpdatePeerRequest struct {
	PeerID       int64  `cbor:"1,keyasint,omitempty"`
	PeerName     string `cbor:"2,keyasint,omitempty"`
	Autoconnect  bool   `cbor:"3,keyasint,omitempty"`
	ShareForFree bool   `cbor:"4,keyasint,omitempty"`
}

type CreatePeerRequest struct {
	PeerName    string             `cbor:"1,keyasint,omitempty"`
	PeerAddress models.PeerAddress `cbor:"2,keyasint"`
}

type PeerIDReply struct {
	PeerID int64 `cbor:"1,keyasint,omitempty"`
}

type PeerReply struct {
	Peer *models.Peer `cbor:"1,keyasint,omitempty"`
}

type PeersReply struct {
	Peers []models.Peer `cbor:"1,keyasint,omitempty"`
}

type ConnectedPeersReply struct {
	ConnectedPeers []models.ConnectedPeer `cbor:"1,keyasint,omitempty"`
}

type PeerAddressReply struct {
	PeerAddress models.PeerAddress `cbor:"1,keyasint"`
}

type PortReply struct {
	Port int `cbor:"1,keyasint,omitempty"`
}

// PaymentsRequest scopes a payment query. At most one of SqueakHash, Pubkey
// and PeerAddress is set; the endpoint name says which.
type PaymentsRequest struct {
	SqueakHash          string                  `cbor:"1,keyasint,omitempty"`
	Pubkey              string                  `cbor:"2,keyasint,omitempty"`
	PeerAddress         *models.PeerAddress     `cbor:"3,keyasint,omitempty"`
	Limit               int                     `cbor:"4,keyasint,omitempty"`
	LastSentPayment     *models.SentPayment     `cbor:"5,keyasint,omitempty"`
	LastReceivedPayment *models.ReceivedPayment `cbor:"6,keyasint,omitempty"`
}

type SummaryReply struct {
	Summary models.PaymentSummary `cbor:"1,keyasint"`
}

type SentPaymentsReply struct {
	SentPayments []models.SentPayment `cbor:"1,keyasint,omitempty"`
}

type ReceivedPaymentsReply struct {
	ReceivedPayments []models.ReceivedPayment `cbor:"1,keyasint,omitempty"`
}

type SellPriceRequest struct {
	PriceMsat int64 `cbor:"1,keyasint,omitempty"`
}

type SellPriceReply struct {
	SellPrice models.SellPrice `cbor:"1,keyasint"`
}

type AddTwitterAccountRequest struct {
	Handle      string `cbor:"1,keyasint,omitempty"`
	ProfileID   int64  `cbor:"2,keyasint,omitempty"`
	BearerToken string `cbor:"3,keyasint,omitempty"`
}

type TwitterAccountIDRequest struct {
	TwitterAccountID int64 `cbor:"1,keyasint,omitempty"`
}

type TwitterAccountIDReply struct {
	TwitterAccountID int64 `cbor:"1,keyasint,omitempty"`
}

type TwitterAccountsReply struct {
	TwitterAccounts []models.TwitterAccount `cbor:"1,keyasint,omitempty"`
}
