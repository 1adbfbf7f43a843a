// Package models holds the records exchanged with the squeaknode admin gateway.
// The integer cbor keys are the wire schema; json names are what the browser sees.
package models

// Squeak is a squeak as displayed: its content (when unlocked), its author and
// recipient profiles when known, and counters maintained by the node.
type Squeak struct {
	SqueakHash          string   `cbor:"1,keyasint,omitempty" json:"squeak_hash"`
	SerializedSqueakHex string   `cbor:"2,keyasint,omitempty" json:"serialized_squeak_hex"`
	IsUnlocked          bool     `cbor:"3,keyasint,omitempty" json:"is_unlocked"`
	SecretKeyHex        string   `cbor:"4,keyasint,omitempty" json:"secret_key_hex,omitempty"`
	ContentStr          string   `cbor:"5,keyasint,omitempty" json:"content_str,omitempty"`
	BlockHeight         int64    `cbor:"6,keyasint,omitempty" json:"block_height"`
	BlockHash           string   `cbor:"7,keyasint,omitempty" json:"block_hash"`
	BlockTime           int64    `cbor:"8,keyasint,omitempty" json:"block_time"`
	SqueakTime          int64    `cbor:"9,keyasint,omitempty" json:"squeak_time"`
	IsReply             bool     `cbor:"10,keyasint,omitempty" json:"is_reply"`
	ReplyTo             string   `cbor:"11,keyasint,omitempty" json:"reply_to,omitempty"`
	AuthorPubkey        string   `cbor:"12,keyasint,omitempty" json:"author_pubkey"`
	IsAuthorKnown       bool     `cbor:"13,keyasint,omitempty" json:"is_author_known"`
	Author              *Profile `cbor:"14,keyasint,omitempty" json:"author,omitempty"`
	LikedTimeMs         int64    `cbor:"15,keyasint,omitempty" json:"liked_time_ms,omitempty"`
	NumReplies          int64    `cbor:"16,keyasint,omitempty" json:"num_replies"`
	NumResqueaks        int64    `cbor:"17,keyasint,omitempty" json:"num_resqueaks"`
	IsPrivate           bool     `cbor:"18,keyasint,omitempty" json:"is_private"`
	RecipientPubkey     string   `cbor:"19,keyasint,omitempty" json:"recipient_pubkey,omitempty"`
	IsRecipientKnown    bool     `cbor:"20,keyasint,omitempty" json:"is_recipient_known"`
	Recipient           *Profile `cbor:"21,keyasint,omitempty" json:"recipient,omitempty"`
	IsResqueak          bool     `cbor:"22,keyasint,omitempty" json:"is_resqueak"`
	ResqueakedHash      string   `cbor:"23,keyasint,omitempty" json:"resqueaked_hash,omitempty"`
	ResqueakedSqueak    *Squeak  `cbor:"24,keyasint,omitempty" json:"resqueaked_squeak,omitempty"`
}

// IsLiked reports whether the node owner liked the squeak.
func (s Squeak) IsLiked() bool {
	return s.LikedTimeMs > 0
}

// Offer is a priced decryption key for a locked squeak, sold by a peer.
type Offer struct {
	OfferID          int64        `cbor:"1,keyasint,omitempty" json:"offer_id"`
	SqueakHash       string       `cbor:"2,keyasint,omitempty" json:"squeak_hash"`
	PriceMsat        int64        `cbor:"3,keyasint,omitempty" json:"price_msat"`
	NodePubkey       string       `cbor:"4,keyasint,omitempty" json:"node_pubkey"`
	NodeHost         string       `cbor:"5,keyasint,omitempty" json:"node_host"`
	NodePort         int          `cbor:"6,keyasint,omitempty" json:"node_port"`
	InvoiceTimestamp int64        `cbor:"7,keyasint,omitempty" json:"invoice_timestamp"`
	InvoiceExpiry    int64        `cbor:"8,keyasint,omitempty" json:"invoice_expiry"`
	PeerAddress      *PeerAddress `cbor:"9,keyasint,omitempty" json:"peer_address,omitempty"`
}

// DownloadResult summarizes a download round against the connected peers.
type DownloadResult struct {
	NumberDownloaded int64 `cbor:"1,keyasint,omitempty" json:"number_downloaded"`
	NumberRequested  int64 `cbor:"2,keyasint,omitempty" json:"number_requested"`
	NumberPeers      int64 `cbor:"3,keyasint,omitempty" json:"number_peers"`
	ElapsedTimeMs    int64 `cbor:"4,keyasint,omitempty" json:"elapsed_time_ms"`
}
