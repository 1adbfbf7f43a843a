package models

import (
	"net"
	"strconv"
)

// PeerAddress locates a squeaknode peer. Network is "IPV4" or "TORV3".
type PeerAddress struct {
	Network string `cbor:"1,keyasint,omitempty" json:"network"`
	Host    string `cbor:"2,keyasint,omitempty" json:"host"`
	Port    int    `cbor:"3,keyasint,omitempty" json:"port"`
}

// Equal compares all three address components.
func (a PeerAddress) Equal(b PeerAddress) bool {
	return a.Network == b.Network && a.Host == b.Host && a.Port == b.Port
}

// Complete reports whether every component of the address is set.
func (a PeerAddress) Complete() bool {
	return a.Network != "" && a.Host != "" && a.Port > 0
}

func (a PeerAddress) String() string {
	return a.Network + "/" + net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Peer is a saved peer.
type Peer struct {
	PeerID       int64       `cbor:"1,keyasint,omitempty" json:"peer_id"`
	PeerName     string      `cbor:"2,keyasint,omitempty" json:"peer_name"`
	PeerAddress  PeerAddress `cbor:"3,keyasint" json:"peer_address"`
	Autoconnect  bool        `cbor:"4,keyasint,omitempty" json:"autoconnect"`
	ShareForFree bool        `cbor:"5,keyasint,omitempty" json:"share_for_free"`
}

// ConnectedPeer is a live connection with its traffic counters.
type ConnectedPeer struct {
	PeerAddress              PeerAddress `cbor:"1,keyasint" json:"peer_address"`
	ConnectTimeS             int64       `cbor:"2,keyasint,omitempty" json:"connect_time_s"`
	LastMessageReceivedTimeS int64       `cbor:"3,keyasint,omitempty" json:"last_message_received_time_s"`
	NumberMessagesReceived   int64       `cbor:"4,keyasint,omitempty" json:"number_messages_received"`
	NumberBytesReceived      int64       `cbor:"5,keyasint,omitempty" json:"number_bytes_received"`
	NumberMessagesSent       int64       `cbor:"6,keyasint,omitempty" json:"number_messages_sent"`
	NumberBytesSent          int64       `cbor:"7,keyasint,omitempty" json:"number_bytes_sent"`
	SavedPeer                *Peer       `cbor:"8,keyasint,omitempty" json:"saved_peer,omitempty"`
}
