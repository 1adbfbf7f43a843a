package rpc

import (
	"context"

	"github.com/squeaknode/squeakweb/internal/models"
)

func (c *Client) GetPeer(ctx context.Context, id int64) (*models.Peer, error) {
	var reply PeerReply
	if err := c.Call(ctx, EndpointGetPeer, UpdatePeerRequest{PeerID: id}, &reply); err != nil {
		return nil, err
	}
	return reply.Peer, nil
}

// GetPeerByAddress returns nil without error when no peer is saved at addr.
func (c *Client) GetPeerByAddress(ctx context.Context, addr models.PeerAddress) (*models.Peer, error) {
	var reply PeerReply
	if err := c.Call(ctx, EndpointGetPeerByAddress, PeerAddressRequest{PeerAddress: addr}, &reply); err != nil {
		return nil, err
	}
	return reply.Peer, nil
}

func (c *Client) GetPeers(ctx context.Context) ([]models.Peer, error) {
	var reply PeersReply
	if err := c.Call(ctx, EndpointGetPeers, Empty{}, &reply); err != nil {
		return nil, err
	}
	return reply.Peers, nil
}

func (c *Client) GetConnectedPeers(ctx context.Context) ([]models.ConnectedPeer, error) {
	var reply ConnectedPeersReply
	if err := c.Call(ctx, EndpointGetConnectedPeers, Empty{}, &reply); err != nil {
		return nil, err
	}
	return reply.ConnectedPeers, nil
}

func (c *Client) ConnectPeer(ctx context.Context, addr models.PeerAddress) error {
	return c.Call(ctx, EndpointConnectPeer, PeerAddressRequest{PeerAddress: addr}, nil)
}

func (c *Client) DisconnectPeer(ctx context.Context, addr models.PeerAddress) error {
	return c.Call(ctx, EndpointDisconnectPeer, PeerAddressRequest{PeerAddress: addr}, nil)
}

func (c *Client) CreatePeer(ctx context.Context, name string, addr models.PeerAddress) (int64, error) {
	var reply PeerIDReply
	if err := c.Call(ctx, EndpointCreatePeer, CreatePeerRequest{PeerName: name, PeerAddress: addr}, &reply); err != nil {
		return 0, err
	}
	return reply.PeerID, nil
}

func (c *Client) DeletePeer(ctx context.Context, id int64) error {
	return c.Call(ctx, EndpointDeletePeer, UpdatePeerRequest{PeerID: id}, nil)
}

func (c *Client) RenamePeer(ctx context.Context, id int64, name string) error {
	return c.Call(ctx, EndpointRenamePeer, UpdatePeerRequest{PeerID: id, PeerName: name}, nil)
}

func (c *Client) SetPeerAutoconnect(ctx context.Context, id int64, autoconnect bool) error {
	return c.Call(ctx, EndpointSetPeerAutoconnect, UpdatePeerRequest{PeerID: id, Autoconnect: autoconnect}, nil)
}

func (c *Client) SetPeerShareForFree(ctx context.Context, id int64, shareForFree bool) error {
	return c.Call(ctx, EndpointSetPeerShareForFree, UpdatePeerRequest{PeerID: id, ShareForFree: shareForFree}, nil)
}
