package rpc

import (
	"context"

	"github.com/squeaknode/squeakweb/internal/models"
)

// Node

func (c *Client) GetNetwork(ctx context.Context) (string, error) {
	var reply NetworkReply
	if err := c.Call(ctx, EndpointGetNetwork, Empty{}, &reply); err != nil {
		return "", err
	}
	return reply.Network, nil
}

func (c *Client) GetExternalAddress(ctx context.Context) (models.PeerAddress, error) {
	var reply PeerAddressReply
	if err := c.Call(ctx, EndpointGetExternalAddress, Empty{}, &reply); err != nil {
		return models.PeerAddress{}, err
	}
	return reply.PeerAddress, nil
}

func (c *Client) GetDefaultPeerPort(ctx context.Context) (int, error) {
	var reply PortReply
	if err := c.Call(ctx, EndpointGetDefaultPeerPort, Empty{}, &reply); err != nil {
		return 0, err
	}
	return reply.Port, nil
}

// Logout ends the gateway session, for gateways that keep one.
func (c *Client) Logout(ctx context.Context) error {
	return c.Call(ctx, EndpointLogout, Empty{}, nil)
}

// Sell price

func (c *Client) GetSellPrice(ctx context.Context) (models.SellPrice, error) {
	var reply SellPriceReply
	if err := c.Call(ctx, EndpointGetSellPrice, Empty{}, &reply); err != nil {
		return models.SellPrice{}, err
	}
	return reply.SellPrice, nil
}

func (c *Client) SetSellPrice(ctx context.Context, priceMsat int64) error {
	return c.Call(ctx, EndpointSetSellPrice, SellPriceRequest{PriceMsat: priceMsat}, nil)
}

func (c *Client) ClearSellPrice(ctx context.Context) error {
	return c.Call(ctx, EndpointClearSellPrice, Empty{}, nil)
}

// Twitter

func (c *Client) GetTwitterAccounts(ctx context.Context) ([]models.TwitterAccount, error) {
	var reply TwitterAccountsReply
	if err := c.Call(ctx, EndpointGetTwitterAccounts, Empty{}, &reply); err != nil {
		return nil, err
	}
	return reply.TwitterAccounts, nil
}

func (c *Client) AddTwitterAccount(ctx context.Context, req AddTwitterAccountRequest) (int64, error) {
	var reply TwitterAccountIDReply
	if err := c.Call(ctx, EndpointAddTwitterAccount, req, &reply); err != nil {
		return 0, err
	}
	return reply.TwitterAccountID, nil
}

func (c *Client) DeleteTwitterAccount(ctx context.Context, id int64) error {
	return c.Call(ctx, EndpointDeleteTwitterAccount, TwitterAccountIDRequest{TwitterAccountID: id}, nil)
}
