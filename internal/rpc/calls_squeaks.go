package rpc

import (
	"context"

	"github.com/squeaknode/squeakweb/internal/models"
)

// GetSqueak returns nil without error when the node does not have the squeak.
func (c *Client) GetSqueak(ctx context.Context, hash string) (*models.Squeak, error) {
	var reply SqueakReply
	if err := c.Call(ctx, EndpointGetSqueak, SqueakHashRequest{SqueakHash: hash}, &reply); err != nil {
		return nil, err
	}
	return reply.Entry, nil
}

func (c *Client) squeaks(ctx context.Context, endpoint string, req any) ([]models.Squeak, error) {
	var reply SqueaksReply
	if err := c.Call(ctx, endpoint, req, &reply); err != nil {
		return nil, err
	}
	return reply.Entries, nil
}

func (c *Client) GetTimelineSqueaks(ctx context.Context, limit int, last *models.Squeak) ([]models.Squeak, error) {
	return c.squeaks(ctx, EndpointGetTimelineSqueaks, SqueakPageRequest{Limit: limit, LastEntry: last})
}

func (c *Client) GetLikedSqueaks(ctx context.Context, limit int, last *models.Squeak) ([]models.Squeak, error) {
	return c.squeaks(ctx, EndpointGetLikedSqueaks, SqueakPageRequest{Limit: limit, LastEntry: last})
}

func (c *Client) GetAncestorSqueaks(ctx context.Context, hash string) ([]models.Squeak, error) {
	return c.squeaks(ctx, EndpointGetAncestorSqueaks, SqueakHashRequest{SqueakHash: hash})
}

func (c *Client) GetReplySqueaks(ctx context.Context, hash string, limit int, last *models.Squeak) ([]models.Squeak, error) {
	return c.squeaks(ctx, EndpointGetReplySqueaks, SqueakPageRequest{SqueakHash: hash, Limit: limit, LastEntry: last})
}

func (c *Client) GetPubkeySqueaks(ctx context.Context, pubkey string, limit int, last *models.Squeak) ([]models.Squeak, error) {
	return c.squeaks(ctx, EndpointGetPubkeySqueaks, SqueakPageRequest{Pubkey: pubkey, Limit: limit, LastEntry: last})
}

func (c *Client) GetSearchSqueaks(ctx context.Context, text string, limit int, last *models.Squeak) ([]models.Squeak, error) {
	return c.squeaks(ctx, EndpointGetSearchSqueaks, SqueakPageRequest{SearchText: text, Limit: limit, LastEntry: last})
}

func (c *Client) LikeSqueak(ctx context.Context, hash string) error {
	return c.Call(ctx, EndpointLikeSqueak, SqueakHashRequest{SqueakHash: hash}, nil)
}

func (c *Client) UnlikeSqueak(ctx context.Context, hash string) error {
	return c.Call(ctx, EndpointUnlikeSqueak, SqueakHashRequest{SqueakHash: hash}, nil)
}

func (c *Client) DeleteSqueak(ctx context.Context, hash string) error {
	return c.Call(ctx, EndpointDeleteSqueak, SqueakHashRequest{SqueakHash: hash}, nil)
}

func (c *Client) DecryptSqueak(ctx context.Context, hash string) error {
	return c.Call(ctx, EndpointDecryptSqueak, SqueakHashRequest{SqueakHash: hash}, nil)
}

func (c *Client) MakeSqueak(ctx context.Context, req MakeSqueakRequest) (string, error) {
	var reply SqueakHashReply
	if err := c.Call(ctx, EndpointMakeSqueak, req, &reply); err != nil {
		return "", err
	}
	return reply.SqueakHash, nil
}

func (c *Client) MakeResqueak(ctx context.Context, req MakeResqueakRequest) (string, error) {
	var reply SqueakHashReply
	if err := c.Call(ctx, EndpointMakeResqueak, req, &reply); err != nil {
		return "", err
	}
	return reply.SqueakHash, nil
}

func (c *Client) GetBuyOffers(ctx context.Context, hash string) ([]models.Offer, error) {
	var reply OffersReply
	if err := c.Call(ctx, EndpointGetBuyOffers, SqueakHashRequest{SqueakHash: hash}, &reply); err != nil {
		return nil, err
	}
	return reply.Offers, nil
}

func (c *Client) GetBuyOffer(ctx context.Context, offerID int64) (*models.Offer, error) {
	var reply OfferReply
	if err := c.Call(ctx, EndpointGetBuyOffer, OfferRequest{OfferID: offerID}, &reply); err != nil {
		return nil, err
	}
	return reply.Offer, nil
}

// PayOffer pays the offer's invoice and returns the sent payment id.
func (c *Client) PayOffer(ctx context.Context, offerID int64) (int64, error) {
	var reply PayOfferReply
	if err := c.Call(ctx, EndpointPayOffer, OfferRequest{OfferID: offerID}, &reply); err != nil {
		return 0, err
	}
	return reply.SentPaymentID, nil
}

func (c *Client) download(ctx context.Context, endpoint string, req any) (models.DownloadResult, error) {
	var reply DownloadReply
	if err := c.Call(ctx, endpoint, req, &reply); err != nil {
		return models.DownloadResult{}, err
	}
	return reply.Result, nil
}

func (c *Client) DownloadSqueak(ctx context.Context, hash string) (models.DownloadResult, error) {
	return c.download(ctx, EndpointDownloadSqueak, SqueakHashRequest{SqueakHash: hash})
}

func (c *Client) DownloadSecretKey(ctx context.Context, hash string) (models.DownloadResult, error) {
	return c.download(ctx, EndpointDownloadSecretKey, SqueakHashRequest{SqueakHash: hash})
}

func (c *Client) DownloadOffers(ctx context.Context, hash string) (models.DownloadResult, error) {
	return c.download(ctx, EndpointDownloadOffers, SqueakHashRequest{SqueakHash: hash})
}

func (c *Client) DownloadReplies(ctx context.Context, hash string) (models.DownloadResult, error) {
	return c.download(ctx, EndpointDownloadReplies, SqueakHashRequest{SqueakHash: hash})
}

func (c *Client) DownloadPubkeySqueaks(ctx context.Context, pubkey string) (models.DownloadResult, error) {
	return c.download(ctx, EndpointDownloadPubkeyItems, PubkeyRequest{Pubkey: pubkey})
}
