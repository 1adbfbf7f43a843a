package rpc

import (
	"context"

	"github.com/squeaknode/squeakweb/internal/models"
)

func (c *Client) profiles(ctx context.Context, endpoint string) ([]models.Profile, error) {
	var reply ProfilesReply
	if err := c.Call(ctx, endpoint, Empty{}, &reply); err != nil {
		return nil, err
	}
	return reply.Profiles, nil
}

func (c *Client) GetProfiles(ctx context.Context) ([]models.Profile, error) {
	return c.profiles(ctx, EndpointGetProfiles)
}

func (c *Client) GetSigningProfiles(ctx context.Context) ([]models.Profile, error) {
	return c.profiles(ctx, EndpointGetSigningProfiles)
}

func (c *Client) GetContactProfiles(ctx context.Context) ([]models.Profile, error) {
	return c.profiles(ctx, EndpointGetContactProfiles)
}

func (c *Client) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	var reply ProfileReply
	if err := c.Call(ctx, EndpointGetProfile, ProfileIDRequest{ProfileID: id}, &reply); err != nil {
		return nil, err
	}
	return reply.Profile, nil
}

func (c *Client) GetProfileByPubkey(ctx context.Context, pubkey string) (*models.Profile, error) {
	var reply ProfileReply
	if err := c.Call(ctx, EndpointGetProfileByPubkey, PubkeyRequest{Pubkey: pubkey}, &reply); err != nil {
		return nil, err
	}
	return reply.Profile, nil
}

func (c *Client) SetProfileFollowing(ctx context.Context, id int64, following bool) error {
	return c.Call(ctx, EndpointSetProfileFollowing, UpdateProfileRequest{ProfileID: id, Following: following}, nil)
}

func (c *Client) RenameProfile(ctx context.Context, id int64, name string) error {
	return c.Call(ctx, EndpointRenameProfile, UpdateProfileRequest{ProfileID: id, ProfileName: name}, nil)
}

// SetProfileImage takes the image as base64 text.
func (c *Client) SetProfileImage(ctx context.Context, id int64, image string) error {
	return c.Call(ctx, EndpointSetProfileImage, UpdateProfileRequest{ProfileID: id, ProfileImage: image}, nil)
}

func (c *Client) ClearProfileImage(ctx context.Context, id int64) error {
	return c.Call(ctx, EndpointClearProfileImage, ProfileIDRequest{ProfileID: id}, nil)
}

func (c *Client) DeleteProfile(ctx context.Context, id int64) error {
	return c.Call(ctx, EndpointDeleteProfile, ProfileIDRequest{ProfileID: id}, nil)
}

func (c *Client) GetProfilePrivateKey(ctx context.Context, id int64) (string, error) {
	var reply PrivateKeyReply
	if err := c.Call(ctx, EndpointGetProfilePrivateKey, ProfileIDRequest{ProfileID: id}, &reply); err != nil {
		return "", err
	}
	return reply.PrivateKey, nil
}

func (c *Client) createProfile(ctx context.Context, endpoint string, req CreateProfileRequest) (int64, error) {
	var reply ProfileIDReply
	if err := c.Call(ctx, endpoint, req, &reply); err != nil {
		return 0, err
	}
	return reply.ProfileID, nil
}

func (c *Client) CreateSigningProfile(ctx context.Context, name string) (int64, error) {
	return c.createProfile(ctx, EndpointCreateSigningProfile, CreateProfileRequest{ProfileName: name})
}

func (c *Client) ImportSigningProfile(ctx context.Context, name, privateKey string) (int64, error) {
	return c.createProfile(ctx, EndpointImportSigningProfile, CreateProfileRequest{ProfileName: name, PrivateKey: privateKey})
}

func (c *Client) CreateContactProfile(ctx context.Context, name, pubkey string) (int64, error) {
	return c.createProfile(ctx, EndpointCreateContactProfile, CreateProfileRequest{ProfileName: name, Pubkey: pubkey})
}
