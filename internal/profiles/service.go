// Package profiles holds the profile slices of a session: the profile being
// viewed plus the signing and contact profile lists.
package profiles

import (
	"context"
	"fmt"

	"github.com/squeaknode/squeakweb/internal/apierror"
	"github.com/squeaknode/squeakweb/internal/cache"
	"github.com/squeaknode/squeakweb/internal/models"
)

var (
	// ErrIDRequired is returned by actions that need a profile id and got none.
	ErrIDRequired = apierror.Invalid("profile_id is required")
	// ErrNameRequired is returned when creating or renaming without a name.
	ErrNameRequired = apierror.Invalid("profile_name is required")
)

// Gateway is the part of the admin gateway the profile slices use.
type Gateway interface {
	GetProfiles(ctx context.Context) ([]models.Profile, error)
	GetSigningProfiles(ctx context.Context) ([]models.Profile, error)
	GetContactProfiles(ctx context.Context) ([]models.Profile, error)
	GetProfile(ctx context.Context, id int64) (*models.Profile, error)
	GetProfileByPubkey(ctx context.Context, pubkey string) (*models.Profile, error)
	SetProfileFollowing(ctx context.Context, id int64, following bool) error
	RenameProfile(ctx context.Context, id int64, name string) error
	SetProfileImage(ctx context.Context, id int64, image string) error
	ClearProfileImage(ctx context.Context, id int64) error
	DeleteProfile(ctx context.Context, id int64) error
	GetProfilePrivateKey(ctx context.Context, id int64) (string, error)
	CreateSigningProfile(ctx context.Context, name string) (int64, error)
	ImportSigningProfile(ctx context.Context, name, privateKey string) (int64, error)
	CreateContactProfile(ctx context.Context, name, pubkey string) (int64, error)
}

// State is one session's profile cache.
type State struct {
	Current  cache.Item[models.Profile]
	Signing  cache.List[models.Profile]
	Contacts cache.List[models.Profile]
	All      cache.List[models.Profile]

	CreateContact cache.Flag
	CreateSigning cache.Flag
	ImportSigning cache.Flag
	ExportKey     cache.Flag
}

// NewState returns an empty profile cache.
func NewState() *State {
	return &State{}
}

func (st *State) lists() []*cache.List[models.Profile] {
	return []*cache.List[models.Profile]{&st.Signing, &st.Contacts, &st.All}
}

// Service runs profile actions against a session's State.
type Service struct {
	gw Gateway
}

func NewService(gw Gateway) *Service {
	return &Service{gw: gw}
}

func fetchList(ctx context.Context, l *cache.List[models.Profile], fetch func(context.Context) ([]models.Profile, error)) error {
	l.Begin()
	items, err := fetch(ctx)
	if err != nil {
		l.Fail()
		return err
	}
	l.Replace(items)
	return nil
}

func (s *Service) FetchSigning(ctx context.Context, st *State) error {
	return fetchList(ctx, &st.Signing, s.gw.GetSigningProfiles)
}

func (s *Service) FetchContacts(ctx context.Context, st *State) error {
	return fetchList(ctx, &st.Contacts, s.gw.GetContactProfiles)
}

// FetchAll loads signing and contact profiles together.
func (s *Service) FetchAll(ctx context.Context, st *State) error {
	return fetchList(ctx, &st.All, s.gw.GetProfiles)
}

// FetchByPubkey loads the profile being viewed. An unknown pubkey clears it.
func (s *Service) FetchByPubkey(ctx context.Context, st *State, pubkey string) error {
	if pubkey == "" {
		return apierror.Invalid("pubkey is required")
	}
	st.Current.Begin()
	p, err := s.gw.GetProfileByPubkey(ctx, pubkey)
	if err != nil {
		st.Current.Fail()
		return err
	}
	st.Current.Set(p)
	return nil
}

// Follow starts following the profile.
func (s *Service) Follow(ctx context.Context, st *State, id int64) error {
	return s.mutate(ctx, st, id, func(ctx context.Context) error { return s.gw.SetProfileFollowing(ctx, id, true) })
}

// Unfollow stops following the profile.
func (s *Service) Unfollow(ctx context.Context, st *State, id int64) error {
	return s.mutate(ctx, st, id, func(ctx context.Context) error { return s.gw.SetProfileFollowing(ctx, id, false) })
}

func (s *Service) Rename(ctx context.Context, st *State, id int64, name string) error {
	if name == "" {
		return ErrNameRequired
	}
	return s.mutate(ctx, st, id, func(ctx context.Context) error { return s.gw.RenameProfile(ctx, id, name) })
}

// SetImage replaces the profile picture with image, base64 encoded.
func (s *Service) SetImage(ctx context.Context, st *State, id int64, image string) error {
	if image == "" {
		return apierror.Invalid("profile_image is required")
	}
	return s.mutate(ctx, st, id, func(ctx context.Context) error { return s.gw.SetProfileImage(ctx, id, image) })
}

func (s *Service) ClearImage(ctx context.Context, st *State, id int64) error {
	return s.mutate(ctx, st, id, func(ctx context.Context) error { return s.gw.ClearProfileImage(ctx, id) })
}

// mutate runs a change on profile id, refetches it and patches the current
// profile (matched by pubkey) and every list entry with that id.
func (s *Service) mutate(ctx context.Context, st *State, id int64, change func(context.Context) error) error {
	if id == 0 {
		return ErrIDRequired
	}
	if err := change(ctx); err != nil {
		return err
	}
	updated, err := s.gw.GetProfile(ctx, id)
	if err != nil {
		return err
	}
	if updated == nil {
		return nil
	}
	u := *updated
	st.Current.Update(func(p models.Profile) bool { return p.Pubkey == u.Pubkey }, func(p *models.Profile) { *p = u })
	for _, l := range st.lists() {
		l.Update(func(p models.Profile) bool { return p.ProfileID == u.ProfileID }, func(p *models.Profile) { *p = u })
	}
	return nil
}

// Delete removes the profile from the node, the current item and every list.
func (s *Service) Delete(ctx context.Context, st *State, id int64) error {
	if id == 0 {
		return ErrIDRequired
	}
	if err := s.gw.DeleteProfile(ctx, id); err != nil {
		return err
	}
	byID := func(p models.Profile) bool { return p.ProfileID == id }
	st.Current.ClearIf(byID)
	for _, l := range st.lists() {
		l.Remove(byID)
	}
	return nil
}

// CreateContact saves a contact for pubkey and returns the new profile's pubkey.
func (s *Service) CreateContact(ctx context.Context, st *State, name, pubkey string) (string, error) {
	if name == "" {
		return "", ErrNameRequired
	}
	if pubkey == "" {
		return "", apierror.Invalid("pubkey is required")
	}
	st.CreateContact.Begin()
	defer st.CreateContact.End()
	id, err := s.gw.CreateContactProfile(ctx, name, pubkey)
	if err != nil {
		return "", err
	}
	return s.created(ctx, st, id, s.FetchContacts)
}

// CreateSigning generates a new key pair and returns the new profile's pubkey.
func (s *Service) CreateSigning(ctx context.Context, st *State, name string) (string, error) {
	if name == "" {
		return "", ErrNameRequired
	}
	st.CreateSigning.Begin()
	defer st.CreateSigning.End()
	id, err := s.gw.CreateSigningProfile(ctx, name)
	if err != nil {
		return "", err
	}
	return s.created(ctx, st, id, s.FetchSigning)
}

// ImportSigning stores an existing private key and returns the new profile's pubkey.
func (s *Service) ImportSigning(ctx context.Context, st *State, name, privateKey string) (string, error) {
	if name == "" {
		return "", ErrNameRequired
	}
	if privateKey == "" {
		return "", apierror.Invalid("private_key is required")
	}
	st.ImportSigning.Begin()
	defer st.ImportSigning.End()
	id, err := s.gw.ImportSigningProfile(ctx, name, privateKey)
	if err != nil {
		return "", err
	}
	return s.created(ctx, st, id, s.FetchSigning)
}

func (s *Service) created(ctx context.Context, st *State, id int64, reload func(context.Context, *State) error) (string, error) {
	p, err := s.gw.GetProfile(ctx, id)
	if err != nil {
		return "", err
	}
	if p == nil {
		return "", fmt.Errorf("profile %d not found after create", id)
	}
	if err := reload(ctx, st); err != nil {
		return p.Pubkey, err
	}
	return p.Pubkey, nil
}

// PrivateKey exports the private key of a signing profile.
func (s *Service) PrivateKey(ctx context.Context, st *State, id int64) (string, error) {
	if id == 0 {
		return "", ErrIDRequired
	}
	st.ExportKey.Begin()
	defer st.ExportKey.End()
	return s.gw.GetProfilePrivateKey(ctx, id)
}
