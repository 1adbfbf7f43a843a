package squeaks

import (
	"context"
	"fmt"

	"github.com/squeaknode/squeakweb/internal/apierror"
	"github.com/squeaknode/squeakweb/internal/cache"
	"github.com/squeaknode/squeakweb/internal/models"
	"github.com/squeaknode/squeakweb/internal/notification"
	"github.com/squeaknode/squeakweb/internal/rpc"
)

// DefaultLimit is the page size used when a caller does not give one.
const DefaultLimit = 10

// ErrHashRequired is returned by actions that need a squeak hash and got none.
var ErrHashRequired = apierror.Invalid("squeak hash is required")

// Gateway is the part of the admin gateway the squeak slices use.
type Gateway interface {
	GetSqueak(ctx context.Context, hash string) (*models.Squeak, error)
	GetTimelineSqueaks(ctx context.Context, limit int, last *models.Squeak) ([]models.Squeak, error)
	GetLikedSqueaks(ctx context.Context, limit int, last *models.Squeak) ([]models.Squeak, error)
	GetAncestorSqueaks(ctx context.Context, hash string) ([]models.Squeak, error)
	GetReplySqueaks(ctx context.Context, hash string, limit int, last *models.Squeak) ([]models.Squeak, error)
	GetPubkeySqueaks(ctx context.Context, pubkey string, limit int, last *models.Squeak) ([]models.Squeak, error)
	GetSearchSqueaks(ctx context.Context, text string, limit int, last *models.Squeak) ([]models.Squeak, error)
	LikeSqueak(ctx context.Context, hash string) error
	UnlikeSqueak(ctx context.Context, hash string) error
	DeleteSqueak(ctx context.Context, hash string) error
	DecryptSqueak(ctx context.Context, hash string) error
	MakeSqueak(ctx context.Context, req rpc.MakeSqueakRequest) (string, error)
	MakeResqueak(ctx context.Context, req rpc.MakeResqueakRequest) (string, error)
	GetBuyOffers(ctx context.Context, hash string) ([]models.Offer, error)
	GetBuyOffer(ctx context.Context, offerID int64) (*models.Offer, error)
	PayOffer(ctx context.Context, offerID int64) (int64, error)
	DownloadSqueak(ctx context.Context, hash string) (models.DownloadResult, error)
	DownloadSecretKey(ctx context.Context, hash string) (models.DownloadResult, error)
	DownloadOffers(ctx context.Context, hash string) (models.DownloadResult, error)
	DownloadReplies(ctx context.Context, hash string) (models.DownloadResult, error)
	DownloadPubkeySqueaks(ctx context.Context, pubkey string) (models.DownloadResult, error)
}

// Service runs squeak actions against a session's State.
type Service struct {
	gw       Gateway
	notifier notification.Notifier
}

// NewService constructs a squeak service. notifier may be nil.
func NewService(gw Gateway, notifier notification.Notifier) *Service {
	return &Service{gw: gw, notifier: notifier}
}

// Page selects a page of a list. Without More the list is discarded and
// refetched from the start; with More the next page is appended after the
// last cached squeak.
type Page struct {
	Limit int
	More  bool
}

func (p Page) limit() int {
	if p.Limit <= 0 {
		return DefaultLimit
	}
	return p.Limit
}

type pageFunc func(ctx context.Context, limit int, last *models.Squeak) ([]models.Squeak, error)

// fetchPage drives the append-on-more pagination shared by the timeline,
// search, profile and liked lists.
func fetchPage(ctx context.Context, l *cache.List[models.Squeak], p Page, fetch pageFunc) error {
	var cursor *models.Squeak
	if p.More {
		cursor = l.Last()
	} else {
		l.Clear()
	}
	l.Begin()
	page, err := fetch(ctx, p.limit(), cursor)
	if err != nil {
		l.Fail()
		return err
	}
	l.Append(page)
	return nil
}

// FetchSqueak loads the squeak being viewed. A squeak the node does not have clears the current item.
func (s *Service) FetchSqueak(ctx context.Context, st *State, hash string) error {
	if hash == "" {
		return ErrHashRequired
	}
	st.Current.Begin()
	sq, err := s.gw.GetSqueak(ctx, hash)
	if err != nil {
		st.Current.Fail()
		return err
	}
	st.Current.Set(sq)
	return nil
}

func (s *Service) FetchAncestors(ctx context.Context, st *State, hash string) error {
	if hash == "" {
		return ErrHashRequired
	}
	st.Ancestors.Begin()
	items, err := s.gw.GetAncestorSqueaks(ctx, hash)
	if err != nil {
		st.Ancestors.Fail()
		return err
	}
	st.Ancestors.Replace(items)
	return nil
}

// FetchReplies replaces the replies list with one page of replies to hash.
// cursor is the last reply of the previous page, or nil.
func (s *Service) FetchReplies(ctx context.Context, st *State, hash string, limit int, cursor *models.Squeak) error {
	if hash == "" {
		return ErrHashRequired
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	st.Replies.Begin()
	items, err := s.gw.GetReplySqueaks(ctx, hash, limit, cursor)
	if err != nil {
		st.Replies.Fail()
		return err
	}
	st.Replies.Replace(items)
	return nil
}

func (s *Service) FetchTimeline(ctx context.Context, st *State, p Page) error {
	return fetchPage(ctx, &st.Timeline, p, s.gw.GetTimelineSqueaks)
}

func (s *Service) FetchLiked(ctx context.Context, st *State, p Page) error {
	return fetchPage(ctx, &st.Liked, p, s.gw.GetLikedSqueaks)
}

func (s *Service) FetchSearch(ctx context.Context, st *State, text string, p Page) error {
	return fetchPage(ctx, &st.Search, p, func(ctx context.Context, limit int, last *models.Squeak) ([]models.Squeak, error) {
		return s.gw.GetSearchSqueaks(ctx, text, limit, last)
	})
}

func (s *Service) FetchProfileSqueaks(ctx context.Context, st *State, pubkey string, p Page) error {
	if pubkey == "" {
		return apierror.Invalid("pubkey is required")
	}
	return fetchPage(ctx, &st.Profile, p, func(ctx context.Context, limit int, last *models.Squeak) ([]models.Squeak, error) {
		return s.gw.GetPubkeySqueaks(ctx, pubkey, limit, last)
	})
}

// Like marks hash as liked and patches every cached copy of it.
func (s *Service) Like(ctx context.Context, st *State, hash string) error {
	return s.mutateAndRefresh(ctx, st, hash, s.gw.LikeSqueak)
}

// Unlike clears the like on hash and patches every cached copy of it.
func (s *Service) Unlike(ctx context.Context, st *State, hash string) error {
	return s.mutateAndRefresh(ctx, st, hash, s.gw.UnlikeSqueak)
}

// Decrypt unlocks hash with a secret key the node already holds.
func (s *Service) Decrypt(ctx context.Context, st *State, hash string) error {
	return s.mutateAndRefresh(ctx, st, hash, s.gw.DecryptSqueak)
}

func (s *Service) mutateAndRefresh(ctx context.Context, st *State, hash string, mutate func(context.Context, string) error) error {
	if hash == "" {
		return ErrHashRequired
	}
	if err := mutate(ctx, hash); err != nil {
		return err
	}
	return s.refresh(ctx, st, hash)
}

// refresh refetches hash and writes the new copy over every cached one.
func (s *Service) refresh(ctx context.Context, st *State, hash string) error {
	sq, err := s.gw.GetSqueak(ctx, hash)
	if err != nil {
		return err
	}
	if sq == nil {
		return nil
	}
	st.patch(*sq)
	return nil
}

// Delete removes hash from the node and from every cached list.
func (s *Service) Delete(ctx context.Context, st *State, hash string) error {
	if hash == "" {
		return ErrHashRequired
	}
	if err := s.gw.DeleteSqueak(ctx, hash); err != nil {
		return err
	}
	st.forget(hash)
	s.notify(ctx, notification.Message{Kind: notification.KindSqueakDeleted, Subject: hash, Body: "squeak deleted"})
	return nil
}

// MakeSqueakInput describes a new squeak. A reply sets ReplyTo; a private
// squeak sets HasRecipient and RecipientProfileID.
type MakeSqueakInput struct {
	ProfileID          int64
	Content            string
	ReplyTo            string
	HasRecipient       bool
	RecipientProfileID int64
}

// MakeSqueak signs and stores a new squeak and returns its hash.
func (s *Service) MakeSqueak(ctx context.Context, st *State, in MakeSqueakInput) (string, error) {
	if in.ProfileID == 0 {
		return "", apierror.Invalid("profile_id is required")
	}
	if in.Content == "" {
		return "", apierror.Invalid("content is required")
	}
	if in.HasRecipient && in.RecipientProfileID == 0 {
		return "", apierror.Invalid("recipient_profile_id is required for a private squeak")
	}
	st.Make.Begin()
	defer st.Make.End()
	hash, err := s.gw.MakeSqueak(ctx, rpc.MakeSqueakRequest{
		ProfileID:          in.ProfileID,
		Content:            in.Content,
		ReplyTo:            in.ReplyTo,
		HasRecipient:       in.HasRecipient,
		RecipientProfileID: in.RecipientProfileID,
	})
	if err != nil {
		return "", err
	}
	s.notify(ctx, notification.Message{Kind: notification.KindSqueakMade, Subject: hash, Body: "squeak made"})
	return hash, nil
}

// MakeResqueak resqueaks resqueakedHash as profileID and returns the new hash.
func (s *Service) MakeResqueak(ctx context.Context, st *State, profileID int64, resqueakedHash, replyTo string) (string, error) {
	if profileID == 0 {
		return "", apierror.Invalid("profile_id is required")
	}
	if resqueakedHash == "" {
		return "", ErrHashRequired
	}
	st.Make.Begin()
	defer st.Make.End()
	hash, err := s.gw.MakeResqueak(ctx, rpc.MakeResqueakRequest{
		ProfileID:      profileID,
		ResqueakedHash: resqueakedHash,
		ReplyTo:        replyTo,
	})
	if err != nil {
		return "", err
	}
	s.notify(ctx, notification.Message{Kind: notification.KindSqueakMade, Subject: hash, Body: "resqueak of " + resqueakedHash})
	return hash, nil
}

// FetchOffers loads the buy offers for hash. The previous offers are
// dropped as soon as the fetch starts.
func (s *Service) FetchOffers(ctx context.Context, st *State, hash string) error {
	if hash == "" {
		return ErrHashRequired
	}
	st.Offers.Clear()
	st.Offers.Begin()
	offers, err := s.gw.GetBuyOffers(ctx, hash)
	if err != nil {
		st.Offers.Fail()
		return err
	}
	st.Offers.Replace(offers)
	return nil
}

// BuyOffer pays for offerID, then refetches the unlocked squeak and patches
// every cached copy. hash may be empty; it is then taken from the cached
// offers or from the gateway.
func (s *Service) BuyOffer(ctx context.Context, st *State, offerID int64, hash string) (int64, error) {
	if offerID == 0 {
		return 0, apierror.Invalid("offer_id is required")
	}
	if hash == "" {
		if offer, ok := st.Offers.Find(func(o models.Offer) bool { return o.OfferID == offerID }); ok {
			hash = offer.SqueakHash
		}
	}
	if hash == "" {
		offer, err := s.gw.GetBuyOffer(ctx, offerID)
		if err != nil {
			return 0, err
		}
		if offer == nil {
			return 0, apierror.Invalidf("offer %d not found", offerID)
		}
		hash = offer.SqueakHash
	}

	st.Buy.Begin()
	defer st.Buy.End()
	paymentID, err := s.gw.PayOffer(ctx, offerID)
	if err != nil {
		return 0, err
	}
	s.notify(ctx, notification.Message{
		Kind:    notification.KindOfferPaid,
		Subject: hash,
		Body:    fmt.Sprintf("paid offer %d, sent payment %d", offerID, paymentID),
	})
	return paymentID, s.refresh(ctx, st, hash)
}

// DownloadSqueak asks connected peers for hash and shows the result as the current squeak.
func (s *Service) DownloadSqueak(ctx context.Context, st *State, hash string) (models.DownloadResult, error) {
	if hash == "" {
		return models.DownloadResult{}, ErrHashRequired
	}
	st.Download.Begin()
	defer st.Download.End()
	res, err := s.gw.DownloadSqueak(ctx, hash)
	if err != nil {
		return models.DownloadResult{}, err
	}
	return res, s.FetchSqueak(ctx, st, hash)
}

// DownloadSecretKey fetches the decryption key for hash from peers that
// share it for free, then patches the unlocked squeak everywhere.
func (s *Service) DownloadSecretKey(ctx context.Context, st *State, hash string) (models.DownloadResult, error) {
	if hash == "" {
		return models.DownloadResult{}, ErrHashRequired
	}
	st.Download.Begin()
	defer st.Download.End()
	res, err := s.gw.DownloadSecretKey(ctx, hash)
	if err != nil {
		return models.DownloadResult{}, err
	}
	return res, s.refresh(ctx, st, hash)
}

// DownloadOffers asks connected peers for offers on hash and reloads the offers list.
func (s *Service) DownloadOffers(ctx context.Context, st *State, hash string) (models.DownloadResult, error) {
	if hash == "" {
		return models.DownloadResult{}, ErrHashRequired
	}
	st.DownloadOffers.Begin()
	defer st.DownloadOffers.End()
	res, err := s.gw.DownloadOffers(ctx, hash)
	if err != nil {
		return models.DownloadResult{}, err
	}
	return res, s.FetchOffers(ctx, st, hash)
}

// DownloadReplies asks connected peers for replies to hash and reloads the replies list.
func (s *Service) DownloadReplies(ctx context.Context, st *State, hash string) (models.DownloadResult, error) {
	if hash == "" {
		return models.DownloadResult{}, ErrHashRequired
	}
	st.Download.Begin()
	defer st.Download.End()
	res, err := s.gw.DownloadReplies(ctx, hash)
	if err != nil {
		return models.DownloadResult{}, err
	}
	return res, s.FetchReplies(ctx, st, hash, DefaultLimit, nil)
}

// DownloadPubkeySqueaks asks connected peers for squeaks by pubkey and
// reloads the first page of the profile squeaks list.
func (s *Service) DownloadPubkeySqueaks(ctx context.Context, st *State, pubkey string) (models.DownloadResult, error) {
	if pubkey == "" {
		return models.DownloadResult{}, apierror.Invalid("pubkey is required")
	}
	st.Download.Begin()
	defer st.Download.End()
	res, err := s.gw.DownloadPubkeySqueaks(ctx, pubkey)
	if err != nil {
		return models.DownloadResult{}, err
	}
	return res, s.FetchProfileSqueaks(ctx, st, pubkey, Page{})
}

func (s *Service) notify(ctx context.Context, msg notification.Message) {
	if s.notifier != nil {
		_ = s.notifier.Send(ctx, msg)
	}
}
