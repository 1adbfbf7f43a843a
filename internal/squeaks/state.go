// Package squeaks holds the squeak slices of a session and the actions that
// fill and patch them.
package squeaks

import (
	"github.com/squeaknode/squeakweb/internal/cache"
	"github.com/squeaknode/squeakweb/internal/models"
)

// List names accepted by State.List.
const (
	ListAncestors = "ancestors"
	ListReplies   = "replies"
	ListTimeline  = "timeline"
	ListSearch    = "search"
	ListProfile   = "profile"
	ListLiked     = "liked"
)

// State is one session's squeak cache.
type State struct {
	Current   cache.Item[models.Squeak]
	Ancestors cache.List[models.Squeak]
	Replies   cache.List[models.Squeak]
	Timeline  cache.List[models.Squeak]
	Search    cache.List[models.Squeak]
	Profile   cache.List[models.Squeak]
	Liked     cache.List[models.Squeak]
	Offers    cache.List[models.Offer]

	Make           cache.Flag
	Buy            cache.Flag
	Download       cache.Flag
	DownloadOffers cache.Flag
}

// NewState returns an empty squeak cache.
func NewState() *State {
	return &State{}
}

// List returns the squeak list called name.
func (st *State) List(name string) (*cache.List[models.Squeak], bool) {
	switch name {
	case ListAncestors:
		return &st.Ancestors, true
	case ListReplies:
		return &st.Replies, true
	case ListTimeline:
		return &st.Timeline, true
	case ListSearch:
		return &st.Search, true
	case ListProfile:
		return &st.Profile, true
	case ListLiked:
		return &st.Liked, true
	default:
		return nil, false
	}
}

func (st *State) lists() []*cache.List[models.Squeak] {
	return []*cache.List[models.Squeak]{&st.Ancestors, &st.Replies, &st.Timeline, &st.Search, &st.Profile, &st.Liked}
}

// Statuses reports every slice and flag status by name.
func (st *State) Statuses() map[string]cache.Status {
	return map[string]cache.Status{
		"current":         st.Current.Status(),
		ListAncestors:     st.Ancestors.Status(),
		ListReplies:       st.Replies.Status(),
		ListTimeline:      st.Timeline.Status(),
		ListSearch:        st.Search.Status(),
		ListProfile:       st.Profile.Status(),
		ListLiked:         st.Liked.Status(),
		"offers":          st.Offers.Status(),
		"make":            st.Make.Status(),
		"buy":             st.Buy.Status(),
		"download":        st.Download.Status(),
		"download_offers": st.DownloadOffers.Status(),
	}
}

func contains(hash string) func(models.Squeak) bool {
	return func(sq models.Squeak) bool {
		return sq.SqueakHash == hash || (sq.ResqueakedSqueak != nil && sq.ResqueakedSqueak.SqueakHash == hash)
	}
}

// patch writes updated over the current squeak and over every cached copy
// of it, including copies nested as a resqueaked squeak.
func (st *State) patch(updated models.Squeak) {
	hash := updated.SqueakHash
	apply := func(sq *models.Squeak) {
		if sq.ResqueakedSqueak != nil && sq.ResqueakedSqueak.SqueakHash == hash {
			nested := updated
			sq.ResqueakedSqueak = &nested
		}
		if sq.SqueakHash == hash {
			*sq = updated
		}
	}
	st.Current.Update(contains(hash), apply)
	for _, l := range st.lists() {
		l.Update(contains(hash), apply)
	}
}

// forget drops hash from every list and the current item. Resqueaks of a
// deleted squeak stay, with the nested copy cleared.
func (st *State) forget(hash string) {
	isHash := func(sq models.Squeak) bool { return sq.SqueakHash == hash }
	clearNested := func(sq *models.Squeak) {
		if sq.ResqueakedSqueak != nil && sq.ResqueakedSqueak.SqueakHash == hash {
			sq.ResqueakedSqueak = nil
		}
	}
	st.Current.ClearIf(isHash)
	st.Current.Update(contains(hash), clearNested)
	for _, l := range st.lists() {
		l.Remove(isHash)
		l.Update(contains(hash), clearNested)
	}
}
