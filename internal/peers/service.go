// Package peers holds the peer slices of a session: the peer being viewed,
// the live connections and the saved peers.
package peers

import (
	"context"

	"github.com/squeaknode/squeakweb/internal/apierror"
	"github.com/squeaknode/squeakweb/internal/cache"
	"github.com/squeaknode/squeakweb/internal/models"
)

var (
	// ErrIDRequired is returned by actions that need a peer id and got none.
	ErrIDRequired = apierror.Invalid("peer_id is required")
	// ErrAddressRequired is returned when a peer address is missing a component.
	ErrAddressRequired = apierror.Invalid("peer_address needs network, host and port")
)

// Gateway is the part of the admin gateway the peer slices use.
type Gateway interface {
	GetPeer(ctx context.Context, id int64) (*models.Peer, error)
	GetPeerByAddress(ctx context.Context, addr models.PeerAddress) (*models.Peer, error)
	GetPeers(ctx context.Context) ([]models.Peer, error)
	GetConnectedPeers(ctx context.Context) ([]models.ConnectedPeer, error)
	ConnectPeer(ctx context.Context, addr models.PeerAddress) error
	DisconnectPeer(ctx context.Context, addr models.PeerAddress) error
	CreatePeer(ctx context.Context, name string, addr models.PeerAddress) (int64, error)
	DeletePeer(ctx context.Context, id int64) error
	RenamePeer(ctx context.Context, id int64, name string) error
	SetPeerAutoconnect(ctx context.Context, id int64, autoconnect bool) error
	SetPeerShareForFree(ctx context.Context, id int64, shareForFree bool) error
}

// State is one session's peer cache.
type State struct {
	Current   cache.Item[models.Peer]
	Connected cache.List[models.ConnectedPeer]
	Saved     cache.List[models.Peer]

	Connect    cache.Flag
	Disconnect cache.Flag
	Save       cache.Flag
	Remove     cache.Flag
}

func NewState() *State {
	return &State{}
}

// ConnectionByAddress returns the live connection to addr, if any.
func (st *State) ConnectionByAddress(addr models.PeerAddress) (models.ConnectedPeer, bool) {
	return st.Connected.Find(func(cp models.ConnectedPeer) bool { return cp.PeerAddress.Equal(addr) })
}

// Service runs peer actions against a session's State.
type Service struct {
	gw Gateway
}

func NewService(gw Gateway) *Service {
	return &Service{gw: gw}
}

// FetchPeer loads the saved peer at addr as the current peer. An address
// with no saved peer clears it.
func (s *Service) FetchPeer(ctx context.Context, st *State, addr models.PeerAddress) error {
	if !addr.Complete() {
		return ErrAddressRequired
	}
	st.Current.Begin()
	p, err := s.gw.GetPeerByAddress(ctx, addr)
	if err != nil {
		st.Current.Fail()
		return err
	}
	st.Current.Set(p)
	return nil
}

// FetchPeerByID loads a saved peer by id as the current peer.
func (s *Service) FetchPeerByID(ctx context.Context, st *State, id int64) error {
	if id == 0 {
		return ErrIDRequired
	}
	st.Current.Begin()
	p, err := s.gw.GetPeer(ctx, id)
	if err != nil {
		st.Current.Fail()
		return err
	}
	st.Current.Set(p)
	return nil
}

func (s *Service) FetchConnected(ctx context.Context, st *State) error {
	st.Connected.Begin()
	items, err := s.gw.GetConnectedPeers(ctx)
	if err != nil {
		st.Connected.Fail()
		return err
	}
	st.Connected.Replace(items)
	return nil
}

func (s *Service) FetchSaved(ctx context.Context, st *State) error {
	st.Saved.Begin()
	items, err := s.gw.GetPeers(ctx)
	if err != nil {
		st.Saved.Fail()
		return err
	}
	st.Saved.Replace(items)
	return nil
}

// Connect opens a connection to addr and reloads the connected peers.
func (s *Service) Connect(ctx context.Context, st *State, addr models.PeerAddress) error {
	if !addr.Complete() {
		return ErrAddressRequired
	}
	st.Connect.Begin()
	defer st.Connect.End()
	if err := s.gw.ConnectPeer(ctx, addr); err != nil {
		return err
	}
	return s.FetchConnected(ctx, st)
}

// Disconnect closes the connection to addr and reloads the connected peers.
func (s *Service) Disconnect(ctx context.Context, st *State, addr models.PeerAddress) error {
	if !addr.Complete() {
		return ErrAddressRequired
	}
	st.Disconnect.Begin()
	defer st.Disconnect.End()
	if err := s.gw.DisconnectPeer(ctx, addr); err != nil {
		return err
	}
	return s.FetchConnected(ctx, st)
}

// Save stores addr as a named peer, reloads the saved peers and makes the
// saved entry for addr the current peer.
func (s *Service) Save(ctx context.Context, st *State, name string, addr models.PeerAddress) (int64, error) {
	if !addr.Complete() {
		return 0, ErrAddressRequired
	}
	st.Save.Begin()
	defer st.Save.End()
	id, err := s.gw.CreatePeer(ctx, name, addr)
	if err != nil {
		return 0, err
	}
	if err := s.FetchSaved(ctx, st); err != nil {
		return id, err
	}
	s.selectSaved(st, func(p models.Peer) bool { return p.PeerAddress.Equal(addr) })
	return id, nil
}

// Delete forgets a saved peer, reloads the saved peers and clears the current peer.
func (s *Service) Delete(ctx context.Context, st *State, id int64) error {
	if id == 0 {
		return ErrIDRequired
	}
	st.Remove.Begin()
	defer st.Remove.End()
	if err := s.gw.DeletePeer(ctx, id); err != nil {
		return err
	}
	st.Current.Clear()
	return s.FetchSaved(ctx, st)
}

func (s *Service) SetAutoconnect(ctx context.Context, st *State, id int64, autoconnect bool) error {
	if id == 0 {
		return ErrIDRequired
	}
	if err := s.gw.SetPeerAutoconnect(ctx, id, autoconnect); err != nil {
		return err
	}
	return s.reloadSelecting(ctx, st, id)
}

func (s *Service) SetShareForFree(ctx context.Context, st *State, id int64, shareForFree bool) error {
	if id == 0 {
		return ErrIDRequired
	}
	if err := s.gw.SetPeerShareForFree(ctx, id, shareForFree); err != nil {
		return err
	}
	return s.reloadSelecting(ctx, st, id)
}

// Rename renames a saved peer and reloads it as the current peer.
func (s *Service) Rename(ctx context.Context, st *State, id int64, name string) error {
	if id == 0 {
		return ErrIDRequired
	}
	if name == "" {
		return apierror.Invalid("peer_name is required")
	}
	if err := s.gw.RenamePeer(ctx, id, name); err != nil {
		return err
	}
	if err := s.FetchPeerByID(ctx, st, id); err != nil {
		return err
	}
	if p := st.Current.Get(); p != nil {
		st.Saved.Update(func(x models.Peer) bool { return x.PeerID == id }, func(x *models.Peer) { *x = *p })
	}
	return nil
}

func (s *Service) reloadSelecting(ctx context.Context, st *State, id int64) error {
	if err := s.FetchSaved(ctx, st); err != nil {
		return err
	}
	s.selectSaved(st, func(p models.Peer) bool { return p.PeerID == id })
	return nil
}

func (s *Service) selectSaved(st *State, match func(models.Peer) bool) {
	if p, ok := st.Saved.Find(match); ok {
		st.Current.Set(&p)
	}
}
