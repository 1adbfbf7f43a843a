package peers

import (
	"context"
	"testing"

	"github.com/squeaknode/squeakweb/internal/models"
	"github.com/squeaknode/squeakweb/internal/rpc"
	"github.com/squeaknode/squeakweb/internal/rpc/rpctest"
)

var testAddr = models.PeerAddress{Network: "IPV4", Host: "192.168.1.20", Port: 8555}

func TestSaveSelectsPeerMatchingAddress(t *testing.T) {
	gw := rpctest.New(t)
	rpctest.Handle(gw, rpc.EndpointCreatePeer, func(req rpc.CreatePeerRequest) (rpc.PeerIDReply, error) {
		if !req.PeerAddress.Equal(testAddr) || req.PeerName != "home" {
			t.Errorf("unexpected request %+v", req)
		}
		return rpc.PeerIDReply{PeerID: 2}, nil
	})
	rpctest.Handle(gw, rpc.EndpointGetPeers, func(rpc.Empty) (rpc.PeersReply, error) {
		return rpc.PeersReply{Peers: []models.Peer{
			{PeerID: 1, PeerAddress: models.PeerAddress{Network: "TORV3", Host: "abc.onion", Port: 8555}},
			{PeerID: 2, PeerName: "home", PeerAddress: testAddr},
		}}, nil
	})

	svc := NewService(gw.Client(t))
	st := NewState()
	id, err := svc.Save(context.Background(), st, "home", testAddr)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id != 2 {
		t.Fatalf("unexpected id %d", id)
	}
	if cur := st.Current.Get(); cur == nil || cur.PeerID != 2 {
		t.Fatalf("expected current peer 2, got %+v", cur)
	}
	if st.Saved.Len() != 2 {
		t.Fatalf("expected saved peers reloaded")
	}
}

func TestSetAutoconnectSelectsPeerByID(t *testing.T) {
	gw := rpctest.New(t)
	rpctest.Handle(gw, rpc.EndpointSetPeerAutoconnect, func(req rpc.UpdatePeerRequest) (rpc.Empty, error) {
		if req.PeerID != 3 || !req.Autoconnect {
			t.Errorf("unexpected request %+v", req)
		}
		return rpc.Empty{}, nil
	})
	rpctest.Handle(gw, rpc.EndpointGetPeers, func(rpc.Empty) (rpc.PeersReply, error) {
		return rpc.PeersReply{Peers: []models.Peer{{PeerID: 3, Autoconnect: true, PeerAddress: testAddr}}}, nil
	})

	svc := NewService(gw.Client(t))
	st := NewState()
	if err := svc.SetAutoconnect(context.Background(), st, 3, true); err != nil {
		t.Fatalf("autoconnect: %v", err)
	}
	if cur := st.Current.Get(); cur == nil || !cur.Autoconnect {
		t.Fatalf("expected autoconnect peer selected, got %+v", cur)
	}
}

func TestConnectReloadsConnectedPeers(t *testing.T) {
	gw := rpctest.New(t)
	rpctest.Handle(gw, rpc.EndpointConnectPeer, func(rpc.PeerAddressRequest) (rpc.Empty, error) {
		return rpc.Empty{}, nil
	})
	rpctest.Handle(gw, rpc.EndpointGetConnectedPeers, func(rpc.Empty) (rpc.ConnectedPeersReply, error) {
		return rpc.ConnectedPeersReply{ConnectedPeers: []models.ConnectedPeer{{PeerAddress: testAddr, NumberMessagesSent: 4}}}, nil
	})

	svc := NewService(gw.Client(t))
	st := NewState()
	if err := svc.Connect(context.Background(), st, testAddr); err != nil {
		t.Fatalf("connect: %v", err)
	}
	cp, ok := st.ConnectionByAddress(testAddr)
	if !ok || cp.NumberMessagesSent != 4 {
		t.Fatalf("expected connection for address, got %+v", cp)
	}
	if _, ok := st.ConnectionByAddress(models.PeerAddress{Network: "IPV4", Host: "other", Port: 1}); ok {
		t.Fatalf("unexpected connection match")
	}
}

func TestConnectRequiresCompleteAddress(t *testing.T) {
	gw := rpctest.New(t)
	svc := NewService(gw.Client(t))
	if err := svc.Connect(context.Background(), NewState(), models.PeerAddress{Host: "x"}); err != ErrAddressRequired {
		t.Fatalf("expected ErrAddressRequired, got %v", err)
	}
}

func TestDeleteClearsCurrent(t *testing.T) {
	gw := rpctest.New(t)
	rpctest.Handle(gw, rpc.EndpointDeletePeer, func(rpc.UpdatePeerRequest) (rpc.Empty, error) {
		return rpc.Empty{}, nil
	})
	rpctest.Handle(gw, rpc.EndpointGetPeers, func(rpc.Empty) (rpc.PeersReply, error) {
		return rpc.PeersReply{}, nil
	})

	svc := NewService(gw.Client(t))
	st := NewState()
	st.Current.Set(&models.Peer{PeerID: 9})
	st.Saved.Replace([]models.Peer{{PeerID: 9}})
	if err := svc.Delete(context.Background(), st, 9); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if st.Current.Get() != nil || st.Saved.Len() != 0 {
		t.Fatalf("expected current cleared and saved list reloaded")
	}
}
