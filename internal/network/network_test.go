package network

import (
	"context"
	"net/http"
	"testing"

	"github.com/squeaknode/squeakweb/internal/cache"
	"github.com/squeaknode/squeakweb/internal/models"
	"github.com/squeaknode/squeakweb/internal/rpc"
	"github.com/squeaknode/squeakweb/internal/rpc/rpctest"
)

func TestFetchNodeInfo(t *testing.T) {
	gw := rpctest.New(t)
	rpctest.Handle(gw, rpc.EndpointGetNetwork, func(rpc.Empty) (rpc.NetworkReply, error) {
		return rpc.NetworkReply{Network: "mainnet"}, nil
	})
	rpctest.Handle(gw, rpc.EndpointGetExternalAddress, func(rpc.Empty) (rpc.PeerAddressReply, error) {
		return rpc.PeerAddressReply{PeerAddress: models.PeerAddress{Network: "TORV3", Host: "xyz.onion", Port: 8555}}, nil
	})
	rpctest.Handle(gw, rpc.EndpointGetDefaultPeerPort, func(rpc.Empty) (rpc.PortReply, error) {
		return rpc.PortReply{Port: 8555}, nil
	})

	svc := NewService(gw.Client(t))
	st := NewState()
	ctx := context.Background()
	if err := svc.FetchNetwork(ctx, st); err != nil {
		t.Fatalf("network: %v", err)
	}
	if err := svc.FetchExternalAddress(ctx, st); err != nil {
		t.Fatalf("external address: %v", err)
	}
	if err := svc.FetchDefaultPeerPort(ctx, st); err != nil {
		t.Fatalf("default port: %v", err)
	}

	if n := st.Network.Get(); n == nil || *n != "mainnet" {
		t.Fatalf("unexpected network %v", n)
	}
	if a := st.ExternalAddress.Get(); a == nil || a.Host != "xyz.onion" {
		t.Fatalf("unexpected external address %+v", a)
	}
	if p := st.DefaultPeerPort.Get(); p == nil || *p != 8555 {
		t.Fatalf("unexpected port %v", p)
	}
}

func TestFetchNetworkFailureKeepsPrevious(t *testing.T) {
	gw := rpctest.New(t)
	gw.Fail(rpc.EndpointGetNetwork, http.StatusServiceUnavailable, "node starting")

	st := NewState()
	prev := "testnet"
	st.Network.Set(&prev)
	if err := NewService(gw.Client(t)).FetchNetwork(context.Background(), st); err == nil {
		t.Fatalf("expected error")
	}
	if n := st.Network.Get(); n == nil || *n != "testnet" || st.Network.Status() != cache.Idle {
		t.Fatalf("expected previous value kept and idle status")
	}
}
