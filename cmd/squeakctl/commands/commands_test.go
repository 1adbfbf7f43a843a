package commands

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/squeaknode/squeakweb/internal/models"
	"github.com/squeaknode/squeakweb/internal/rpc"
	"github.com/squeaknode/squeakweb/internal/rpc/rpctest"
)

func run(t *testing.T, gw *rpctest.Gateway, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--url", gw.URL(), "--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestPaymentsSummaryIsHumanized(t *testing.T) {
	gw := rpctest.New(t)
	rpctest.Handle(gw, rpc.EndpointGetPaymentSummary, func(rpc.PaymentsRequest) (rpc.SummaryReply, error) {
		return rpc.SummaryReply{Summary: models.PaymentSummary{
			NumReceivedPayments: 1200,
			NumSentPayments:     3,
			AmountEarnedMsat:    2500000,
			AmountSpentMsat:     500000,
		}}, nil
	})

	out, err := run(t, gw, "payments", "summary")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{"1,200 payments", "2,500,000 msat", "net:      2,000,000 msat"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestTimelinePassesLimit(t *testing.T) {
	gw := rpctest.New(t)
	rpctest.Handle(gw, rpc.EndpointGetTimelineSqueaks, func(req rpc.SqueakPageRequest) (rpc.SqueaksReply, error) {
		if req.Limit != 5 {
			t.Errorf("expected limit 5, got %d", req.Limit)
		}
		return rpc.SqueaksReply{Entries: []models.Squeak{
			{SqueakHash: "abcdef0123456789", IsUnlocked: true, ContentStr: "hello world", Author: &models.Profile{ProfileName: "alice"}},
		}}, nil
	})

	out, err := run(t, gw, "timeline", "-n", "5")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "abcdef012345") || !strings.Contains(out, "alice") || !strings.Contains(out, "hello world") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestSellPriceSetRejectsNegative(t *testing.T) {
	gw := rpctest.New(t)
	if _, err := run(t, gw, "sell-price", "set", "-5"); err == nil {
		t.Fatalf("expected error")
	}
	if gw.Calls(rpc.EndpointSetSellPrice) != 0 {
		t.Fatalf("invalid price reached the gateway")
	}
}

func TestGatewayErrorIsReturned(t *testing.T) {
	gw := rpctest.New(t)
	gw.Fail(rpc.EndpointGetNetwork, http.StatusInternalServerError, "lnd not ready")

	_, err := run(t, gw, "network")
	if err == nil || err.Error() != "lnd not ready" {
		t.Fatalf("expected gateway text, got %v", err)
	}
}
