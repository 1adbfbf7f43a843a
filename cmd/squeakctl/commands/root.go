package commands

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"github.com/squeaknode/squeakweb/internal/config"
	"github.com/squeaknode/squeakweb/internal/logging"
	"github.com/squeaknode/squeakweb/internal/rpc"
)

// options are the persistent flags plus the client built from them.
type options struct {
	host     string
	port     int
	url      string
	timeout  time.Duration
	retries  uint
	logLevel string

	client *rpc.Client
}

func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "squeakctl",
		Short:        "Operate a squeaknode through its admin gateway",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.connect(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.host, "host", "", "gateway host (default $GATEWAY_HOST or localhost)")
	flags.IntVar(&opts.port, "port", 0, "gateway port (default $GATEWAY_PORT or 8994)")
	flags.StringVar(&opts.url, "url", "", "gateway base URL, overrides --host and --port")
	flags.DurationVar(&opts.timeout, "timeout", 0, "per call timeout (default $GATEWAY_TIMEOUT or 30s)")
	flags.UintVar(&opts.retries, "retries", 0, "attempts per call for transient failures")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level for stderr diagnostics")

	root.AddCommand(
		timelineCmd(opts),
		searchCmd(opts),
		squeakCmd(opts),
		likeCmd(opts, true),
		likeCmd(opts, false),
		makeCmd(opts),
		profilesCmd(opts),
		peersCmd(opts),
		paymentsCmd(opts),
		sellPriceCmd(opts),
		networkCmd(opts),
	)
	return root
}

func (o *options) connect(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	g, err := config.LoadGateway(ctx, envconfig.OsLookuper())
	if err != nil {
		return err
	}
	if o.host != "" {
		g.Host = o.host
	}
	if o.port != 0 {
		g.Port = o.port
	}
	if o.timeout > 0 {
		g.Timeout = o.timeout
	}
	if o.retries > 0 {
		g.RetryAttempts = o.retries
	}

	baseURL := g.BaseURL()
	if o.url != "" {
		baseURL = o.url
	}
	logger := logging.NewWriter(os.Stderr, o.logLevel)
	o.client, err = rpc.NewClientWithHTTP(baseURL, g, &http.Client{Timeout: g.Timeout}, logger)
	return err
}
