package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/squeaknode/squeakweb/internal/models"
)

func peersCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "peers",
		Short: "List saved and connected peers, connect and disconnect",
	}

	saved := &cobra.Command{
		Use:   "saved",
		Short: "List saved peers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := opts.client.GetPeers(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(w, "no saved peers")
			}
			for _, p := range items {
				flags := ""
				if p.Autoconnect {
					flags += " autoconnect"
				}
				if p.ShareForFree {
					flags += " share-for-free"
				}
				fmt.Fprintf(w, "%5d  %-20s  %s%s\n", p.PeerID, p.PeerName, p.PeerAddress, flags)
			}
			return nil
		},
	}

	connected := &cobra.Command{
		Use:   "connected",
		Short: "List connected peers with traffic counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := opts.client.GetConnectedPeers(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(w, "no connected peers")
			}
			for _, p := range items {
				fmt.Fprintf(w, "%-40s  connected %-14s  in %s (%s msgs)  out %s (%s msgs)\n",
					p.PeerAddress,
					humanize.Time(time.Unix(p.ConnectTimeS, 0)),
					humanize.Bytes(uint64(p.NumberBytesReceived)),
					humanize.Comma(p.NumberMessagesReceived),
					humanize.Bytes(uint64(p.NumberBytesSent)),
					humanize.Comma(p.NumberMessagesSent),
				)
			}
			return nil
		},
	}

	var network string
	addressCmd := func(use, desc string, connect bool) *cobra.Command {
		c := &cobra.Command{
			Use:   use + " [host] [port]",
			Short: desc,
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				port, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("invalid port %q", args[1])
				}
				addr := models.PeerAddress{Network: network, Host: args[0], Port: port}
				call := opts.client.ConnectPeer
				if !connect {
					call = opts.client.DisconnectPeer
				}
				if err := call(cmd.Context(), addr); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			},
		}
		c.Flags().StringVar(&network, "network", "IPV4", "address network: IPV4 or TORV3")
		return c
	}

	cmd.AddCommand(saved, connected,
		addressCmd("connect", "Connect to a peer", true),
		addressCmd("disconnect", "Disconnect from a peer", false),
	)
	return cmd
}
