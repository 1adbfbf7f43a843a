package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func sellPriceCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sell-price",
		Short: "Show, set or clear the sell price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.client.GetSellPrice(cmd.Context())
			if err != nil {
				return err
			}
			source := "default"
			if p.PriceMsatIsSet {
				source = "set"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, default %s)\n", msat(p.Effective()), source, msat(p.DefaultPriceMsat))
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set [msat]",
		Short: "Set the price asked for this node's squeaks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || v < 0 {
				return fmt.Errorf("invalid price %q", args[0])
			}
			if err := opts.client.SetSellPrice(cmd.Context(), v); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Go back to the node's default price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.client.ClearSellPrice(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}

	cmd.AddCommand(set, clearCmd)
	return cmd
}

func networkCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "network",
		Short: "Show the node's network and external address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			network, err := opts.client.GetNetwork(ctx)
			if err != nil {
				return err
			}
			addr, err := opts.client.GetExternalAddress(ctx)
			if err != nil {
				return err
			}
			port, err := opts.client.GetDefaultPeerPort(ctx)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "network:          %s\n", network)
			fmt.Fprintf(w, "external address: %s\n", addr)
			fmt.Fprintf(w, "default port:     %d\n", port)
			return nil
		},
	}
}
