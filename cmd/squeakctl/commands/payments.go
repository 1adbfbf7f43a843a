package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/squeaknode/squeakweb/internal/rpc"
)

func paymentsCmd(opts *options) *cobra.Command {
	var (
		filter rpc.PaymentFilter
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Payment summary and history",
	}
	cmd.PersistentFlags().StringVar(&filter.SqueakHash, "squeak", "", "only payments for this squeak")
	cmd.PersistentFlags().StringVar(&filter.Pubkey, "pubkey", "", "only payments for squeaks by this pubkey")

	summary := &cobra.Command{
		Use:   "summary",
		Short: "Totals earned and spent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.client.GetPaymentSummary(cmd.Context(), filter)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "received: %s payments, %s\n", humanize.Comma(s.NumReceivedPayments), msat(s.AmountEarnedMsat))
			fmt.Fprintf(w, "sent:     %s payments, %s\n", humanize.Comma(s.NumSentPayments), msat(s.AmountSpentMsat))
			fmt.Fprintf(w, "net:      %s\n", msat(s.NetMsat()))
			return nil
		},
	}

	sent := &cobra.Command{
		Use:   "sent",
		Short: "List sent payments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := opts.client.GetSentPayments(cmd.Context(), filter, limit, nil)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, p := range items {
				valid := "valid"
				if !p.Valid {
					valid = "invalid"
				}
				fmt.Fprintf(w, "%5d  %-12s  %16s  %-14s  %s\n", p.SentPaymentID, short(p.SqueakHash), msat(p.PriceMsat), ago(p.TimeMs), valid)
			}
			return nil
		},
	}

	received := &cobra.Command{
		Use:   "received",
		Short: "List received payments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := opts.client.GetReceivedPayments(cmd.Context(), filter, limit, nil)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, p := range items {
				fmt.Fprintf(w, "%5d  %-12s  %16s  %s\n", p.ReceivedPaymentID, short(p.SqueakHash), msat(p.PriceMsat), ago(p.TimeMs))
			}
			return nil
		},
	}
	sent.Flags().IntVarP(&limit, "limit", "n", defaultLimit, "number of payments")
	received.Flags().IntVarP(&limit, "limit", "n", defaultLimit, "number of payments")

	reprocess := &cobra.Command{
		Use:   "reprocess",
		Short: "Reprocess received payments from the lightning node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.client.ReprocessReceivedPayments(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}

	cmd.AddCommand(summary, sent, received, reprocess)
	return cmd
}
