package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/squeaknode/squeakweb/internal/rpc"
)

const defaultLimit = 20

func timelineCmd(opts *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Print the newest squeaks of followed profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := opts.client.GetTimelineSqueaks(cmd.Context(), limit, nil)
			if err != nil {
				return err
			}
			printSqueaks(cmd.OutOrStdout(), items)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", defaultLimit, "number of squeaks")
	return cmd
}

func searchCmd(opts *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search [text]",
		Short: "Search squeak contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := opts.client.GetSearchSqueaks(cmd.Context(), args[0], limit, nil)
			if err != nil {
				return err
			}
			printSqueaks(cmd.OutOrStdout(), items)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", defaultLimit, "number of squeaks")
	return cmd
}

func squeakCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "squeak [hash]",
		Short: "Show one squeak",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sq, err := opts.client.GetSqueak(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if sq == nil {
				return fmt.Errorf("squeak %s not found", args[0])
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "hash:     %s\n", sq.SqueakHash)
			fmt.Fprintf(w, "author:   %s (%s)\n", author(*sq), sq.AuthorPubkey)
			fmt.Fprintf(w, "block:    %d %s\n", sq.BlockHeight, sq.BlockHash)
			fmt.Fprintf(w, "time:     %s\n", ago(sq.SqueakTime*1000))
			fmt.Fprintf(w, "replies:  %d  resqueaks: %d\n", sq.NumReplies, sq.NumResqueaks)
			if sq.IsReply {
				fmt.Fprintf(w, "reply to: %s\n", sq.ReplyTo)
			}
			if sq.IsUnlocked {
				fmt.Fprintf(w, "\n%s\n", sq.ContentStr)
			} else {
				fmt.Fprintln(w, "\n(locked, buy an offer to read)")
			}
			return nil
		},
	}
}

func likeCmd(opts *options, like bool) *cobra.Command {
	use, desc := "like [hash]", "Like a squeak"
	if !like {
		use, desc = "unlike [hash]", "Remove a like"
	}
	return &cobra.Command{
		Use:   use,
		Short: desc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			call := opts.client.LikeSqueak
			if !like {
				call = opts.client.UnlikeSqueak
			}
			if err := call(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func makeCmd(opts *options) *cobra.Command {
	var (
		profileID int64
		replyTo   string
	)
	cmd := &cobra.Command{
		Use:   "make [content]",
		Short: "Sign a new squeak with a signing profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := opts.client.MakeSqueak(cmd.Context(), rpc.MakeSqueakRequest{
				ProfileID: profileID,
				Content:   args[0],
				ReplyTo:   replyTo,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	cmd.Flags().Int64Var(&profileID, "profile-id", 0, "signing profile id")
	cmd.Flags().StringVar(&replyTo, "reply-to", "", "hash of the squeak this replies to")
	_ = cmd.MarkFlagRequired("profile-id")
	return cmd
}
