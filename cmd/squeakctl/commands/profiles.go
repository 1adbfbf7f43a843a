package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/squeaknode/squeakweb/internal/models"
)

func profilesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List, follow and unfollow profiles",
	}

	list := func(use, desc string, fetch func(*cobra.Command) ([]models.Profile, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: desc,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				items, err := fetch(cmd)
				if err != nil {
					return err
				}
				printProfiles(cmd.OutOrStdout(), items)
				return nil
			},
		}
	}

	follow := func(use, desc string, following bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " [profile-id]",
			Short: desc,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid profile id %q", args[0])
				}
				if err := opts.client.SetProfileFollowing(cmd.Context(), id, following); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			},
		}
	}

	cmd.AddCommand(
		list("signing", "List signing profiles", func(cmd *cobra.Command) ([]models.Profile, error) {
			return opts.client.GetSigningProfiles(cmd.Context())
		}),
		list("contacts", "List contact profiles", func(cmd *cobra.Command) ([]models.Profile, error) {
			return opts.client.GetContactProfiles(cmd.Context())
		}),
		follow("follow", "Follow a profile", true),
		follow("unfollow", "Stop following a profile", false),
	)
	return cmd
}

func printProfiles(w io.Writer, items []models.Profile) {
	if len(items) == 0 {
		fmt.Fprintln(w, "no profiles")
		return
	}
	for _, p := range items {
		following := " "
		if p.Following {
			following = "F"
		}
		fmt.Fprintf(w, "%5d %s  %-20s  %s\n", p.ProfileID, following, p.ProfileName, p.Pubkey)
	}
}
