package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search ringtone candidates",
		Long:  "Search YouTube for ringtone candidates the way `add` would for an alarm label.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	query := strings.Join(args, " ")

	videos, err := newResolver().Search(cmd.Context(), query)
	if err != nil {
		exitErr("search", err)
	}

	printJSON(videos)
}
