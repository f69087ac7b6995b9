package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Enable or disable an alarm",
		Long:  "Flip an alarm's enabled flag, or set it explicitly with --on / --off.",
		Args:  cobra.ExactArgs(1),
		Run:   runToggle,
	}

	cmd.Flags().Bool("on", false, "Enable the alarm")
	cmd.Flags().Bool("off", false, "Disable the alarm")
	cmd.MarkFlagsMutuallyExclusive("on", "off")

	RootCmd.AddCommand(cmd)
}

func runToggle(cmd *cobra.Command, args []string) {
	on, _ := cmd.Flags().GetBool("on")
	off, _ := cmd.Flags().GetBool("off")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	a, err := s.Get(cmd.Context(), args[0])
	if err != nil {
		exitErr("toggle", err)
	}

	enabled := !a.Enabled
	if on {
		enabled = true
	}
	if off {
		enabled = false
	}

	updated, err := s.SetEnabled(cmd.Context(), args[0], enabled)
	if err != nil {
		exitErr("toggle", err)
	}

	printJSON(updated)
}
