package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export alarms as JSON",
		Long:  "Export the full alarm list as JSON on stdout. Feed it back with `chime import`.",
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	alarms, err := s.Export(cmd.Context())
	if err != nil {
		exitErr("export", err)
	}

	printJSON(alarms)
}
