package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"chime/internal/model"
	"chime/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List alarms",
		Run:   runList,
	}

	cmd.Flags().Bool("enabled-only", false, "Only enabled alarms")
	cmd.Flags().Bool("ids-only", false, "Only output alarm ids")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	enabledOnly, _ := cmd.Flags().GetBool("enabled-only")
	idsOnly, _ := cmd.Flags().GetBool("ids-only")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	alarms, err := s.List(cmd.Context(), store.ListParams{EnabledOnly: enabledOnly})
	if err != nil {
		exitErr("list", err)
	}

	if idsOnly {
		for _, a := range alarms {
			fmt.Println(a.ID)
		}
		return
	}

	if formatFlag == "text" {
		for _, a := range alarms {
			state := "off"
			if a.Enabled {
				state = "on"
			}
			fmt.Printf("%s  %s [%s] %s (%s) %s\n",
				a.ID, a.DisplayTime(), state, a.Label, formatRepeat(a.Repeat), a.Ringtone.Title)
		}
		return
	}

	printJSON(alarms)
}

func formatRepeat(days []model.Weekday) string {
	if len(days) == 0 {
		return "once"
	}
	if len(days) == 7 {
		return "daily"
	}
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = string(d)
	}
	return strings.Join(parts, ",")
}
