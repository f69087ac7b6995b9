package cli

import (
	"github.com/spf13/cobra"

	"chime/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an alarm",
		Long:  "Edit fields of an existing alarm. Only the flags you pass are changed.",
		Args:  cobra.ExactArgs(1),
		Run:   runEdit,
	}

	cmd.Flags().StringP("time", "t", "", "Alarm time, 24h HH:MM")
	cmd.Flags().StringP("label", "l", "", "Label")
	cmd.Flags().String("days", "", "Comma-separated repeat weekdays; 'none' clears them")
	cmd.Flags().Int("snooze", 0, "Snooze minutes")
	cmd.Flags().String("media-id", "", "Ringtone media id")
	cmd.Flags().String("media-title", "", "Ringtone title")
	cmd.Flags().Bool("resolve", false, "Re-resolve the ringtone from the (new) label")

	RootCmd.AddCommand(cmd)
}

func runEdit(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	a, err := s.Get(cmd.Context(), args[0])
	if err != nil {
		exitErr("edit", err)
	}

	if v, _ := cmd.Flags().GetString("time"); v != "" {
		a.Time = v
	}
	if v, _ := cmd.Flags().GetString("label"); v != "" {
		a.Label = v
	}
	if v, _ := cmd.Flags().GetString("days"); v != "" {
		if v == "none" {
			a.Repeat = nil
		} else {
			days, err := parseDays(v)
			if err != nil {
				exitErr("edit", err)
			}
			a.Repeat = days
		}
	}
	if v, _ := cmd.Flags().GetInt("snooze"); v != 0 {
		a.SnoozeMinutes = v
	}
	if v, _ := cmd.Flags().GetString("media-id"); v != "" {
		a.Ringtone.Provider = model.ProviderYouTube
		a.Ringtone.MediaID = v
	}
	if v, _ := cmd.Flags().GetString("media-title"); v != "" {
		a.Ringtone.Title = v
	}
	if resolve, _ := cmd.Flags().GetBool("resolve"); resolve {
		videos, err := newResolver().Search(cmd.Context(), a.Label)
		if err != nil {
			exitErr("resolve ringtone", err)
		}
		a.Ringtone = model.Ringtone{
			Provider: model.ProviderYouTube,
			MediaID:  videos[0].MediaID,
			Title:    videos[0].Title,
		}
	}

	updated, err := s.Update(cmd.Context(), *a)
	if err != nil {
		exitErr("edit", err)
	}

	printJSON(updated)
}
