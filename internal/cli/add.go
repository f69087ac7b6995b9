package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"chime/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an alarm",
		Long:  "Create an alarm. Without --media-id the label is searched on YouTube and the first candidate is used as the ringtone.",
		Run:   runAdd,
	}

	cmd.Flags().StringP("time", "t", "", "Alarm time, 24h HH:MM (required)")
	cmd.Flags().StringP("label", "l", "", "Label; also the ringtone search query (required)")
	cmd.Flags().String("days", "", "Comma-separated repeat weekdays (e.g. Mon,Wed,Fri); empty = one-shot")
	cmd.Flags().Int("snooze", 0, "Snooze minutes (default from config)")
	cmd.Flags().Bool("ampm", false, "Display in 12-hour format")
	cmd.Flags().Bool("disabled", false, "Create the alarm disabled")
	cmd.Flags().String("media-id", "", "Explicit ringtone media id (skips the search)")
	cmd.Flags().String("media-title", "", "Ringtone title to store with --media-id")

	cmd.MarkFlagRequired("time")
	cmd.MarkFlagRequired("label")

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	clock, _ := cmd.Flags().GetString("time")
	label, _ := cmd.Flags().GetString("label")
	daysStr, _ := cmd.Flags().GetString("days")
	snooze, _ := cmd.Flags().GetInt("snooze")
	ampm, _ := cmd.Flags().GetBool("ampm")
	disabled, _ := cmd.Flags().GetBool("disabled")
	mediaID, _ := cmd.Flags().GetString("media-id")
	mediaTitle, _ := cmd.Flags().GetString("media-title")

	days, err := parseDays(daysStr)
	if err != nil {
		exitErr("add", err)
	}
	if snooze == 0 {
		snooze = viper.GetInt("snooze_minutes")
	}

	tone := model.Ringtone{Provider: model.ProviderYouTube, MediaID: mediaID, Title: mediaTitle}
	if mediaID == "" {
		videos, err := newResolver().Search(cmd.Context(), label)
		if err != nil {
			// An alarm without a ringtone can only be saved disabled.
			if disabled {
				tone = model.Ringtone{}
			} else {
				exitErr("resolve ringtone", err)
			}
		} else {
			tone.MediaID = videos[0].MediaID
			tone.Title = videos[0].Title
		}
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	created, err := s.Create(cmd.Context(), model.Alarm{
		Label:         label,
		Time:          clock,
		Display24h:    !ampm,
		Repeat:        days,
		Ringtone:      tone,
		Enabled:       !disabled,
		SnoozeMinutes: snooze,
	})
	if err != nil {
		exitErr("add", err)
	}

	printJSON(created)
}
