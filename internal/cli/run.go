package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"chime/internal/engine"
	"chime/internal/model"
	"chime/internal/notify"
	"chime/internal/player"
	"chime/internal/session"
)

func init() {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the alarm scheduler",
		Long: `Run the alarm scheduler in the foreground. Alarms fire while this command
is alive; each fire plays the ringtone and raises a desktop notification.
Type "stop" (or "s") to stop a ringing alarm, "snooze" (or "z") to snooze it.`,
		Run: runRun,
	}

	cmd.Flags().Bool("no-notify", false, "Skip desktop notifications")
	cmd.Flags().String("player", "", "Opener command for the ringtone URL (default: platform opener)")

	RootCmd.AddCommand(cmd)
}

func runRun(cmd *cobra.Command, args []string) {
	noNotify, _ := cmd.Flags().GetBool("no-notify")
	playerCmd, _ := cmd.Flags().GetString("player")
	if playerCmd == "" {
		playerCmd = viper.GetString("player")
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	dismissAfter := session.DefaultDismissAfter
	if v := viper.GetString("dismiss_after"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			exitErr("parse dismiss_after", err)
		}
		dismissAfter = d
	}

	var notifier notify.Notifier = notify.Desktop{}
	if noNotify {
		notifier = notify.Discard{}
	}

	machine := session.New(s, player.NewExecPlayer(playerCmd), notifier,
		session.WithDismissAfter(dismissAfter))

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runner := engine.NewRunner(s, &loggingSink{machine})

	go readCommands(ctx, machine)

	log.Printf("chime scheduler running, db %s (Ctrl-C to quit)", getDBPath())
	if err := runner.Run(ctx); err != nil {
		exitErr("run", err)
	}
}

// loggingSink wraps the session machine to log each fire.
type loggingSink struct {
	machine *session.Machine
}

func (s *loggingSink) Fire(ctx context.Context, a model.Alarm) bool {
	log.Printf("alarm %s (%s) firing at %s", a.ID, a.Label, a.Time)
	if len(a.Repeat) == 0 {
		log.Printf("alarm %s is one-shot: it fires daily at %s until disabled or deleted", a.ID, a.Time)
	}
	return s.machine.Fire(ctx, a)
}

// readCommands accepts stop/snooze lines on stdin while the scheduler runs.
func readCommands(ctx context.Context, machine *session.Machine) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "stop", "s":
			machine.Stop()
			fmt.Println("stopped")
		case "snooze", "z":
			derived, err := machine.Snooze(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "snooze: %v\n", err)
				continue
			}
			fmt.Printf("snoozed until %s\n", derived.Time)
		case "":
		default:
			fmt.Println(`commands: "stop" / "snooze"`)
		}
	}
}
