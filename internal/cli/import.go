package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"chime/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import alarms from JSON",
		Long:  "Import alarms from JSON on stdin. Expects the format produced by export; importing an unmodified export is a no-op.",
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		exitErr("read stdin", err)
	}

	var alarms []model.Alarm
	if err := json.Unmarshal(data, &alarms); err != nil {
		exitErr("parse json", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	imported, err := s.Import(cmd.Context(), alarms)
	if err != nil {
		exitErr("import", err)
	}

	fmt.Printf(`{"ok":true,"imported":%d}`+"\n", imported)
}
