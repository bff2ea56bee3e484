package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kilianp07/tower/app"
	"github.com/kilianp07/tower/infra/logger"
	"github.com/kilianp07/tower/internal/shell"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive disruption shell over the loaded scenario",
	RunE:  runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

// lineReader adapts readline to the shell. Ctrl-C on an empty line ends the
// session like Ctrl-D.
type lineReader struct{ rl *readline.Instance }

func (r lineReader) Readline() (string, error) {
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		if line == "" {
			return "", io.EOF
		}
		return "", nil
	}
	return line, err
}

func completer() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(shell.Commands()))
	for _, name := range shell.Commands() {
		items = append(items, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(items...)
}

func runShell(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}
	// Service logs would interleave with the tables.
	logger.SetOutput(os.Stderr)
	if !cmd.Flags().Changed("log-level") {
		logger.SetMinLevel(zerolog.WarnLevel)
	}

	svc, err := app.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	defer closeService(svc)
	svc.Start(cmd.Context())

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            ">> ",
		HistoryFile:       filepath.Join(os.TempDir(), ".tower_history"),
		AutoComplete:      completer(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer rl.Close()

	st := svc.Stats()
	fmt.Fprintf(os.Stdout, "Loaded %d flights on %d aircraft from %s. Type help for commands.\n",
		st.Total, len(svc.Aircraft()), cfg.Scenario.Path)
	return shell.New(svc, lineReader{rl}, os.Stdout).Run(cmd.Context())
}
