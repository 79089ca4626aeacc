package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/rshell-sh/rshell/core/config"
	"github.com/rshell-sh/rshell/core/history"
	"github.com/rshell-sh/rshell/core/logger"
	"github.com/rshell-sh/rshell/core/shell"
)

var configDir string

// rootCmd represents the base command when called without any subcommands:
// it runs the interactive shell.
var rootCmd = &cobra.Command{
	Use:   "rshell",
	Short: "A small interactive pipeline shell",
	Long: `rshell is an interactive shell front-end: pipe-chained commands, a
handful of builtins and a bounded history that survives sessions.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", defaultConfigDir(), "configuration directory")
}

func defaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, config.ConfigDirName)
}

func runShell() error {
	vfs := afero.NewOsFs()

	configuration, err := config.Load(vfs, configDir)
	if err != nil {
		return err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "/"
	}

	store := history.NewStore(
		vfs,
		config.ExpandPath(configuration.HistoryFile, home),
		configuration.HistorySize,
		configuration.HistoryFileSize,
	)
	if err := store.Load(); err != nil {
		// Unreadable history shouldn't keep the shell from starting.
		fmt.Fprintf(os.Stderr, "rshell: could not read history: %v\n", err)
	}

	log := logger.NewNop()
	if configuration.LogFile != "" {
		logPath := config.ExpandPath(configuration.LogFile, home)
		fd, err := vfs.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rshell: could not open session log: %v\n", err)
		} else {
			defer fd.Close()
			log = logger.New(fd)
		}
	}

	sh, err := shell.New(shell.Options{
		Config:  configuration,
		History: store,
		Log:     log,
	})
	if err != nil {
		return err
	}
	defer sh.Close()

	return sh.Run()
}
