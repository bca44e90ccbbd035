package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/five82/lobby/internal/app"
)

var (
	cfgFile     string
	envFile     string
	prefsFile   string
	pollSeconds int
)

var rootCmd = &cobra.Command{
	Use:   "lobby",
	Short: "Lab lobby kiosk for the terminal",
	Long: `Lobby shows the lab's home page, projects, papers, awards, patents and
seminars as auto-advancing carousels, refreshed from the lab content API.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cmd.Context(), options())
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.config/lobby/config.toml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load before reading the environment")
	rootCmd.PersistentFlags().IntVar(&pollSeconds, "poll", 0, "content refresh interval in seconds (default from config)")
	rootCmd.PersistentFlags().StringVar(&prefsFile, "prefs", "", "UI preferences file (default: ~/.config/lobby/prefs.toml)")
}

func options() app.Options {
	return app.Options{
		ConfigPath: cfgFile,
		PrefsPath:  prefsFile,
		EnvFile:    envFile,
		PollEvery:  pollSeconds,
	}
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "lobby: %v\n", err)
		return 1
	}
	return 0
}
