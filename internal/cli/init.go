package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/five82/lobby/internal/config"
	"github.com/five82/lobby/internal/prefs"
	"github.com/five82/lobby/internal/ui"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file interactively",
	Long:  `Init asks for the content API location and carousel timings and writes config.toml.`,
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := config.ResolvedPath(cfgFile)
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}

	cfg := config.Default()
	userPrefs := prefs.Load(prefsFile)
	var (
		apiBase   = cfg.APIBaseURL
		homeBase  string
		poll      = strconv.Itoa(cfg.PollSeconds)
		slide     = strconv.Itoa(cfg.SlideIntervalMS)
		theme     = userPrefs.Theme
		startPage = userPrefs.StartPage
	)

	var themeOpts []huh.Option[string]
	for _, name := range ui.ThemeNames() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}
	var pageOpts []huh.Option[string]
	for _, p := range ui.PageNames() {
		pageOpts = append(pageOpts, huh.NewOption(p, p))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Content API base URL").
				Description("Serves projects, papers, awards, patent and notion/seminars").
				Value(&apiBase).
				Validate(validURL(false)),
			huh.NewInput().
				Title("Home API base URL").
				Description("Serves the home page payload; leave empty to use the content API").
				Value(&homeBase).
				Validate(validURL(true)),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Poll interval (seconds)").
				Value(&poll).
				Validate(positiveInt),
			huh.NewInput().
				Title("Hero slide interval (milliseconds)").
				Value(&slide).
				Validate(positiveInt),
			huh.NewSelect[string]().
				Title("Theme").
				Options(themeOpts...).
				Value(&theme),
			huh.NewSelect[string]().
				Title("Start page").
				Options(pageOpts...).
				Value(&startPage),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return fmt.Errorf("config form: %w", err)
	}

	cfg.APIBaseURL = strings.TrimSpace(apiBase)
	cfg.HomeAPIBaseURL = strings.TrimSpace(homeBase)
	cfg.PollSeconds, _ = strconv.Atoi(strings.TrimSpace(poll))
	cfg.SlideIntervalMS, _ = strconv.Atoi(strings.TrimSpace(slide))
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}

	userPrefs.Theme = theme
	userPrefs.StartPage = startPage
	if err := prefs.Save(prefsFile, userPrefs); err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", path)
	fmt.Fprintln(cmd.OutOrStdout(), "Run 'lobby check' to test the content API.")
	return nil
}

func validURL(optional bool) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			if optional {
				return nil
			}
			return errors.New("required")
		}
		cfg := config.Default()
		cfg.APIBaseURL = s
		return cfg.Validate()
	}
}

func positiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return errors.New("must be a positive whole number")
	}
	return nil
}
