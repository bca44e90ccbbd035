package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/five82/lobby/internal/app"
	"github.com/five82/lobby/internal/content"
)

var checkJSON bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Fetch every content section once and report",
	Long: `Check resolves the configuration, fetches every section from the content
API and prints what came back. It exits non-zero when no section could be
fetched.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVarP(&checkJSON, "json", "j", false, "output as JSON")
	rootCmd.AddCommand(checkCmd)
}

// errAllFailed is returned by check when the API gave nothing back.
var errAllFailed = errors.New("no content section could be fetched")

type sectionReport struct {
	Section string        `json:"section"`
	OK      bool          `json:"ok"`
	Items   int           `json:"items"`
	Elapsed time.Duration `json:"elapsed_ns"`
	Error   string        `json:"error,omitempty"`
}

// timings records per-section request durations.
type timings struct {
	mu sync.Mutex
	m  map[content.Section]time.Duration
}

func (t *timings) ObserveFetch(section content.Section, elapsed time.Duration, _ error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.m == nil {
		t.m = make(map[content.Section]time.Duration)
	}
	t.m[section] = elapsed
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := app.LoadConfig(options())
	if err != nil {
		return err
	}
	client, err := app.NewClient(cfg)
	if err != nil {
		return err
	}
	t := &timings{}
	client.SetObserver(t)

	res := client.FetchAll(cmd.Context())

	reports := make([]sectionReport, 0, len(content.Sections()))
	for _, section := range content.Sections() {
		r := sectionReport{
			Section: string(section),
			OK:      res.OK(section),
			Elapsed: t.m[section],
		}
		if r.OK {
			r.Items = itemCount(res.Bundle, section)
		} else {
			r.Error = res.Errs[section].Error()
		}
		reports = append(reports, r)
	}

	out := cmd.OutOrStdout()
	if checkJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	} else {
		printReports(out, cfg.APIBaseURL, reports)
	}
	if res.AllFailed() {
		return errAllFailed
	}
	return nil
}

func printReports(w io.Writer, api string, reports []sectionReport) {
	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	dim := lipgloss.NewStyle().Faint(true)

	fmt.Fprintf(w, "content api %s\n\n", api)
	for _, r := range reports {
		name := fmt.Sprintf("%-9s", r.Section)
		elapsed := dim.Render(fmt.Sprintf("%6dms", r.Elapsed.Milliseconds()))
		if r.OK {
			fmt.Fprintf(w, "  %s %s %s  %s\n", okStyle.Render("ok  "), name, elapsed,
				humanize.Comma(int64(r.Items))+" "+plural(r.Items, "item", "items"))
			continue
		}
		fmt.Fprintf(w, "  %s %s %s  %s\n", failStyle.Render("FAIL"), name, elapsed, r.Error)
	}
}

// itemCount is the number of records a section holds. Home counts hero slides.
func itemCount(b content.Bundle, section content.Section) int {
	switch section {
	case content.SectionHome:
		return len(b.Home.Slides)
	case content.SectionProjects:
		return len(b.Projects)
	case content.SectionPapers:
		return len(b.Papers)
	case content.SectionAwards:
		return len(b.Awards)
	case content.SectionPatents:
		return len(b.Patents)
	case content.SectionSeminars:
		return len(b.Seminars)
	}
	return 0
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
