package cli

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"

	"job-finder/internal/catalog"
	"job-finder/internal/saved"
	"job-finder/internal/settings"
	"job-finder/internal/theme"
)

func runBrowse(args []string) error {
	fs := flag.NewFlagSet("browse", flag.ContinueOnError)
	config := fs.String("config", "", "settings file path (default: user config dir)")
	endpoint := fs.String("endpoint", "", "job endpoint URL (overrides settings)")
	fixture := fs.String("fixture", "", "read jobs from a local JSON file instead of the endpoint")
	themeRaw := fs.String("theme", "", "color theme: auto|light|dark (overrides settings)")
	skipWelcome := fs.Bool("skip-welcome", false, "start on the job list")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !stdinIsTTY() {
		return errors.New("browse requires an interactive terminal (TTY)")
	}

	rt, err := loadRuntime(*config, *endpoint)
	if err != nil {
		return err
	}
	themeSetting := rt.Theme
	if t := strings.TrimSpace(*themeRaw); t != "" {
		if err := settings.Validate(settings.Settings{Theme: t}); err != nil {
			return err
		}
		themeSetting = t
	}

	logFile := openBrowseLog()
	if logFile != nil {
		defer logFile.Close()
	}
	log.Printf("[browse] start endpoint=%s fixture=%q", rt.Endpoint, strings.TrimSpace(*fixture))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cat, set := newJobStores(newProvider(rt, *fixture), rt.Locale, log.Default())
	m := newBrowseModel(ctx, browseOptions{
		Catalog:     cat,
		Saved:       set,
		Theme:       theme.Resolve(themeSetting, nil),
		Debounce:    rt.Debounce,
		SkipWelcome: *skipWelcome,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "tty") {
			return errors.New("browse requires an interactive terminal (TTY)")
		}
		return err
	}
	return nil
}

// newJobStores builds the catalog and the saved set over one collation
// locale, so both tabs order companies and titles the same way.
func newJobStores(p catalog.Provider, locale language.Tag, logger *log.Logger) (*catalog.Catalog, *saved.Set) {
	cat := catalog.New(p, catalog.Options{Logger: logger, Locale: locale})
	return cat, saved.NewWithLocale(cat.Locale())
}

// openBrowseLog sends the standard logger to the debug log file. The
// terminal belongs to the UI, so logging is dropped when the file cannot
// be opened.
func openBrowseLog() *os.File {
	path := settings.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := tea.LogToFile(path, "job-finder")
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	return f
}
