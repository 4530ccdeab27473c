package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"job-finder/internal/catalog"
	"job-finder/internal/settings"
)

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func stdinIsTTY() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func envHint() string {
	return fmt.Sprintf("%s overrides the job endpoint; %s overrides the settings path", settings.EnvEndpoint, settings.EnvConfigPath)
}

// newProvider picks the fixture file when one is given, otherwise the HTTP
// endpoint from the resolved settings.
func newProvider(rt settings.Runtime, fixture string) catalog.Provider {
	if p := strings.TrimSpace(fixture); p != "" {
		return catalog.FileProvider{Path: p}
	}
	return catalog.NewHTTPProvider(rt.Endpoint, rt.Timeout)
}

// loadRuntime reads settings from configPath and applies flag overrides on
// top of the file and environment.
func loadRuntime(configPath, endpoint string) (settings.Runtime, error) {
	stored, err := settings.Read(configPath)
	if err != nil {
		return settings.Runtime{}, err
	}
	rt := settings.Resolve(stored)
	if e := strings.TrimSpace(endpoint); e != "" {
		if err := settings.Validate(settings.Settings{Endpoint: e}); err != nil {
			return settings.Runtime{}, err
		}
		rt.Endpoint = e
	}
	return rt, nil
}
