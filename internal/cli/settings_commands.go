package cli

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"job-finder/internal/settings"
)

func runSettings(args []string) error {
	if len(args) == 0 {
		printSettingsUsage()
		return nil
	}
	switch args[0] {
	case "show":
		return runSettingsShow(args[1:])
	case "set":
		return runSettingsSet(args[1:])
	case "path":
		return runSettingsPath(args[1:])
	case "help", "-h", "--help":
		printSettingsUsage()
		return nil
	default:
		printSettingsUsage()
		return fmt.Errorf("unknown settings subcommand %q", args[0])
	}
}

func runSettingsShow(args []string) error {
	fs := flag.NewFlagSet("settings show", flag.ContinueOnError)
	config := fs.String("config", "", "settings file path (default: user config dir)")
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	configPath := resolveConfigPath(*config)
	stored, err := settings.Read(configPath)
	if err != nil {
		return err
	}
	rt := settings.Resolve(stored)
	if *jsonOut {
		return printJSON(map[string]any{
			"config_path": configPath,
			"settings":    stored,
			"effective": map[string]any{
				"endpoint":        rt.Endpoint,
				"timeout_seconds": int(rt.Timeout.Seconds()),
				"theme":           rt.Theme,
				"debounce_ms":     rt.Debounce.Milliseconds(),
				"locale":          rt.Locale.String(),
			},
		})
	}

	fmt.Printf("config: %s\n", configPath)
	fmt.Println(kv("endpoint", stored.Endpoint))
	if rt.Endpoint != stored.Endpoint {
		fmt.Println(kv("endpoint (effective)", rt.Endpoint+" via "+settings.EnvEndpoint))
	}
	fmt.Println(kv("timeout_seconds", strconv.Itoa(int(rt.Timeout.Seconds()))))
	fmt.Println(kv("theme", stored.Theme))
	fmt.Println(kv("debounce_ms", strconv.Itoa(stored.DebounceMS)))
	fmt.Println(kv("locale", stored.Locale))
	fmt.Println(kv("log_file", settings.LogPath()))
	return nil
}

func runSettingsSet(args []string) error {
	fs := flag.NewFlagSet("settings set", flag.ContinueOnError)
	config := fs.String("config", "", "settings file path (default: user config dir)")
	endpoint := fs.String("endpoint", "", "job endpoint URL (empty keeps current)")
	timeout := fs.Int("timeout-seconds", 0, "HTTP timeout in seconds (0 keeps current)")
	theme := fs.String("theme", "", "theme: auto|light|dark (empty keeps current)")
	debounce := fs.Int("debounce-ms", 0, "search debounce in milliseconds (0 keeps current)")
	locale := fs.String("locale", "", "BCP 47 locale for sorting, e.g. en, de, sv (empty keeps current)")
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := settings.Update(settings.UpdateOptions{
		ConfigPath: resolveConfigPath(*config),
		Settings: settings.Settings{
			Endpoint:       strings.TrimSpace(*endpoint),
			TimeoutSeconds: *timeout,
			Theme:          strings.TrimSpace(*theme),
			DebounceMS:     *debounce,
			Locale:         strings.TrimSpace(*locale),
		},
	})
	if err != nil {
		return err
	}
	if *jsonOut {
		return printJSON(res)
	}

	fmt.Printf("updated settings in %s\n", res.ConfigPath)
	fmt.Println(kv("endpoint", res.Settings.Endpoint))
	fmt.Println(kv("timeout_seconds", strconv.Itoa(res.Settings.TimeoutSeconds)))
	fmt.Println(kv("theme", res.Settings.Theme))
	fmt.Println(kv("debounce_ms", strconv.Itoa(res.Settings.DebounceMS)))
	fmt.Println(kv("locale", res.Settings.Locale))
	return nil
}

func runSettingsPath(args []string) error {
	fs := flag.NewFlagSet("settings path", flag.ContinueOnError)
	config := fs.String("config", "", "settings file path (default: user config dir)")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}
	fmt.Println(resolveConfigPath(*config))
	return nil
}

func resolveConfigPath(raw string) string {
	if p := strings.TrimSpace(raw); p != "" {
		return p
	}
	return settings.DefaultPath()
}

func printSettingsUsage() {
	fmt.Println("settings commands:")
	fmt.Println("  settings show")
	fmt.Println("  settings set [--endpoint URL] [--timeout-seconds N] [--theme auto|light|dark] [--debounce-ms N] [--locale TAG]")
	fmt.Println("  settings path")
}
