package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"job-finder/internal/catalog"
	"job-finder/internal/settings"
)

func runDoctor(args []string) error {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	config := fs.String("config", "", "settings file path (default: user config dir)")
	fixture := fs.String("fixture", "", "check a local JSON file instead of the endpoint")
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	opts := settings.DoctorOptions{ConfigPath: resolveConfigPath(*config)}
	if p := strings.TrimSpace(*fixture); p != "" {
		opts.Provider = catalog.FileProvider{Path: p}
	}
	res, err := settings.Doctor(context.Background(), opts)
	if err != nil {
		return err
	}
	if *jsonOut {
		if err := printJSON(res); err != nil {
			return err
		}
	} else {
		fmt.Println(kv("config", res.ConfigPath))
		fmt.Println(kv("endpoint", res.Endpoint))
		for _, c := range res.Checks {
			mark := "ok"
			if !c.OK {
				mark = "FAIL"
			}
			fmt.Printf("  [%s] %s: %s\n", mark, c.Name, c.Message)
		}
	}
	if !res.OK {
		return errors.New("doctor found problems")
	}
	return nil
}
