package settings

import (
	"context"
	"fmt"
	"path/filepath"

	"job-finder/internal/catalog"
)

type DoctorOptions struct {
	ConfigPath string
	// Provider replaces the HTTP provider built from the resolved settings.
	Provider catalog.Provider
}

type DoctorResult struct {
	OK         bool          `json:"ok"`
	ConfigPath string        `json:"config_path"`
	Endpoint   string        `json:"endpoint"`
	Checks     []DoctorCheck `json:"checks"`
}

type DoctorCheck struct {
	Name    string `json:"name"`
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// Doctor checks that settings can be stored and that the provider answers
// with a payload the catalog understands.
func Doctor(ctx context.Context, opts DoctorOptions) (DoctorResult, error) {
	configPath := normalizePath(opts.ConfigPath)
	checks := make([]DoctorCheck, 0, 4)

	dirOK, dirMessage := ensureWritableDir(filepath.Dir(configPath))
	checks = append(checks, DoctorCheck{
		Name:    "directory:config",
		OK:      dirOK,
		Message: dirMessage,
	})

	stored, err := Read(configPath)
	if err != nil {
		checks = append(checks, DoctorCheck{Name: "settings:file", OK: false, Message: err.Error()})
		stored = Defaults()
	} else {
		checks = append(checks, DoctorCheck{Name: "settings:file", OK: true, Message: "readable"})
	}
	rt := Resolve(stored)

	provider := opts.Provider
	if provider == nil {
		provider = catalog.NewHTTPProvider(rt.Endpoint, rt.Timeout)
	}
	cat := catalog.New(provider, catalog.Options{Logger: catalog.DiscardLogger(), Locale: rt.Locale})
	jobs, loadErr := cat.Load(ctx)
	if loadErr != nil {
		checks = append(checks, DoctorCheck{Name: "endpoint:reachable", OK: false, Message: loadErr.Error()})
	} else {
		checks = append(checks, DoctorCheck{Name: "endpoint:reachable", OK: true, Message: "responded"})
		report := cat.LastReport()
		shapeOK := report.Shape != catalog.ShapeUnknown
		msg := fmt.Sprintf("shape=%s jobs=%d duplicates=%d", report.Shape, len(jobs), report.Duplicates)
		if !shapeOK && len(report.Warnings) > 0 {
			msg = report.Warnings[0]
		}
		checks = append(checks, DoctorCheck{Name: "endpoint:payload", OK: shapeOK, Message: msg})
	}

	ok := true
	for _, c := range checks {
		if !c.OK {
			ok = false
			break
		}
	}
	return DoctorResult{OK: ok, ConfigPath: configPath, Endpoint: rt.Endpoint, Checks: checks}, nil
}
