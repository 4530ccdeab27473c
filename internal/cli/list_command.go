package cli

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"job-finder/internal/catalog"
	"job-finder/internal/model"
	"job-finder/internal/settings"
)

type listResult struct {
	Endpoint string             `json:"endpoint,omitempty"`
	Fixture  string             `json:"fixture,omitempty"`
	Search   string             `json:"search"`
	Sort     model.SortKey      `json:"sort"`
	Total    int                `json:"total"`
	Matched  int                `json:"matched"`
	Report   catalog.LoadReport `json:"report"`
	Jobs     []model.Job        `json:"jobs"`
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	config := fs.String("config", "", "settings file path (default: user config dir)")
	endpoint := fs.String("endpoint", "", "job endpoint URL (overrides settings, default "+settings.DefaultEndpoint+")")
	fixture := fs.String("fixture", "", "read jobs from a local JSON file instead of the endpoint")
	search := fs.String("search", "", "case-insensitive match on title or company")
	sortRaw := fs.String("sort", "", "sort key: company|title|salary|none")
	limit := fs.Int("limit", 0, "print at most N jobs (0 prints all)")
	verbose := fs.Bool("verbose", false, "log catalog diagnostics to stderr")
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *limit < 0 {
		return fmt.Errorf("--limit must be >= 0")
	}

	key, err := model.ParseSortKey(*sortRaw)
	if err != nil {
		return err
	}
	rt, err := loadRuntime(*config, *endpoint)
	if err != nil {
		return err
	}

	logger := catalog.DiscardLogger()
	if *verbose {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	cat := catalog.New(newProvider(rt, *fixture), catalog.Options{Logger: logger, Locale: rt.Locale})
	if _, err := cat.Load(context.Background()); err != nil {
		return err
	}

	res := queryList(cat, *search, key, *limit)
	if strings.TrimSpace(*fixture) != "" {
		res.Fixture = strings.TrimSpace(*fixture)
	} else {
		res.Endpoint = rt.Endpoint
	}
	if *jsonOut {
		return printJSON(res)
	}
	printListTable(res)
	return nil
}

// queryList runs the search once, trimmed, so the reported search is the
// one that was applied.
func queryList(cat *catalog.Catalog, search string, key model.SortKey, limit int) listResult {
	search = strings.TrimSpace(search)
	jobs := cat.Query(search, key)
	matched := len(jobs)
	if limit > 0 && len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return listResult{
		Search:  search,
		Sort:    key,
		Total:   cat.Len(),
		Matched: matched,
		Report:  cat.LastReport(),
		Jobs:    jobs,
	}
}

func printListTable(res listResult) {
	if res.Total == 0 {
		fmt.Println("No jobs available")
		if res.Report.Shape == catalog.ShapeUnknown {
			for _, w := range res.Report.Warnings {
				fmt.Println("warning: " + w)
			}
		}
		return
	}
	if len(res.Jobs) == 0 {
		fmt.Printf("no jobs match %q\n", res.Search)
		return
	}
	for _, j := range res.Jobs {
		fmt.Printf("%s  %s  %s  %s\n",
			padRight(j.Title, 36),
			padRight(j.CompanyName, 24),
			padRight(formatSalaryRange(j), 22),
			truncateRunes(j.ID, 36),
		)
	}
	fmt.Println()
	fmt.Printf("%d of %d jobs (sort: %s)\n", res.Matched, res.Total, res.Sort.Label())
	if res.Report.Duplicates > 0 || res.Report.GeneratedIDs > 0 {
		fmt.Printf("%s\n", kv("normalized", fmt.Sprintf("duplicates=%d generated_ids=%d", res.Report.Duplicates, res.Report.GeneratedIDs)))
	}
}
