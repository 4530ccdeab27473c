package cli

import "fmt"

func Run(args []string) error {
	if len(args) == 0 {
		if stdinIsTTY() {
			return runBrowse(nil)
		}
		printRootUsage()
		return nil
	}

	switch args[0] {
	case "browse":
		return runBrowse(args[1:])
	case "list":
		return runList(args[1:])
	case "settings":
		return runSettings(args[1:])
	case "doctor":
		return runDoctor(args[1:])
	case "help", "-h", "--help":
		printRootUsage()
		return nil
	default:
		printRootUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printRootUsage() {
	fmt.Println("job-finder: browse, search and save job postings from the terminal")
	fmt.Println()
	fmt.Println("Quick Start:")
	fmt.Println("  job-finder")
	fmt.Println("  job-finder list --search engineer --sort salary")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  browse    interactive job board (default on a terminal)")
	fmt.Println("  list      load jobs once and print them")
	fmt.Println("  settings  show/update endpoint, timeout, theme and search settings")
	fmt.Println("  doctor    check the settings directory and the job endpoint")
	fmt.Println()
	fmt.Println("Notes:")
	fmt.Println("  - Use --json on list, settings and doctor for machine-readable output")
	fmt.Println("  - " + envHint())
}
