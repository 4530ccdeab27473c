package main

import (
	"bufio"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// allowed lists the internal packages each internal package may import.
var allowed = map[string]map[string]bool{
	"cli": {
		"apply":    true,
		"catalog":  true,
		"model":    true,
		"saved":    true,
		"settings": true,
		"theme":    true,
	},
	"catalog":  {"model": true},
	"saved":    {"catalog": true, "model": true},
	"apply":    {"model": true},
	"settings": {"catalog": true},
	"theme":    {},
	"model":    {},
}

// terminalPkgs holds the packages allowed to import the terminal UI stack.
var terminalPkgs = map[string]bool{
	"cli":   true,
	"theme": true,
}

var terminalImports = []string{
	"github.com/charmbracelet/",
	"github.com/atotto/clipboard",
	"github.com/pkg/browser",
}

func main() {
	modPath, err := modulePath("go.mod")
	if err != nil {
		fmt.Fprintf(os.Stderr, "read module path: %v\n", err)
		os.Exit(1)
	}
	prefix := modPath + "/internal/"
	violations := []string{}

	err = filepath.WalkDir("internal", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		srcPkg := sourcePackage(path)
		if srcPkg == "" {
			return nil
		}
		allowMap, ok := allowed[srcPkg]
		if !ok {
			violations = append(violations, fmt.Sprintf("%s: unknown source package %q", path, srcPkg))
			return nil
		}

		fset := token.NewFileSet()
		file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}

		for _, imp := range file.Imports {
			impPath := strings.Trim(imp.Path.Value, "\"")
			if !terminalPkgs[srcPkg] && isTerminalImport(impPath) {
				violations = append(violations, fmt.Sprintf("%s: %s imports terminal UI package %s", path, srcPkg, impPath))
				continue
			}
			tgtPkg, ok := targetPackage(prefix, impPath)
			if !ok || tgtPkg == srcPkg {
				continue
			}
			if !allowMap[tgtPkg] {
				violations = append(violations, fmt.Sprintf("%s: %s -> %s is forbidden", path, srcPkg, tgtPkg))
			}
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "boundary walk failed: %v\n", err)
		os.Exit(1)
	}

	if len(violations) > 0 {
		fmt.Fprintln(os.Stderr, "architecture boundary violations detected:")
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "- %s\n", v)
		}
		os.Exit(1)
	}

	fmt.Println("architecture boundary check: OK")
}

func modulePath(goMod string) (string, error) {
	f, err := os.Open(goMod)
	if err != nil {
		return "", err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if rest, ok := strings.CutPrefix(line, "module "); ok {
			return strings.Trim(strings.TrimSpace(rest), "\""), nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("%s: no module directive", goMod)
}

func isTerminalImport(importPath string) bool {
	for _, p := range terminalImports {
		if strings.HasPrefix(importPath, p) {
			return true
		}
	}
	return false
}

func sourcePackage(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) < 2 || parts[0] != "internal" {
		return ""
	}
	return parts[1]
}

func targetPackage(prefix, importPath string) (string, bool) {
	if !strings.HasPrefix(importPath, prefix) {
		return "", false
	}
	rest := strings.TrimPrefix(importPath, prefix)
	if rest == "" {
		return "", false
	}
	parts := strings.Split(rest, "/")
	return parts[0], true
}
