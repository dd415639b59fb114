// Command validate-translations checks the per-language translation files for
// key coverage. It is a build-time lint, not part of the running service.
//
//	validate-translations [-threshold 100] <dir>
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vendahq/backoffice/internal/i18n"
)

func main() {
	threshold := flag.Float64("threshold", 100, "minimum coverage percent per language")
	flag.Parse()

	dir := flag.Arg(0)
	if dir == "" {
		fmt.Fprintln(os.Stderr, "usage: validate-translations [-threshold N] <dir>")
		os.Exit(2)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", dir, err)
		os.Exit(2)
	}

	languages := map[string][]byte{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "read %s: %v\n", e.Name(), err)
			os.Exit(2)
		}
		languages[strings.TrimSuffix(e.Name(), ".json")] = raw
	}
	if len(languages) == 0 {
		fmt.Fprintf(os.Stderr, "no .json language files in %s\n", dir)
		os.Exit(2)
	}

	report, err := i18n.Validate(languages, *threshold)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Printf("Translation coverage (%d keys across %d languages)\n", report.TotalKeys, len(report.Languages))
	for _, lr := range report.Languages {
		fmt.Printf("  %-8s %6.1f%%  (%d/%d keys)\n", lr.Lang, lr.CoveragePct, lr.KeyCount, report.TotalKeys)
		for _, k := range lr.Missing {
			fmt.Printf("           missing: %s\n", k)
		}
		if lr.MissingN > len(lr.Missing) {
			fmt.Printf("           ... and %d more\n", lr.MissingN-len(lr.Missing))
		}
	}
	if report.Passed {
		fmt.Println("PASS")
		return
	}
	fmt.Println("FAIL")
	os.Exit(1)
}
