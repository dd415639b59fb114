// Package i18n checks translation resource files for coverage: every language
// file is compared against the union of keys across all languages, nested keys
// flattened with dot-paths.
package i18n

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// MissingSampleCap bounds how many missing keys a report lists per language.
const MissingSampleCap = 10

// LangReport is the coverage result for one language.
type LangReport struct {
	Lang        string   `json:"lang"`
	KeyCount    int      `json:"key_count"`
	CoveragePct float64  `json:"coverage_pct"` // rounded to one decimal
	Missing     []string `json:"missing,omitempty"`
	MissingN    int      `json:"missing_n"`
}

// Report is the full coverage report across languages.
type Report struct {
	TotalKeys int          `json:"total_keys"`
	Languages []LangReport `json:"languages"`
	Passed    bool         `json:"passed"`
}

// Validate computes per-language coverage against the union of all keys.
// Languages at or above threshold percent pass; the report passes only when
// every language does. Malformed JSON is an error, not a coverage miss.
func Validate(languages map[string][]byte, threshold float64) (*Report, error) {
	flat := make(map[string]map[string]bool, len(languages))
	union := map[string]bool{}

	for lang, raw := range languages {
		var tree map[string]any
		if err := json.Unmarshal(raw, &tree); err != nil {
			return nil, fmt.Errorf("parse %s: %w", lang, err)
		}
		keys := map[string]bool{}
		flatten("", tree, keys)
		flat[lang] = keys
		for k := range keys {
			union[k] = true
		}
	}

	total := len(union)
	report := &Report{TotalKeys: total, Passed: true}

	langs := make([]string, 0, len(flat))
	for lang := range flat {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	for _, lang := range langs {
		keys := flat[lang]
		var missing []string
		for k := range union {
			if !keys[k] {
				missing = append(missing, k)
			}
		}
		sort.Strings(missing)

		pct := 100.0
		if total > 0 {
			pct = math.Round(float64(total-len(missing))/float64(total)*1000) / 10
		}

		lr := LangReport{
			Lang:        lang,
			KeyCount:    len(keys),
			CoveragePct: pct,
			MissingN:    len(missing),
			Missing:     missing,
		}
		if len(lr.Missing) > MissingSampleCap {
			lr.Missing = lr.Missing[:MissingSampleCap]
		}
		if pct < threshold {
			report.Passed = false
		}
		report.Languages = append(report.Languages, lr)
	}

	return report, nil
}

// flatten walks a decoded JSON tree collecting leaf keys as dot-paths.
// Only string leaves count as translations; nested objects recurse.
func flatten(prefix string, node map[string]any, out map[string]bool) {
	for k, v := range node {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if child, ok := v.(map[string]any); ok {
			flatten(path, child, out)
			continue
		}
		out[path] = true
	}
}
