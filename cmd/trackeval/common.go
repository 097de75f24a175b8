package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/trackeval/trackeval/internal/db"
	"github.com/trackeval/trackeval/internal/evalcase"
)

func openDB() (*sql.DB, string, func(), error) {
	workRoot, err := os.Getwd()
	if err != nil {
		return nil, "", func() {}, err
	}
	stateDir := filepath.Join(workRoot, ".trackeval")
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, "", func() {}, err
	}
	storeDB, err := db.Open(filepath.Join(stateDir, "trackeval.db"))
	if err != nil {
		return nil, "", func() {}, err
	}
	return storeDB, stateDir, func() { _ = storeDB.Close() }, nil
}

// loadCases resolves a case source argument: a suite YAML file, a directory
// of suites, or a legacy dataset CSV.
func loadCases(path string) (string, []evalcase.Case, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", nil, fmt.Errorf("stat case source %q: %w", path, err)
	}

	if info.IsDir() {
		suites, err := evalcase.LoadDir(path)
		if err != nil {
			return "", nil, err
		}
		if len(suites) == 0 {
			return "", nil, fmt.Errorf("no suite files in %q", path)
		}
		name := suites[0].Suite
		var cases []evalcase.Case
		for _, s := range suites {
			cases = append(cases, s.Cases...)
		}
		if len(suites) > 1 {
			name = fmt.Sprintf("%s (+%d more)", name, len(suites)-1)
		}
		return name, cases, nil
	}

	if filepath.Ext(path) == ".csv" {
		cases, err := evalcase.LoadCSV(path)
		if err != nil {
			return "", nil, err
		}
		return filepath.Base(path), cases, nil
	}

	suite, err := evalcase.LoadFile(path)
	if err != nil {
		return "", nil, err
	}
	return suite.Suite, suite.Cases, nil
}
