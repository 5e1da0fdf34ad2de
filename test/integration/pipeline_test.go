// Package integration exercises the whole import pipeline: a generated
// workbook through ingestion, tag lookup, normalization, and export.
package integration

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"cueimport/internal/config"
	"cueimport/internal/export"
	"cueimport/internal/logger"
	"cueimport/internal/normalizer"
	"cueimport/internal/source"
	"cueimport/internal/tags"
)

const tagServiceJSON = `[
	{"id": "1", "name": "Major Donor 2021", "mapped_name": "Major Donor"},
	{"id": "2", "name": "Top Donor", "mapped_name": "Major Donor"},
	{"id": "3", "name": "Summer School 2016", "mapped_name": "Summer 2016"},
	{"id": "4", "name": "Camp 2016 ", "mapped_name": "Summer 2016"},
	{"id": "5", "name": "Board Member", "mapped_name": "Board Member"}
]`

func writeFixtureWorkbook(t *testing.T) string {
	t.Helper()

	sheets := map[string][][]interface{}{
		"Input Constituents": {
			{"Patron ID", "First Name", "Last Name", "Company", "Salutation", "Gender", "Title", "Date Entered", "Tags"},
			{"P1", "jane", "doe", "", "Dr.", "Married", "Professor", "Jan 19, 2020", "Top Donor, Major Donor 2021"},
			{"P2", "", "", "Acme Corp", "", "", "", "", "Board Member"},
			{"P3", "", "", "Retired", "Rev", "Unknown", "", "", ""},
		},
		"Input Emails": {
			{"Patron ID", "Email", "Type"},
			{"P1", "Jane@GMAIL.com", "Primary"},
			{"P1", "jane@gmaill.com", "Other"},
			{"P2", "info@acme.example.com", "Primary"},
		},
		"Input Donation History": {
			{"Patron ID", "Donation Amount", "Donation Date"},
			{"P1", "100", "2021-01-01"},
			{"P1", "13000", "2022-04-19 00:00:00"},
		},
	}

	wb := excelize.NewFile()

	first := true
	for name, rows := range sheets {
		if first {
			if err := wb.SetSheetName("Sheet1", name); err != nil {
				t.Fatal(err)
			}

			first = false
		} else if _, err := wb.NewSheet(name); err != nil {
			t.Fatal(err)
		}

		for i, row := range rows {
			if err := wb.SetSheetRow(name, fmt.Sprintf("A%d", i+1), &row); err != nil {
				t.Fatal(err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "input.xlsx")
	if err := wb.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	return path
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}

	return rows
}

func runPipeline(t *testing.T, serviceURL string) ([][]string, [][]string) {
	t.Helper()

	outDir := t.TempDir()

	cfg := config.Default()
	cfg.Input.File = writeFixtureWorkbook(t)
	cfg.Output.ConstituentsPath = filepath.Join(outDir, "constituents.csv")
	cfg.Output.TagsPath = filepath.Join(outDir, "tags.csv")
	cfg.Tags.ServiceURL = serviceURL
	cfg.Tags.TimeoutSec = 2

	if err := cfg.Validate(); err != nil {
		t.Fatalf("config invalid: %v", err)
	}

	log := logger.New("error", io.Discard)

	dataset, err := source.NewReader(cfg.Input, log).Read()
	if err != nil {
		t.Fatalf("ingestion failed: %v", err)
	}

	resolver := tags.LoadResolver(context.Background(), cfg.Tags.ServiceURL, cfg.FetchTimeout(), cfg.Tags.Fallback, log)
	result := normalizer.NewProcessor(cfg, resolver, log).Process(dataset)

	if err := export.WriteConstituents(cfg.Output.ConstituentsPath, result.Constituents); err != nil {
		t.Fatalf("constituents export failed: %v", err)
	}

	if err := export.WriteTagCounts(cfg.Output.TagsPath, result.TagCounts); err != nil {
		t.Fatalf("tag export failed: %v", err)
	}

	return readCSV(t, cfg.Output.ConstituentsPath), readCSV(t, cfg.Output.TagsPath)
}

func TestPipeline_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, tagServiceJSON)
	}))
	defer srv.Close()

	constituents, tagRows := runPipeline(t, srv.URL)

	// Header + 3 input constituents: row count preserved.
	if len(constituents) != 4 {
		t.Fatalf("constituent rows = %d, want 4", len(constituents))
	}

	header := constituents[0]
	col := func(name string) int {
		for i, h := range header {
			if h == name {
				return i
			}
		}

		t.Fatalf("column %q not found in %v", name, header)

		return -1
	}

	jane := constituents[1]
	if jane[col("CB Constituent Type")] != "Person" {
		t.Errorf("P1 type = %q", jane[col("CB Constituent Type")])
	}

	if jane[col("CB First Name")] != "Jane" || jane[col("CB Last Name")] != "Doe" {
		t.Errorf("P1 names = %q %q, want title-cased", jane[col("CB First Name")], jane[col("CB Last Name")])
	}

	if jane[col("CB Email 1 (Standardized)")] != "jane@gmail.com" {
		t.Errorf("P1 email1 = %q", jane[col("CB Email 1 (Standardized)")])
	}

	if jane[col("CB Email 2 (Standardized)")] != "" {
		t.Errorf("P1 email2 = %q, want empty (typo domain)", jane[col("CB Email 2 (Standardized)")])
	}

	if jane[col("CB Title")] != "Dr." {
		t.Errorf("P1 title = %q", jane[col("CB Title")])
	}

	if jane[col("CB Tags")] != "Major Donor" {
		t.Errorf("P1 tags = %q, want Major Donor", jane[col("CB Tags")])
	}

	if jane[col("CB Background Information")] != "Job Title: Professor; Marital Status: Married" {
		t.Errorf("P1 background = %q", jane[col("CB Background Information")])
	}

	if jane[col("CB Lifetime Donation Amount")] != "$13,100.00" {
		t.Errorf("P1 lifetime = %q", jane[col("CB Lifetime Donation Amount")])
	}

	if jane[col("CB Most Recent Donation Amount")] != "$13,000.00" {
		t.Errorf("P1 last gift = %q", jane[col("CB Most Recent Donation Amount")])
	}

	if jane[col("CB Most Recent Donation Date")] != "2022-04-19 00:00:00" {
		t.Errorf("P1 last gift date = %q", jane[col("CB Most Recent Donation Date")])
	}

	acme := constituents[2]
	if acme[col("CB Constituent Type")] != "Company" || acme[col("CB Company Name")] != "Acme Corp" {
		t.Errorf("P2 row = %v", acme)
	}

	if acme[col("CB Background Information")] != "" {
		t.Errorf("P2 background = %q, want empty", acme[col("CB Background Information")])
	}

	retired := constituents[3]
	if retired[col("CB Constituent Type")] != "Person" {
		t.Errorf("P3 type = %q, want Person", retired[col("CB Constituent Type")])
	}

	if retired[col("CB Company Name")] != "" {
		t.Errorf("P3 company = %q, want dropped", retired[col("CB Company Name")])
	}

	if retired[col("CB Title")] != "" {
		t.Errorf("P3 title = %q, want empty for Rev", retired[col("CB Title")])
	}

	// Tag summary: Board Member (P2) and Major Donor (P1), sorted.
	if len(tagRows) != 3 {
		t.Fatalf("tag rows = %v, want header + 2", tagRows)
	}

	if tagRows[1][0] != "Board Member" || tagRows[1][1] != "1" {
		t.Errorf("tag row 1 = %v", tagRows[1])
	}

	if tagRows[2][0] != "Major Donor" || tagRows[2][1] != "1" {
		t.Errorf("tag row 2 = %v", tagRows[2])
	}
}

// The pipeline must produce identical output whether the mapping came from
// the service or from the embedded fallback covering the same contract.
func TestPipeline_FallbackMatchesRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, tagServiceJSON)
	}))
	defer srv.Close()

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	remoteConstituents, remoteTags := runPipeline(t, srv.URL)
	fallbackConstituents, fallbackTags := runPipeline(t, down.URL)

	if len(remoteConstituents) != len(fallbackConstituents) {
		t.Fatalf("row counts differ: %d vs %d", len(remoteConstituents), len(fallbackConstituents))
	}

	for i := range remoteConstituents {
		for j := range remoteConstituents[i] {
			if remoteConstituents[i][j] != fallbackConstituents[i][j] {
				t.Errorf("constituents differ at [%d][%d]: %q vs %q", i, j, remoteConstituents[i][j], fallbackConstituents[i][j])
			}
		}
	}

	if len(remoteTags) != len(fallbackTags) {
		t.Fatalf("tag row counts differ: %d vs %d", len(remoteTags), len(fallbackTags))
	}
}

func TestPipeline_StructuralFailureProducesNoOutput(t *testing.T) {
	outDir := t.TempDir()

	cfg := config.Default()
	cfg.Input.File = filepath.Join(t.TempDir(), "missing.xlsx")
	cfg.Output.ConstituentsPath = filepath.Join(outDir, "constituents.csv")
	cfg.Output.TagsPath = filepath.Join(outDir, "tags.csv")

	log := logger.New("error", io.Discard)

	if _, err := source.NewReader(cfg.Input, log).Read(); err == nil {
		t.Fatal("ingestion succeeded on a missing workbook")
	}

	// The worker aborts before export; nothing may exist in the out dir.
	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}

	if len(entries) != 0 {
		t.Errorf("output directory not empty after structural failure: %v", entries)
	}
}
