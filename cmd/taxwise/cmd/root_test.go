package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	cfg := "[general]\nlog_level = \"error\"\n\n[export]\noutput_dir = \"exports\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	// flags are package state; reset the ones tests touch
	calcFormat, calcPeriods, exportOut, bracketsFile, tableFile = "text", 0, "", "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCalcText(t *testing.T) {
	out, err := execute(t, "calc", "1,500,000")
	if err != nil {
		t.Fatalf("calc error = %v", err)
	}
	for _, want := range []string{"₦3,645,000", "₦303,750", "20.3%", "8M+: ₦10,000,000 × 24% = ₦2,400,000"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCalcJSON(t *testing.T) {
	out, err := execute(t, "calc", "125000", "--format", "json")
	if err != nil {
		t.Fatalf("calc error = %v", err)
	}
	var decoded struct {
		Result struct {
			TotalTax string `json:"total_tax"`
		} `json:"result"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if decoded.Result.TotalTax != "90000" {
		t.Errorf("total_tax = %q, want 90000", decoded.Result.TotalTax)
	}
}

func TestCalcRejectsInvalidInput(t *testing.T) {
	if _, err := execute(t, "calc", "abc"); err == nil {
		t.Error("expected an error for non-numeric income")
	}
	if _, err := execute(t, "calc", "1000", "--format", "xml"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestBrackets(t *testing.T) {
	out, err := execute(t, "brackets")
	if err != nil {
		t.Fatalf("brackets error = %v", err)
	}
	if !strings.Contains(out, "NG-2026") || !strings.Contains(out, "no limit") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestBracketsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	table := "name: broken\nbrackets:\n  - limit: 100\n    rate: 0.5\n    label: a\n"
	if err := os.WriteFile(path, []byte(table), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "brackets", "--file", path); err == nil {
		t.Error("expected a validation error for a table without an unbounded bracket")
	}
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "summary.pdf")
	out, err := execute(t, "export", "1500000", "--out", path)
	if err != nil {
		t.Fatalf("export error = %v", err)
	}
	if !strings.Contains(out, "Saved "+path) {
		t.Errorf("output = %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("export is not a PDF")
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.Contains(out, "TaxWise NG v") {
		t.Errorf("output = %q", out)
	}
}
