package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"text", FormatText},
		{"TEXT", FormatText},
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"toon", FormatTOON},
		{"TOON", FormatTOON},
		{"", FormatText},
		{"invalid", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseFormat(tt.input)
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatterWritesFile(t *testing.T) {
	tmpDir := t.TempDir()
	outPath := filepath.Join(tmpDir, "out.json")

	f, err := NewFormatter(FormatJSON, outPath, true)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}

	if f.Colored() {
		t.Error("colors should be disabled when writing to a file")
	}

	data := map[string]any{"unused": []string{"c.py"}}
	if err := f.Output(data); err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	content, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(content, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
}

func TestTableRenderText(t *testing.T) {
	var buf bytes.Buffer

	table := NewTable(
		"Unused Files",
		[]string{"Path", "Language"},
		[][]string{
			{"c.py", "python"},
			{"old/widget.dart", "dart"},
		},
		[]string{"Total: 2", ""},
		nil,
	)

	if err := table.RenderText(&buf, false); err != nil {
		t.Fatalf("RenderText() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Unused Files") {
		t.Error("output missing title")
	}
	if !strings.Contains(out, "c.py") {
		t.Error("output missing row content")
	}
}

func TestTableRenderMarkdown(t *testing.T) {
	var buf bytes.Buffer

	table := NewTable("T", []string{"A", "B"}, [][]string{{"1", "2"}}, nil, nil)
	if err := table.RenderMarkdown(&buf); err != nil {
		t.Fatalf("RenderMarkdown() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "| A | B |") {
		t.Errorf("markdown header missing: %q", out)
	}
	if !strings.Contains(out, "| --- | --- |") {
		t.Errorf("markdown separator missing: %q", out)
	}
}

func TestTableRenderDataPrefersWrapped(t *testing.T) {
	payload := map[string]int{"total": 3}
	table := NewTable("T", []string{"A"}, [][]string{{"x"}}, nil, payload)

	data, ok := table.RenderData().(map[string]int)
	if !ok {
		t.Fatalf("RenderData() = %T, want wrapped payload", table.RenderData())
	}
	if data["total"] != 3 {
		t.Errorf("RenderData()[total] = %d, want 3", data["total"])
	}
}
