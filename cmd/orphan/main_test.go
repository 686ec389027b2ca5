package main

import (
	"strings"
	"testing"

	"github.com/orphanlabs/orphan/pkg/analyzer/deadfiles"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly_ten", 11, "exactly_ten"},
		{"this is a long string", 10, "this is..."},
		{"abc", 2, "ab"},
	}

	for _, tt := range tests {
		if got := truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestSanitizeID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"lib/app/utils.dart", "lib_app_utils_dart"},
		{"a.py", "a_py"},
		{"plain_name", "plain_name"},
	}

	for _, tt := range tests {
		if got := sanitizeID(tt.input); got != tt.want {
			t.Errorf("sanitizeID(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFilterDiagnostics(t *testing.T) {
	diags := []deadfiles.Diagnostic{
		{File: "a.py", Stage: deadfiles.StageRead, Severity: deadfiles.SeverityWarning},
		{File: "a.py", Stage: deadfiles.StageResolve, Severity: deadfiles.SeverityDebug},
		{File: "b.py", Stage: deadfiles.StageParse, Severity: deadfiles.SeverityWarning},
	}

	filtered := filterDiagnostics(diags, false)
	if len(filtered) != 2 {
		t.Fatalf("filterDiagnostics(verbose=false) kept %d entries, want 2", len(filtered))
	}
	for _, d := range filtered {
		if d.Severity == deadfiles.SeverityDebug {
			t.Error("debug diagnostic survived non-verbose filter")
		}
	}

	if got := filterDiagnostics(diags, true); len(got) != len(diags) {
		t.Errorf("filterDiagnostics(verbose=true) kept %d entries, want %d", len(got), len(diags))
	}
}

func TestGenerateDefaultConfig(t *testing.T) {
	content, err := generateDefaultConfig()
	if err != nil {
		t.Fatalf("generateDefaultConfig() error = %v", err)
	}
	if !strings.HasPrefix(content, "# Orphan CLI Configuration") {
		t.Error("generated config missing header comment")
	}
	for _, key := range []string{"[collection]", "[resolution]", "lib_dir", "package_prefix"} {
		if !strings.Contains(content, key) {
			t.Errorf("generated config missing %q", key)
		}
	}
}
