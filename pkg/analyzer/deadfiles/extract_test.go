package deadfiles

import (
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/orphanlabs/orphan/pkg/parser"
)

func TestPythonExtractor(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		imports []string
	}{
		{
			name:    "plain import",
			source:  "import os\n",
			imports: []string{"os"},
		},
		{
			name:    "dotted import",
			source:  "import pkg.module\n",
			imports: []string{"pkg.module"},
		},
		{
			name:    "multiple names",
			source:  "import os, sys\n",
			imports: []string{"os", "sys"},
		},
		{
			name:    "aliased import",
			source:  "import numpy as np\n",
			imports: []string{"numpy"},
		},
		{
			name:    "from import",
			source:  "from pkg.module import thing\n",
			imports: []string{"pkg.module"},
		},
		{
			name:    "relative from import",
			source:  "from .sibling import thing\n",
			imports: []string{"sibling"},
		},
		{
			name:    "bare relative import",
			source:  "from . import thing\n",
			imports: nil,
		},
		{
			name:    "no imports",
			source:  "x = 1\n",
			imports: nil,
		},
	}

	e := &PythonExtractor{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Extract([]byte(tt.source))
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			sort.Strings(got)
			want := append([]string(nil), tt.imports...)
			sort.Strings(want)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Extract() = %v, want %v", got, want)
			}
		})
	}
}

func TestPythonExtractorSyntaxError(t *testing.T) {
	e := &PythonExtractor{}
	_, err := e.Extract([]byte("def broken(:\n"))
	if !errors.Is(err, ErrSyntax) {
		t.Errorf("Extract() error = %v, want ErrSyntax", err)
	}
}

func TestDartExtractor(t *testing.T) {
	source := `
import 'dart:io';
import "package:app/utils.dart";
import 'widgets/button.dart';

void main() {}
`
	e := &DartExtractor{}
	got, err := e.Extract([]byte(source))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	want := []string{"dart:io", "package:app/utils.dart", "widgets/button.dart"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestDartExtractorNeverFails(t *testing.T) {
	e := &DartExtractor{}
	got, err := e.Extract([]byte("this is { not dart ];"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Extract() = %v, want no imports", got)
	}
}

func TestRegistryLookup(t *testing.T) {
	r := DefaultRegistry()

	if e, ok := r.Lookup("pkg/main.py"); !ok || e.Language() != parser.LangPython {
		t.Error("Lookup(.py) should return the Python extractor")
	}
	if e, ok := r.Lookup("pkg/stub.pyi"); !ok || e.Language() != parser.LangPython {
		t.Error("Lookup(.pyi) should return the Python extractor")
	}
	if e, ok := r.Lookup("lib/app.dart"); !ok || e.Language() != parser.LangDart {
		t.Error("Lookup(.dart) should return the Dart extractor")
	}
	if _, ok := r.Lookup("Main.kt"); ok {
		t.Error("Lookup(.kt) should have no extractor")
	}
	if _, ok := r.Lookup("layout.xml"); ok {
		t.Error("Lookup(.xml) should have no extractor")
	}
	if _, ok := r.Lookup("README"); ok {
		t.Error("Lookup() without extension should have no extractor")
	}
}
