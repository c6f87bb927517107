package expander_test

import (
	goparser "go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ShihHsuanChen/gocomp/internal/diagnostics"
	"github.com/ShihHsuanChen/gocomp/internal/expander"
)

func TestExpandSource(t *testing.T) {
	src := `package demo

func positiveDoubles(xs []int) []any {
	return seq.Collect(comp![x * 2 for x in xs if x > 0])
}
`
	exp := expander.New(&expander.Config{})
	expanded, errs := exp.ExpandSource(src, "demo.gocomp")
	if len(errs) > 0 {
		t.Fatalf("expansion failed: %s", errs[0])
	}

	if strings.Contains(expanded, "comp![") {
		t.Errorf("marker not replaced:\n%s", expanded)
	}
	if !strings.Contains(expanded, "iter.Seq[any](func(yield func(any) bool) {") {
		t.Errorf("emitted expression missing:\n%s", expanded)
	}
	if !strings.Contains(expanded, `"iter"`) {
		t.Errorf("iter import not injected:\n%s", expanded)
	}
	if !strings.Contains(expanded, `"github.com/ShihHsuanChen/gocomp/pkg/seq"`) {
		t.Errorf("runtime import not injected:\n%s", expanded)
	}
}

func TestExpandSourceKeepsExistingImports(t *testing.T) {
	src := `package demo

import (
	"iter"

	"github.com/ShihHsuanChen/gocomp/pkg/seq"
)

var _ iter.Seq[any]
var xs = []int{1}
var doubles = seq.Collect(comp![x * 2 for x in xs])
`
	exp := expander.New(&expander.Config{})
	expanded, errs := exp.ExpandSource(src, "demo.gocomp")
	if len(errs) > 0 {
		t.Fatalf("expansion failed: %s", errs[0])
	}
	if strings.Count(expanded, `"iter"`) != 1 {
		t.Errorf("iter import duplicated:\n%s", expanded)
	}
}

func TestExpandSourceNestedMarkers(t *testing.T) {
	src := `package demo

var grouped = seq.Collect(comp![seq.Collect(comp![x * x for x in g]) for g in groups])
`
	exp := expander.New(&expander.Config{})
	expanded, errs := exp.ExpandSource(src, "demo.gocomp")
	if len(errs) > 0 {
		t.Fatalf("expansion failed: %s", errs[0])
	}
	if strings.Contains(expanded, "comp![") {
		t.Errorf("nested marker not replaced:\n%s", expanded)
	}
	if !strings.Contains(expanded, "for g := range seq.Values(groups) {") {
		t.Errorf("outer clause missing:\n%s", expanded)
	}
	if !strings.Contains(expanded, "for x := range seq.Values(g) {") {
		t.Errorf("inner clause missing:\n%s", expanded)
	}
}

func TestExpandSourceDiagnosticPosition(t *testing.T) {
	src := `package demo

var broken = comp![x * 2]
`
	exp := expander.New(&expander.Config{})
	_, errs := exp.ExpandSource(src, "demo.gocomp")
	if len(errs) == 0 {
		t.Fatal("expected a diagnostic")
	}
	err := errs[0]
	if err.Code != diagnostics.ErrC002 {
		t.Fatalf("expected C002, got %s (%s)", err.Code, err.Message)
	}
	if err.Line != 3 {
		t.Errorf("expected diagnostic on line 3, got %d", err.Line)
	}
	if err.File != "demo.gocomp" {
		t.Errorf("expected file demo.gocomp, got %q", err.File)
	}
}

func TestExpandFile(t *testing.T) {
	dir := t.TempDir()
	template := filepath.Join(dir, "doubles.gocomp")
	content := `package demo

func positiveDoubles(xs []int) []any {
	return seq.Collect(comp![x * 2 for x in xs if x > 0])
}
`
	if err := os.WriteFile(template, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	exp := expander.New(&expander.Config{})
	outPath, errs := exp.ExpandFile(template)
	if len(errs) > 0 {
		t.Fatalf("ExpandFile failed: %s", errs[0])
	}
	if outPath != filepath.Join(dir, "doubles.go") {
		t.Errorf("unexpected output path: %s", outPath)
	}

	generated, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	text := string(generated)
	if !strings.HasPrefix(text, "// Code generated by gocomp from doubles.gocomp. DO NOT EDIT.") {
		t.Errorf("missing generated header:\n%s", text)
	}

	// The generated file must be valid Go.
	fset := token.NewFileSet()
	if _, err := goparser.ParseFile(fset, outPath, generated, 0); err != nil {
		t.Errorf("generated file does not parse: %v\n%s", err, text)
	}
}

func TestExpandFileNoOutputOnError(t *testing.T) {
	dir := t.TempDir()
	template := filepath.Join(dir, "broken.gocomp")
	if err := os.WriteFile(template, []byte("package demo\n\nvar v = comp![x * 2]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	exp := expander.New(&expander.Config{})
	if _, errs := exp.ExpandFile(template); len(errs) == 0 {
		t.Fatal("expected errors")
	}
	if _, err := os.Stat(filepath.Join(dir, "broken.go")); !os.IsNotExist(err) {
		t.Error("generated file written despite errors")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	yaml := `elem_type: int
runtime:
  import: example.com/iterlib
  alias: iterlib
`
	if err := os.WriteFile(filepath.Join(dir, "gocomp.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := expander.LoadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ElemType != "int" {
		t.Errorf("elem_type: got %q", cfg.ElemType)
	}
	if cfg.Runtime.Import != "example.com/iterlib" || cfg.Runtime.Alias != "iterlib" {
		t.Errorf("runtime: got %+v", cfg.Runtime)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := expander.LoadConfig(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ElemType != "" || cfg.Runtime.Import != "" {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestExpandSourceWithConfiguredRuntime(t *testing.T) {
	src := `package demo

var squares = comp![n * n for n in nums]
`
	exp := expander.New(&expander.Config{
		ElemType: "int",
		Runtime:  expander.RuntimeConfig{Import: "example.com/lib/iterx", Alias: "ix"},
	})
	expanded, errs := exp.ExpandSource(src, "demo.gocomp")
	if len(errs) > 0 {
		t.Fatalf("expansion failed: %s", errs[0])
	}
	if !strings.Contains(expanded, "ix.Values(nums)") {
		t.Errorf("configured alias not used:\n%s", expanded)
	}
	if !strings.Contains(expanded, `ix "example.com/lib/iterx"`) {
		t.Errorf("aliased import not injected:\n%s", expanded)
	}
	if !strings.Contains(expanded, "iter.Seq[int]") {
		t.Errorf("configured element type not used:\n%s", expanded)
	}
}
