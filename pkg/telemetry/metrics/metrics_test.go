package metrics

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mercator-hq/lexicon/pkg/config"
	"mercator-hq/lexicon/pkg/notation/ast"
	nerrors "mercator-hq/lexicon/pkg/notation/errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Helper function to create test config
func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:   true,
		Namespace: "test",
		Subsystem: "notation",
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)

	if collector.config != cfg {
		t.Error("Collector config not set correctly")
	}
	if collector.Registry() != registry {
		t.Error("Collector registry not set correctly")
	}
	if !collector.Enabled() {
		t.Error("Enabled() = false, want true")
	}
}

func TestCollector_Defaults(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}
	collector := NewCollector(cfg, nil)

	if cfg.Namespace != config.DefaultMetricsNamespace || cfg.Subsystem != config.DefaultMetricsSubsystem {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if collector.Registry() == nil {
		t.Error("NewCollector(nil registry) should create one")
	}
}

func TestCollector_RecordLoad(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	pm := collector.parseMetrics

	collector.RecordLoad("words.lex", 12, 3*time.Millisecond, nil)
	collector.RecordLoad("words.lex", 10, 2*time.Millisecond, nil)

	if got := testutil.ToFloat64(pm.linesTotal.WithLabelValues("parsed")); got != 22 {
		t.Errorf("lines_total{parsed} = %v, want 22", got)
	}
	if got := testutil.ToFloat64(pm.entries.WithLabelValues("words.lex")); got != 10 {
		t.Errorf("entries{words.lex} = %v, want 10", got)
	}

	parseErr := nerrors.AtLine(nerrors.New(nerrors.ErrorTypeMismatchedBrackets, "run[", "Unbalanced"), "bad.lex", 3)
	collector.RecordLoad("bad.lex", 0, time.Millisecond, parseErr)
	collector.RecordLoad("odd.lex", 0, time.Millisecond, errors.New("boom"))

	if got := testutil.ToFloat64(pm.linesTotal.WithLabelValues("failed")); got != 2 {
		t.Errorf("lines_total{failed} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(pm.errorsTotal.WithLabelValues("mismatched_brackets")); got != 1 {
		t.Errorf("parse_errors_total{mismatched_brackets} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(pm.errorsTotal.WithLabelValues("unknown")); got != 1 {
		t.Errorf("parse_errors_total{unknown} = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(pm.loadDuration); got != 1 {
		t.Errorf("load_duration_seconds series = %d, want 1", got)
	}
}

func TestCollector_RecordValidation(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	vm := collector.validationMetrics

	errs := nerrors.NewErrorList()
	errs.AddError(nerrors.ErrorTypeRoleConflict, "conflict", ast.Location{Line: 1})
	errs.AddError(nerrors.ErrorTypeRoleConflict, "another", ast.Location{Line: 2})
	errs.AddError(nerrors.ErrorTypeDuplicateHeadword, "dup", ast.Location{Line: 3})

	collector.RecordValidation(config.ValidationModeAll, errs, time.Millisecond)
	collector.RecordValidation(config.ValidationModeFirst, nil, time.Millisecond)
	collector.RecordValidation(config.ValidationModeAll, nerrors.NewErrorList(), time.Millisecond)

	if got := testutil.ToFloat64(vm.runsTotal.WithLabelValues("all", "invalid")); got != 1 {
		t.Errorf("validations_total{all,invalid} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(vm.runsTotal.WithLabelValues("all", "clean")); got != 1 {
		t.Errorf("validations_total{all,clean} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(vm.runsTotal.WithLabelValues("first", "clean")); got != 1 {
		t.Errorf("validations_total{first,clean} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(vm.issuesTotal.WithLabelValues("role_conflict")); got != 2 {
		t.Errorf("validation_issues_total{role_conflict} = %v, want 2", got)
	}
}

func TestCollector_RecordWatchEvent(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.RecordWatchEvent("write")
	collector.RecordWatchEvent("write")

	if got := testutil.ToFloat64(collector.validationMetrics.watchEvents.WithLabelValues("write")); got != 2 {
		t.Errorf("watch_events_total{write} = %v, want 2", got)
	}
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	collector := NewCollector(cfg, nil)

	collector.RecordLoad("words.lex", 5, time.Millisecond, nil)
	collector.RecordValidation("all", nil, time.Millisecond)
	collector.RecordWatchEvent("write")

	if got := testutil.CollectAndCount(collector.parseMetrics.linesTotal); got != 0 {
		t.Errorf("disabled collector recorded %d series", got)
	}

	path := filepath.Join(t.TempDir(), "metrics.prom")
	if err := collector.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() failed: %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Error("disabled collector should not write a textfile")
	}
}

func TestCollector_SourceCardinality(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	for i := 0; i < maxSources+5; i++ {
		collector.RecordLoad(fmt.Sprintf("file-%d.lex", i), 1, time.Millisecond, nil)
	}

	if got := testutil.ToFloat64(collector.parseMetrics.entries.WithLabelValues("other")); got != 1 {
		t.Errorf("entries{other} = %v, want 1", got)
	}
	if got := collector.cardinalityLimiter.Count(); got != maxSources {
		t.Errorf("Count() = %d, want %d", got, maxSources)
	}
}

func TestWriteTextfile(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.RecordLoad("words.lex", 3, time.Millisecond, nil)

	path := filepath.Join(t.TempDir(), "metrics.prom")
	if err := collector.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := `test_notation_entries{source="words.lex"} 3`
	if !strings.Contains(string(data), want) {
		t.Errorf("textfile missing %q:\n%s", want, data)
	}

	if err := collector.WriteTextfile(""); err != nil {
		t.Errorf("WriteTextfile(\"\") = %v, want nil", err)
	}
	if err := collector.WriteTextfile(filepath.Join(t.TempDir(), "nope", "m.prom")); err == nil {
		t.Error("WriteTextfile() into a missing directory should fail")
	}
}

func TestCardinalityLimiter(t *testing.T) {
	cl := NewCardinalityLimiter(2)
	if !cl.Allow("a") || !cl.Allow("b") || !cl.Allow("a") {
		t.Error("Allow() rejected a value within the limit")
	}
	if cl.Allow("c") {
		t.Error("Allow() accepted a value beyond the limit")
	}
	if cl.Count() != 2 {
		t.Errorf("Count() = %d, want 2", cl.Count())
	}
}
