package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mlortz/sankey/pkg/errors"
	"github.com/mlortz/sankey/pkg/observability"
	"github.com/mlortz/sankey/pkg/sankey"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flows.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr errors.Code
	}{
		{
			name: "valid with defaults",
			opts: Options{Input: "flows.csv"},
		},
		{
			name:    "no input",
			opts:    Options{},
			wantErr: errors.ErrCodeInvalidOption,
		},
		{
			name:    "bad format",
			opts:    Options{Input: "flows.csv", Formats: []string{"gif"}},
			wantErr: errors.ErrCodeInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(tt.opts.Formats) != 1 || tt.opts.Formats[0] != FormatSVG {
				t.Errorf("Formats = %v, want [svg]", tt.opts.Formats)
			}
		})
	}
}

func TestRunnerExecute(t *testing.T) {
	path := writeCSV(t, "left,right,leftweight\na,x,3\na,y,1\nb,x,2\n")

	runner := NewRunner(nil)
	result, err := runner.Execute(context.Background(), Options{
		Input:   path,
		Formats: []string{FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.Stats.RecordCount != 3 {
		t.Errorf("RecordCount = %d, want 3", result.Stats.RecordCount)
	}
	if result.Stats.StripCount != 3 {
		t.Errorf("StripCount = %d, want 3", result.Stats.StripCount)
	}
	if len(result.Artifacts) != 2 {
		t.Fatalf("got %d artifacts, want 2", len(result.Artifacts))
	}
	if !strings.HasPrefix(string(result.Artifacts[FormatSVG]), "<svg") {
		t.Error("svg artifact is not an SVG document")
	}
	if len(result.Artifacts[FormatJSON]) == 0 {
		t.Error("empty json artifact")
	}
}

func TestRunnerExecuteRecordsDirect(t *testing.T) {
	records, err := sankey.Records([]string{"a"}, []string{"x"}, []float64{5}, nil)
	if err != nil {
		t.Fatalf("Records() error: %v", err)
	}

	result, err := NewRunner(nil).Execute(context.Background(), Options{Records: records})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if result.Diagram.LeftBands[0].Top != 5 {
		t.Errorf("band top = %v, want 5", result.Diagram.LeftBands[0].Top)
	}
}

func TestRunnerExecutePropagatesCoreErrors(t *testing.T) {
	path := writeCSV(t, "left,right\na,x\n")

	_, err := NewRunner(nil).Execute(context.Background(), Options{
		Input:   path,
		Diagram: sankey.Options{LeftOrder: []string{"a", "phantom"}},
	})
	if !errors.Is(err, errors.ErrCodeLabelMismatch) {
		t.Fatalf("error = %v, want LABEL_MISMATCH", err)
	}
}

func TestRunnerOrderByWeight(t *testing.T) {
	records, err := sankey.Records(
		[]string{"small", "big"},
		[]string{"x", "x"},
		[]float64{1, 9},
		nil,
	)
	if err != nil {
		t.Fatalf("Records() error: %v", err)
	}

	result, err := NewRunner(nil).Execute(context.Background(), Options{
		Records:       records,
		OrderByWeight: true,
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if result.Diagram.LeftLabels[0] != "big" {
		t.Errorf("LeftLabels = %v, want big first", result.Diagram.LeftLabels)
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	records, _ := sankey.Records([]string{"a"}, []string{"x"}, nil, nil)
	d, err := sankey.Compute(records, sankey.Options{})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	_, err = Render(d, []string{"gif"})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Fatalf("error = %v, want INVALID_FORMAT", err)
	}
}

type stageHooks struct {
	observability.NoopPipelineHooks
	stages []string
}

func (h *stageHooks) OnLoadComplete(_ context.Context, _ string, _ int, _ time.Duration, _ error) {
	h.stages = append(h.stages, "load")
}

func (h *stageHooks) OnComputeComplete(_ context.Context, _ int, _ time.Duration, _ error) {
	h.stages = append(h.stages, "compute")
}

func (h *stageHooks) OnRenderComplete(_ context.Context, _ []string, _ time.Duration, _ error) {
	h.stages = append(h.stages, "render")
}

func TestRunnerExecuteEmitsHooks(t *testing.T) {
	defer observability.Reset()

	hooks := &stageHooks{}
	observability.SetPipelineHooks(hooks)

	records, _ := sankey.Records([]string{"a"}, []string{"x"}, nil, nil)
	if _, err := NewRunner(nil).Execute(context.Background(), Options{Records: records}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	want := []string{"load", "compute", "render"}
	if len(hooks.stages) != len(want) {
		t.Fatalf("stages = %v, want %v", hooks.stages, want)
	}
	for i, s := range want {
		if hooks.stages[i] != s {
			t.Errorf("stage[%d] = %q, want %q", i, hooks.stages[i], s)
		}
	}
}
