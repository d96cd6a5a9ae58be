package filter

import (
	"context"
	"testing"

	"github.com/rushteam/smartwin/core"
)

func TestExprFiltersRows(t *testing.T) {
	f := core.MustNewFrame(
		core.NewStringSeries(core.ColModel, []string{"ST4000DM000", "WDC-X", "ST8000NM0055"}),
		core.NewFloatSeries("smart_5_raw", []float64{1, 2, 3}),
	)

	bctx := core.NewBuildContext(core.BuildConfig{WindowDim: 1, Overlap: core.OverlapFull}, nil)
	stage := &Expr{Expr: `record.model.startsWith("ST")`}
	out, err := stage.Process(context.Background(), bctx, f)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if out.NumRows() != 2 {
		t.Fatalf("行数 = %d, want 2", out.NumRows())
	}
	v, _ := out.Col("smart_5_raw")
	if v.Floats[0] != 1 || v.Floats[1] != 3 {
		t.Errorf("保留行 = %v, want [1 3]", v.Floats)
	}
	if len(bctx.Report.Notes) != 1 {
		t.Errorf("应记录一条剔除行数诊断, got %v", bctx.Report.Notes)
	}
}

func TestExprEmptyPassthrough(t *testing.T) {
	f := core.MustNewFrame(core.NewFloatSeries("v", []float64{1, 2}))
	bctx := core.NewBuildContext(core.BuildConfig{WindowDim: 1, Overlap: core.OverlapFull}, nil)
	out, err := (&Expr{}).Process(context.Background(), bctx, f)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out != f {
		t.Errorf("空表达式应原样透传")
	}
	if len(bctx.Report.Notes) != 0 {
		t.Errorf("空表达式不应产生诊断")
	}
}

func TestExprBadExpression(t *testing.T) {
	f := core.MustNewFrame(core.NewFloatSeries("v", []float64{1}))
	bctx := core.NewBuildContext(core.BuildConfig{WindowDim: 1, Overlap: core.OverlapFull}, nil)
	_, err := (&Expr{Expr: "record.model =="}).Process(context.Background(), bctx, f)
	if err == nil {
		t.Fatalf("非法表达式应报错")
	}
}
