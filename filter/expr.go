package filter

import (
	"context"

	"github.com/rushteam/smartwin/core"
	"github.com/rushteam/smartwin/ingest"
	"github.com/rushteam/smartwin/pipeline"
)

// Expr 是基于 CEL 表达式的行筛选 Stage，用在归一化之前的原始表上，
// 例如按型号圈定设备：record.model == "ST4000DM000"。
// 表达式为空时原样透传。
type Expr struct {
	Expr string
}

func (s *Expr) Name() string        { return "filter.expr" }
func (s *Expr) Kind() pipeline.Kind { return pipeline.KindFilter }

func (s *Expr) Process(
	ctx context.Context,
	bctx *core.BuildContext,
	f *core.Frame,
) (*core.Frame, error) {
	out, err := ingest.Select(f, s.Expr)
	if err != nil {
		return nil, err
	}
	if dropped := f.NumRows() - out.NumRows(); dropped > 0 {
		bctx.Report.Notef("filter.expr dropped %d rows", dropped)
	}
	return out, nil
}
