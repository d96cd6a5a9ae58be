package pipeline

import (
	"context"

	"github.com/rushteam/smartwin/core"
)

// Pipeline 是 smartwin 的核心抽象：把数据集加工逻辑拆成可组合的 Stage 链
// （Normalize → Window → Reconcile → Filter）。
// 任一阶段返回错误即终止：构建从调用方视角是原子的，要么产出完整结果要么报错。
type Pipeline struct {
	Stages []Stage
}

func (p *Pipeline) Run(
	ctx context.Context,
	bctx *core.BuildContext,
	f *core.Frame,
) (*core.Frame, error) {
	cur := f
	for _, stage := range p.Stages {
		next, err := stage.Process(ctx, bctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
