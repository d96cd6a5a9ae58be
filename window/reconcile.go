package window

import (
	"context"
	"fmt"
	"sort"

	"github.com/rushteam/smartwin/core"
	"github.com/rushteam/smartwin/pipeline"
)

// Reconciler 是列名规整 Stage。
//
// 反复移位-拼接会产生大量重名列。规整分两步：
//  1. 重名按产生顺序追加递增后缀消歧：col, col_2, col_3, …（首个出现者保留原名）；
//  2. 全列按字典序稳定排序，得到与拼接顺序无关的规范 schema。
//
// 下游 ValidityFilter 按 base_\d+ 正则匹配重复标识列，依赖这里的后缀规则。
type Reconciler struct{}

func (s *Reconciler) Name() string        { return "window.reconcile" }
func (s *Reconciler) Kind() pipeline.Kind { return pipeline.KindReconcile }

func (s *Reconciler) Process(
	ctx context.Context,
	bctx *core.BuildContext,
	f *core.Frame,
) (*core.Frame, error) {
	return Reconcile(f), nil
}

// Reconcile 执行重名消解与字典序排序，返回新 Frame。
func Reconcile(f *core.Frame) *core.Frame {
	count := make(map[string]int)
	cols := make([]*core.Series, f.NumCols())
	for i := 0; i < f.NumCols(); i++ {
		c := f.ColAt(i)
		count[c.Name]++
		name := c.Name
		if count[c.Name] > 1 {
			name = fmt.Sprintf("%s_%d", c.Name, count[c.Name])
		}
		nc := *c
		nc.Name = name
		cols[i] = &nc
	}
	sort.SliceStable(cols, func(a, b int) bool { return cols[a].Name < cols[b].Name })
	return f.WithColumns(cols)
}
