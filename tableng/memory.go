// Package tableng 提供表计算引擎（core.TableEngine）的两种实现：
// 立即求值的 MemoryEngine 与惰性分块求值的 ChunkedEngine。
// 两者满足同一契约，WindowBuilder 可以互换使用。
package tableng

import (
	"context"

	"github.com/rushteam/smartwin/core"
)

// MemoryEngine 是立即求值的内存实现，用于测试/小数据集/对照分块实现。
type MemoryEngine struct{}

func NewMemoryEngine() *MemoryEngine { return &MemoryEngine{} }

// memTable 直接包装物化表。
type memTable struct {
	f *core.Frame
}

func (t *memTable) NumRows() int { return t.f.NumRows() }

func (e *MemoryEngine) FromFrame(f *core.Frame) core.Table {
	return &memTable{f: f}
}

func (e *MemoryEngine) Shift(t core.Table, periods int) core.Table {
	return &memTable{f: t.(*memTable).f.Shift(periods)}
}

func (e *MemoryEngine) HConcat(parts ...core.Table) core.Table {
	frames := make([]*core.Frame, len(parts))
	for i, p := range parts {
		frames[i] = p.(*memTable).f
	}
	f, err := core.HConcatFrames(frames...)
	if err != nil {
		// 行数不一致属于引擎误用；与分块实现一致，错误延迟到物化时报告
		return &errTable{err: err}
	}
	return &memTable{f: f}
}

func (e *MemoryEngine) VConcat(parts ...core.Table) core.Table {
	frames := make([]*core.Frame, len(parts))
	for i, p := range parts {
		frames[i] = p.(*memTable).f
	}
	f, err := core.VConcatFrames(frames...)
	if err != nil {
		return &errTable{err: err}
	}
	return &memTable{f: f}
}

func (e *MemoryEngine) Take(t core.Table, rows []int) core.Table {
	return &memTable{f: t.(*memTable).f.Take(rows)}
}

func (e *MemoryEngine) GroupApply(ctx context.Context, t core.Table, key core.Table, fn core.GroupFunc) ([]int, error) {
	tf, err := e.Materialize(ctx, t)
	if err != nil {
		return nil, err
	}
	kf, err := e.Materialize(ctx, key)
	if err != nil {
		return nil, err
	}
	return groupApply(tf, kf, fn)
}

func (e *MemoryEngine) Materialize(ctx context.Context, t core.Table) (*core.Frame, error) {
	switch v := t.(type) {
	case *errTable:
		return nil, v.err
	case *memTable:
		return v.f, nil
	}
	return nil, core.NewDomainError(core.ModuleFrame, core.ErrorCodeInternalError,
		"memory engine: foreign table handle")
}

// errTable 承载被延迟的构造错误，在物化同步点统一暴露。
type errTable struct {
	err error
}

func (t *errTable) NumRows() int { return 0 }

// groupApply 是两种引擎共用的分组逻辑：按 key 首列的连续分段切组。
// 引擎假定同设备的行连续（输入按 serial_number, date 排序），不做强制。
func groupApply(tf, kf *core.Frame, fn core.GroupFunc) ([]int, error) {
	if kf.NumCols() == 0 {
		return nil, core.NewDomainError(core.ModuleFrame, core.ErrorCodeMissingColumn,
			"group apply: empty key table")
	}
	if kf.NumRows() != tf.NumRows() {
		return nil, core.NewDomainError(core.ModuleFrame, core.ErrorCodeShapeMismatch,
			"group apply: key rows do not align with table rows")
	}
	keyCol := kf.ColAt(0)
	out := make([]int, 0)
	for _, run := range core.GroupRuns(keyCol) {
		group := tf.Slice(run[0], run[1])
		out = append(out, fn(group, run[0])...)
	}
	return out, nil
}
