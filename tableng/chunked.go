package tableng

import (
	"context"
	"math"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/smartwin/core"
)

// ChunkedEngine 是分块/核外风格的惰性实现。
//
// shift/concat/take 只记录计算图节点；图在两类同步点被求值：
// 分组操作之前与构建结束（Materialize）。求值按目标分块行数
// （默认 core.DefaultChunkSize）切分行区间，分块之间并行计算 ——
// 同步点之间的操作引用透明，无共享可变状态，因此无需加锁。
type ChunkedEngine struct {
	// ChunkSize 目标分块行数；<=0 时取 core.DefaultChunkSize
	ChunkSize int
	// MaxParallel 并行上限；<=0 时取 GOMAXPROCS
	MaxParallel int
}

func NewChunkedEngine(chunkSize int) *ChunkedEngine {
	return &ChunkedEngine{ChunkSize: chunkSize}
}

func (e *ChunkedEngine) chunkSize() int {
	if e.ChunkSize <= 0 {
		return core.DefaultChunkSize
	}
	return e.ChunkSize
}

func (e *ChunkedEngine) parallel() int {
	if e.MaxParallel <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return e.MaxParallel
}

type opKind int

const (
	opLeaf opKind = iota
	opShift
	opHConcat
	opVConcat
	opTake
)

// lazyTable 是计算图节点。物化结果缓存在节点上：同一个句柄被多次
// 物化（同步点）时不重复求值。
type lazyTable struct {
	op      opKind
	frame   *core.Frame  // opLeaf
	parts   []*lazyTable // opShift/opTake 取 parts[0]
	periods int
	rows    []int
	numRows int

	mu     sync.Mutex
	cached *core.Frame
}

func (t *lazyTable) NumRows() int { return t.numRows }

func (e *ChunkedEngine) FromFrame(f *core.Frame) core.Table {
	return &lazyTable{op: opLeaf, frame: f, cached: f, numRows: f.NumRows()}
}

func (e *ChunkedEngine) Shift(t core.Table, periods int) core.Table {
	src := t.(*lazyTable)
	return &lazyTable{op: opShift, parts: []*lazyTable{src}, periods: periods, numRows: src.numRows}
}

func (e *ChunkedEngine) HConcat(parts ...core.Table) core.Table {
	nodes := make([]*lazyTable, len(parts))
	n := 0
	for i, p := range parts {
		nodes[i] = p.(*lazyTable)
		if i == 0 {
			n = nodes[i].numRows
		}
	}
	return &lazyTable{op: opHConcat, parts: nodes, numRows: n}
}

func (e *ChunkedEngine) VConcat(parts ...core.Table) core.Table {
	nodes := make([]*lazyTable, len(parts))
	n := 0
	for i, p := range parts {
		nodes[i] = p.(*lazyTable)
		n += nodes[i].numRows
	}
	return &lazyTable{op: opVConcat, parts: nodes, numRows: n}
}

func (e *ChunkedEngine) Take(t core.Table, rows []int) core.Table {
	src := t.(*lazyTable)
	return &lazyTable{op: opTake, parts: []*lazyTable{src}, rows: rows, numRows: len(rows)}
}

func (e *ChunkedEngine) GroupApply(ctx context.Context, t core.Table, key core.Table, fn core.GroupFunc) ([]int, error) {
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

func (e *ChunkedEngine) Materialize(ctx context.Context, t core.Table) (*core.Frame, error) {
	node, ok := t.(*lazyTable)
	if !ok {
		return nil, core.NewDomainError(core.ModuleFrame, core.ErrorCodeInternalError,
			"chunked engine: foreign table handle")
	}
	return e.eval(ctx, node)
}

func (e *ChunkedEngine) eval(ctx context.Context, node *lazyTable) (*core.Frame, error) {
	node.mu.Lock()
	if node.cached != nil {
		f := node.cached
		node.mu.Unlock()
		return f, nil
	}
	node.mu.Unlock()

	var out *core.Frame
	var err error
	switch node.op {
	case opLeaf:
		out = node.frame
	case opShift:
		out, err = e.evalShift(ctx, node)
	case opHConcat:
		out, err = e.evalConcat(ctx, node, core.HConcatFrames)
	case opVConcat:
		out, err = e.evalConcat(ctx, node, core.VConcatFrames)
	case opTake:
		out, err = e.evalTake(ctx, node)
	}
	if err != nil {
		return nil, err
	}

	node.mu.Lock()
	node.cached = out
	node.mu.Unlock()
	return out, nil
}

// evalConcat 先并行求值各输入，再做列/行拼接。
func (e *ChunkedEngine) evalConcat(ctx context.Context, node *lazyTable, concat func(...*core.Frame) (*core.Frame, error)) (*core.Frame, error) {
	frames := make([]*core.Frame, len(node.parts))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(e.parallel())
	for i, p := range node.parts {
		i, p := i, p
		eg.Go(func() error {
			f, err := e.eval(ctx, p)
			if err != nil {
				return err
			}
			frames[i] = f
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return concat(frames...)
}

// evalShift 对每列分块并行移位：输出行 i 取自输入行 i-periods，
// 分块之间互不依赖（输入已物化），直接并行。
func (e *ChunkedEngine) evalShift(ctx context.Context, node *lazyTable) (*core.Frame, error) {
	src, err := e.eval(ctx, node.parts[0])
	if err != nil {
		return nil, err
	}
	periods := node.periods
	if periods <= 0 {
		return src, nil
	}
	n := src.NumRows()
	cols := make([]*core.Series, src.NumCols())
	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(e.parallel())
	for ci := 0; ci < src.NumCols(); ci++ {
		ci := ci
		c := src.ColAt(ci)
		eg.Go(func() error {
			cols[ci] = e.shiftSeries(c, n, periods)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return src.WithColumns(cols), nil
}

func (e *ChunkedEngine) shiftSeries(c *core.Series, n, periods int) *core.Series {
	out := &core.Series{Name: c.Name, Kind: c.Kind}
	if c.Kind == core.SeriesFloat {
		out.Floats = make([]float64, n)
	} else {
		out.Strings = make([]string, n)
		out.Valid = make([]bool, n)
	}
	for lo := 0; lo < n; lo += e.chunkSize() {
		hi := lo + e.chunkSize()
		if hi > n {
			hi = n
		}
		for i := lo; i < hi; i++ {
			if i < periods {
				if c.Kind == core.SeriesFloat {
					out.Floats[i] = math.NaN()
				}
				continue
			}
			if c.Kind == core.SeriesFloat {
				out.Floats[i] = c.Floats[i-periods]
			} else {
				out.Strings[i] = c.Strings[i-periods]
				out.Valid[i] = c.Valid == nil || c.Valid[i-periods]
			}
		}
	}
	return out
}

// evalTake 按行号选行，列间并行。
func (e *ChunkedEngine) evalTake(ctx context.Context, node *lazyTable) (*core.Frame, error) {
	src, err := e.eval(ctx, node.parts[0])
	if err != nil {
		return nil, err
	}
	cols := make([]*core.Series, src.NumCols())
	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(e.parallel())
	for ci := 0; ci < src.NumCols(); ci++ {
		ci := ci
		c := src.ColAt(ci)
		eg.Go(func() error {
			cols[ci] = c.Take(node.rows)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return src.WithColumns(cols), nil
}
