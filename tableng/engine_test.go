package tableng

import (
	"context"
	"math"
	"reflect"
	"testing"

	"github.com/rushteam/smartwin/core"
)

func testFrame() *core.Frame {
	return core.MustNewFrame(
		core.NewStringSeries(core.ColSerialNumber, []string{"a", "a", "a", "b", "b", "b"}),
		core.NewFloatSeries("v", []float64{0, 1, 2, 3, 4, 5}),
	)
}

func engines() map[string]core.TableEngine {
	return map[string]core.TableEngine{
		"memory":  NewMemoryEngine(),
		"chunked": &ChunkedEngine{ChunkSize: 2, MaxParallel: 2},
	}
}

func TestEngineShift(t *testing.T) {
	for name, eng := range engines() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			out, err := eng.Materialize(ctx, eng.Shift(eng.FromFrame(testFrame()), 2))
			if err != nil {
				t.Fatalf("Materialize: %v", err)
			}
			v, _ := out.Col("v")
			if !math.IsNaN(v.Floats[0]) || !math.IsNaN(v.Floats[1]) {
				t.Errorf("移位头部应为 NaN: %v", v.Floats)
			}
			if v.Floats[2] != 0 || v.Floats[5] != 3 {
				t.Errorf("移位结果 = %v", v.Floats)
			}
			serial, _ := out.Col(core.ColSerialNumber)
			if !serial.Missing(0) || serial.Strings[2] != "a" {
				t.Errorf("字符串列移位结果异常")
			}
		})
	}
}

func TestEngineHConcatAndTake(t *testing.T) {
	for name, eng := range engines() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			base := eng.FromFrame(testFrame())
			cur := eng.HConcat(eng.Shift(base, 1), base)
			if cur.NumRows() != 6 {
				t.Errorf("惰性行数 = %d, want 6", cur.NumRows())
			}

			taken := eng.Take(cur, []int{1, 3, 5})
			if taken.NumRows() != 3 {
				t.Errorf("Take 后行数 = %d, want 3", taken.NumRows())
			}
			out, err := eng.Materialize(ctx, taken)
			if err != nil {
				t.Fatalf("Materialize: %v", err)
			}
			if out.NumCols() != 4 {
				t.Errorf("列数 = %d, want 4", out.NumCols())
			}
			vBase, _ := out.LastCol("v")
			if !reflect.DeepEqual(vBase.Floats, []float64{1, 3, 5}) {
				t.Errorf("原表副本 = %v, want [1 3 5]", vBase.Floats)
			}
			vShift, _ := out.Col("v")
			if !reflect.DeepEqual(vShift.Floats, []float64{0, 2, 4}) {
				t.Errorf("移位副本 = %v, want [0 2 4]", vShift.Floats)
			}
		})
	}
}

func TestEngineVConcat(t *testing.T) {
	for name, eng := range engines() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			a := eng.FromFrame(core.MustNewFrame(core.NewFloatSeries("v", []float64{1, 2})))
			b := eng.FromFrame(core.MustNewFrame(core.NewFloatSeries("v", []float64{3})))
			cat := eng.VConcat(a, b)
			if cat.NumRows() != 3 {
				t.Errorf("惰性行数 = %d, want 3", cat.NumRows())
			}
			out, err := eng.Materialize(ctx, cat)
			if err != nil {
				t.Fatalf("Materialize: %v", err)
			}
			v, _ := out.Col("v")
			if !reflect.DeepEqual(v.Floats, []float64{1, 2, 3}) {
				t.Errorf("VConcat = %v, want [1 2 3]", v.Floats)
			}
		})
	}
}

func TestEngineGroupApply(t *testing.T) {
	for name, eng := range engines() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			f := testFrame()
			base := eng.FromFrame(f)
			serial, _ := f.Col(core.ColSerialNumber)
			key := eng.FromFrame(f.WithColumns([]*core.Series{serial}))

			var offsets []int
			idx, err := eng.GroupApply(ctx, base, key, func(g *core.Frame, off int) []int {
				offsets = append(offsets, off)
				// 每组保留末行
				return []int{off + g.NumRows() - 1}
			})
			if err != nil {
				t.Fatalf("GroupApply: %v", err)
			}
			if !reflect.DeepEqual(offsets, []int{0, 3}) {
				t.Errorf("分组偏移 = %v, want [0 3]", offsets)
			}
			if !reflect.DeepEqual(idx, []int{2, 5}) {
				t.Errorf("保留行号 = %v, want [2 5]", idx)
			}
		})
	}
}

func TestEngineGroupApplyRowMismatch(t *testing.T) {
	for name, eng := range engines() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			base := eng.FromFrame(testFrame())
			key := eng.FromFrame(core.MustNewFrame(core.NewStringSeries("k", []string{"a"})))
			_, err := eng.GroupApply(ctx, base, key, func(g *core.Frame, off int) []int { return nil })
			if !core.IsShapeMismatch(err) {
				t.Errorf("key 行数不对齐应返回 SHAPE_MISMATCH, got %v", err)
			}
		})
	}
}

// HConcat 行数不一致的错误延迟到物化同步点。
func TestEngineHConcatMismatchDeferred(t *testing.T) {
	for name, eng := range engines() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			a := eng.FromFrame(core.MustNewFrame(core.NewFloatSeries("x", []float64{1, 2})))
			b := eng.FromFrame(core.MustNewFrame(core.NewFloatSeries("y", []float64{1})))
			cat := eng.HConcat(a, b)
			if _, err := eng.Materialize(ctx, cat); err == nil {
				t.Errorf("行数不一致应在物化时报错")
			}
		})
	}
}

// 同一惰性句柄的重复物化结果一致（分块引擎命中节点缓存）。
func TestChunkedEngineMaterializeIdempotent(t *testing.T) {
	eng := &ChunkedEngine{ChunkSize: 2}
	ctx := context.Background()
	cur := eng.HConcat(eng.Shift(eng.FromFrame(testFrame()), 1), eng.FromFrame(testFrame()))

	first, err := eng.Materialize(ctx, cur)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	second, err := eng.Materialize(ctx, cur)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if first != second {
		t.Errorf("重复物化应返回缓存的同一结果")
	}
}

func TestEngineForeignHandle(t *testing.T) {
	mem := NewMemoryEngine()
	chunked := NewChunkedEngine(0)
	ctx := context.Background()

	if _, err := mem.Materialize(ctx, chunked.FromFrame(testFrame())); err == nil {
		t.Errorf("内存引擎物化外来句柄应报错")
	}
	if _, err := chunked.Materialize(ctx, mem.FromFrame(testFrame())); err == nil {
		t.Errorf("分块引擎物化外来句柄应报错")
	}
}
