package core

import (
	"math"
	"reflect"
	"testing"
)

func TestSeriesShift(t *testing.T) {
	s := NewFloatSeries("v", []float64{1, 2, 3, 4})
	got := s.Shift(2)
	if !math.IsNaN(got.Floats[0]) || !math.IsNaN(got.Floats[1]) {
		t.Errorf("移位头部应为 NaN: %v", got.Floats)
	}
	if got.Floats[2] != 1 || got.Floats[3] != 2 {
		t.Errorf("移位结果 = %v, want [NaN NaN 1 2]", got.Floats)
	}
}

func TestSeriesShiftString(t *testing.T) {
	s := NewStringSeries("serial_number", []string{"a", "b", "c"})
	got := s.Shift(1)
	if !got.Missing(0) {
		t.Errorf("移位头部应缺失")
	}
	if got.Missing(1) || got.Strings[1] != "a" || got.Strings[2] != "b" {
		t.Errorf("移位结果 = %v", got.Strings)
	}
}

func TestSeriesShiftBeyondLength(t *testing.T) {
	s := NewFloatSeries("v", []float64{1, 2})
	got := s.Shift(5)
	for i := range got.Floats {
		if !math.IsNaN(got.Floats[i]) {
			t.Errorf("整列移出后行 %d 应为 NaN", i)
		}
	}
}

func TestSeriesTake(t *testing.T) {
	s := NewFloatSeries("v", []float64{10, 20, 30, 40})
	got := s.Take([]int{3, 1})
	if !reflect.DeepEqual(got.Floats, []float64{40, 20}) {
		t.Errorf("Take = %v, want [40 20]", got.Floats)
	}
}

func TestFrameColAndLastCol(t *testing.T) {
	f := MustNewFrame(
		NewFloatSeries("v", []float64{1}),
		NewFloatSeries("v", []float64{2}),
		NewFloatSeries("v", []float64{3}),
	)
	first, _ := f.Col("v")
	last, _ := f.LastCol("v")
	if first.Floats[0] != 1 {
		t.Errorf("Col 应返回首个同名列, got %v", first.Floats[0])
	}
	if last.Floats[0] != 3 {
		t.Errorf("LastCol 应返回末个同名列, got %v", last.Floats[0])
	}
}

func TestNewFrameLengthMismatch(t *testing.T) {
	_, err := NewFrame(
		NewFloatSeries("a", []float64{1, 2}),
		NewFloatSeries("b", []float64{1}),
	)
	if err == nil {
		t.Fatalf("列长不一致应报错")
	}
}

func TestHConcatFrames(t *testing.T) {
	a := MustNewFrame(NewFloatSeries("x", []float64{1, 2}))
	b := MustNewFrame(NewFloatSeries("x", []float64{3, 4}))
	got, err := HConcatFrames(a, b)
	if err != nil {
		t.Fatalf("HConcatFrames: %v", err)
	}
	if got.NumCols() != 2 || got.NumRows() != 2 {
		t.Fatalf("形状 = (%d,%d), want (2,2)", got.NumRows(), got.NumCols())
	}

	c := MustNewFrame(NewFloatSeries("y", []float64{1}))
	if _, err := HConcatFrames(a, c); !IsShapeMismatch(err) {
		t.Errorf("行数不一致应返回 SHAPE_MISMATCH, got %v", err)
	}
}

// 按行拼接时列按（列名，同名序号）对齐，缺列的一侧补缺失值。
func TestVConcatFramesOrdinalAlignment(t *testing.T) {
	a := MustNewFrame(
		NewFloatSeries("v", []float64{1}),
		NewFloatSeries("v", []float64{2}),
	)
	b := MustNewFrame(
		NewFloatSeries("v", []float64{10}),
		NewFloatSeries("v", []float64{20}),
		NewFloatSeries("v", []float64{30}),
	)
	got, err := VConcatFrames(a, b)
	if err != nil {
		t.Fatalf("VConcatFrames: %v", err)
	}
	if got.NumRows() != 2 || got.NumCols() != 3 {
		t.Fatalf("形状 = (%d,%d), want (2,3)", got.NumRows(), got.NumCols())
	}

	// 第 1、2 份副本按序号对齐
	if got.ColAt(0).Floats[0] != 1 || got.ColAt(0).Floats[1] != 10 {
		t.Errorf("第 1 份副本 = %v", got.ColAt(0).Floats)
	}
	if got.ColAt(1).Floats[0] != 2 || got.ColAt(1).Floats[1] != 20 {
		t.Errorf("第 2 份副本 = %v", got.ColAt(1).Floats)
	}
	// a 缺少第 3 份副本，补 NaN
	if !math.IsNaN(got.ColAt(2).Floats[0]) || got.ColAt(2).Floats[1] != 30 {
		t.Errorf("第 3 份副本 = %v, want [NaN 30]", got.ColAt(2).Floats)
	}
}

func TestVConcatFramesKindMismatch(t *testing.T) {
	a := MustNewFrame(NewFloatSeries("x", []float64{1}))
	b := MustNewFrame(NewStringSeries("x", []string{"s"}))
	if _, err := VConcatFrames(a, b); err == nil {
		t.Fatalf("同名列类型不一致应报错")
	}
}

func TestGroupRuns(t *testing.T) {
	tests := []struct {
		name string
		vals []string
		want [][2]int
	}{
		{"三段", []string{"a", "a", "b", "c", "c", "c"}, [][2]int{{0, 2}, {2, 3}, {3, 6}}},
		{"单段", []string{"a", "a"}, [][2]int{{0, 2}}},
		{"逐行异值", []string{"a", "b", "c"}, [][2]int{{0, 1}, {1, 2}, {2, 3}}},
		{"空列", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GroupRuns(NewStringSeries("k", tt.vals))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GroupRuns = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGroupRunsFloatNaNKey(t *testing.T) {
	// NaN 键视为同组（pandas groupby 不会这样，但引擎的键列是 serial_number，
	// 这里只保证不把 NaN 切成逐行一组）
	key := NewFloatSeries("k", []float64{math.NaN(), math.NaN(), 1})
	got := GroupRuns(key)
	want := [][2]int{{0, 2}, {2, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GroupRuns = %v, want %v", got, want)
	}
}

func TestFrameDropColumnsAllOccurrences(t *testing.T) {
	f := MustNewFrame(
		NewFloatSeries("v", []float64{1}),
		NewFloatSeries("keep", []float64{2}),
		NewFloatSeries("v", []float64{3}),
	)
	got := f.DropColumns("v")
	if !reflect.DeepEqual(got.ColumnNames(), []string{"keep"}) {
		t.Errorf("列名 = %v, want [keep]", got.ColumnNames())
	}
}

func TestFrameSlice(t *testing.T) {
	f := MustNewFrame(
		NewStringSeries("s", []string{"a", "b", "c", "d"}),
		NewFloatSeries("v", []float64{1, 2, 3, 4}),
	)
	got := f.Slice(1, 3)
	if got.NumRows() != 2 {
		t.Fatalf("行数 = %d, want 2", got.NumRows())
	}
	s, _ := got.Col("s")
	if s.Strings[0] != "b" || s.Strings[1] != "c" {
		t.Errorf("Slice = %v, want [b c]", s.Strings)
	}
}
