package core

import (
	"fmt"
	"math"
)

// SeriesKind 标记列的数据类型。
type SeriesKind int

const (
	// SeriesFloat 数值列：缺失值用 NaN 表示
	SeriesFloat SeriesKind = iota
	// SeriesString 字符串列（serial_number / date / model）：缺失值用 Valid 掩码表示
	SeriesString
)

// Series 是一列数据。Frame 中的列允许重名（移位-拼接天然产生重名副本），
// 重名消解由 window 包的 Reconciler 统一处理。
type Series struct {
	Name    string
	Kind    SeriesKind
	Floats  []float64 // Kind == SeriesFloat 时有效
	Strings []string  // Kind == SeriesString 时有效
	Valid   []bool    // Kind == SeriesString 时的缺失掩码；nil 表示全部有效
}

// NewFloatSeries 创建数值列。
func NewFloatSeries(name string, values []float64) *Series {
	return &Series{Name: name, Kind: SeriesFloat, Floats: values}
}

// NewStringSeries 创建字符串列，全部值视为有效。
func NewStringSeries(name string, values []string) *Series {
	return &Series{Name: name, Kind: SeriesString, Strings: values}
}

// Len 返回行数。
func (s *Series) Len() int {
	if s.Kind == SeriesFloat {
		return len(s.Floats)
	}
	return len(s.Strings)
}

// Missing 判断第 i 行是否缺失。
func (s *Series) Missing(i int) bool {
	if s.Kind == SeriesFloat {
		return math.IsNaN(s.Floats[i])
	}
	return s.Valid != nil && !s.Valid[i]
}

// HasMissing 判断列中是否存在缺失值。
func (s *Series) HasMissing() bool {
	for i := 0; i < s.Len(); i++ {
		if s.Missing(i) {
			return true
		}
	}
	return false
}

// Shift 返回向下移位 periods 行的新列，头部补缺失值。periods <= 0 时返回拷贝。
func (s *Series) Shift(periods int) *Series {
	n := s.Len()
	if periods <= 0 {
		return s.Clone()
	}
	if periods > n {
		periods = n
	}
	out := &Series{Name: s.Name, Kind: s.Kind}
	if s.Kind == SeriesFloat {
		out.Floats = make([]float64, n)
		for i := 0; i < periods; i++ {
			out.Floats[i] = math.NaN()
		}
		copy(out.Floats[periods:], s.Floats[:n-periods])
		return out
	}
	out.Strings = make([]string, n)
	out.Valid = make([]bool, n)
	for i := periods; i < n; i++ {
		out.Strings[i] = s.Strings[i-periods]
		out.Valid[i] = s.Valid == nil || s.Valid[i-periods]
	}
	return out
}

// Take 返回按 rows 选取行的新列。
func (s *Series) Take(rows []int) *Series {
	out := &Series{Name: s.Name, Kind: s.Kind}
	if s.Kind == SeriesFloat {
		out.Floats = make([]float64, len(rows))
		for i, r := range rows {
			out.Floats[i] = s.Floats[r]
		}
		return out
	}
	out.Strings = make([]string, len(rows))
	out.Valid = make([]bool, len(rows))
	for i, r := range rows {
		out.Strings[i] = s.Strings[r]
		out.Valid[i] = s.Valid == nil || s.Valid[r]
	}
	return out
}

// Clone 返回列的深拷贝。
func (s *Series) Clone() *Series {
	out := &Series{Name: s.Name, Kind: s.Kind}
	if s.Floats != nil {
		out.Floats = append([]float64(nil), s.Floats...)
	}
	if s.Strings != nil {
		out.Strings = append([]string(nil), s.Strings...)
	}
	if s.Valid != nil {
		out.Valid = append([]bool(nil), s.Valid...)
	}
	return out
}

// missingSeries 创建一个 n 行全缺失的列，类型与 kind 一致。
func missingSeries(name string, kind SeriesKind, n int) *Series {
	if kind == SeriesFloat {
		vals := make([]float64, n)
		for i := range vals {
			vals[i] = math.NaN()
		}
		return &Series{Name: name, Kind: SeriesFloat, Floats: vals}
	}
	return &Series{Name: name, Kind: SeriesString, Strings: make([]string, n), Valid: make([]bool, n)}
}

// Frame 是列式表：一组等长的 Series，不携带独立的行索引。
// 窗口化过程中列名允许重复；最终 schema 由 Reconciler 规整。
type Frame struct {
	cols []*Series
}

// NewFrame 由若干列创建 Frame，各列长度必须一致。
func NewFrame(cols ...*Series) (*Frame, error) {
	if len(cols) > 0 {
		n := cols[0].Len()
		for _, c := range cols[1:] {
			if c.Len() != n {
				return nil, NewDomainError(ModuleFrame, ErrorCodeInvalidInput,
					fmt.Sprintf("column %q length %d != %d", c.Name, c.Len(), n))
			}
		}
	}
	return &Frame{cols: cols}, nil
}

// MustNewFrame 等价于 NewFrame，长度不一致时 panic，仅用于测试与示例。
func MustNewFrame(cols ...*Series) *Frame {
	f, err := NewFrame(cols...)
	if err != nil {
		panic(err)
	}
	return f
}

// NumRows 返回行数。
func (f *Frame) NumRows() int {
	if len(f.cols) == 0 {
		return 0
	}
	return f.cols[0].Len()
}

// NumCols 返回列数。
func (f *Frame) NumCols() int { return len(f.cols) }

// ColAt 返回第 i 列。
func (f *Frame) ColAt(i int) *Series { return f.cols[i] }

// ColumnNames 返回当前列名序列（可能含重名）。
func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.Name
	}
	return names
}

// Col 返回名为 name 的第一个列。
func (f *Frame) Col(name string) (*Series, bool) {
	for _, c := range f.cols {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// LastCol 返回名为 name 的最后一个列。
// 移位副本按约定被前置拼接，因此最后一个同名列始终是未移位的原始副本。
func (f *Frame) LastCol(name string) (*Series, bool) {
	for i := len(f.cols) - 1; i >= 0; i-- {
		if f.cols[i].Name == name {
			return f.cols[i], true
		}
	}
	return nil, false
}

// Shift 对全部列做相同移位，返回新 Frame。
func (f *Frame) Shift(periods int) *Frame {
	cols := make([]*Series, len(f.cols))
	for i, c := range f.cols {
		cols[i] = c.Shift(periods)
	}
	return &Frame{cols: cols}
}

// Take 按行号选取行，返回新 Frame。
func (f *Frame) Take(rows []int) *Frame {
	cols := make([]*Series, len(f.cols))
	for i, c := range f.cols {
		cols[i] = c.Take(rows)
	}
	return &Frame{cols: cols}
}

// Slice 选取 [from, to) 的行区间，返回新 Frame（共享底层数组）。
func (f *Frame) Slice(from, to int) *Frame {
	cols := make([]*Series, len(f.cols))
	for i, c := range f.cols {
		nc := &Series{Name: c.Name, Kind: c.Kind}
		if c.Kind == SeriesFloat {
			nc.Floats = c.Floats[from:to]
		} else {
			nc.Strings = c.Strings[from:to]
			if c.Valid != nil {
				nc.Valid = c.Valid[from:to]
			}
		}
		cols[i] = nc
	}
	return &Frame{cols: cols}
}

// DropColumns 按名剔除全部同名列，返回新 Frame。
func (f *Frame) DropColumns(names ...string) *Frame {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	cols := make([]*Series, 0, len(f.cols))
	for _, c := range f.cols {
		if !drop[c.Name] {
			cols = append(cols, c)
		}
	}
	return &Frame{cols: cols}
}

// WithColumns 返回按给定列集合组装的新 Frame（列长度不做二次校验）。
func (f *Frame) WithColumns(cols []*Series) *Frame {
	return &Frame{cols: cols}
}

// Clone 返回 Frame 的深拷贝。
func (f *Frame) Clone() *Frame {
	cols := make([]*Series, len(f.cols))
	for i, c := range f.cols {
		cols[i] = c.Clone()
	}
	return &Frame{cols: cols}
}

// HConcatFrames 按列拼接若干 Frame（axis=1），各 Frame 行数必须一致。
// 列名重复是预期行为，后续由 Reconciler 规整。
func HConcatFrames(parts ...*Frame) (*Frame, error) {
	if len(parts) == 0 {
		return &Frame{}, nil
	}
	n := parts[0].NumRows()
	cols := make([]*Series, 0)
	for _, p := range parts {
		if p.NumRows() != n {
			return nil, NewDomainError(ModuleFrame, ErrorCodeShapeMismatch,
				fmt.Sprintf("hconcat: row count %d != %d", p.NumRows(), n))
		}
		cols = append(cols, p.cols...)
	}
	return &Frame{cols: cols}, nil
}

// VConcatFrames 按行拼接若干 Frame（axis=0）。
// 列按（列名，同名序号）对齐：某个 Frame 缺少对应列时该段行补缺失值。
// 这与 pandas 在 Hybrid 策略里 append 两个窗口化子表的观测行为一致：
// 未共享的移位副本列在对方行上留下缺失值，交由 ValidityFilter 剔除。
func VConcatFrames(parts ...*Frame) (*Frame, error) {
	if len(parts) == 0 {
		return &Frame{}, nil
	}
	type key struct {
		name string
		ord  int
	}
	// 统一 schema：按出现顺序收集 (name, ordinal) 键
	order := make([]key, 0)
	kinds := make(map[key]SeriesKind)
	for _, p := range parts {
		seen := make(map[string]int)
		for _, c := range p.cols {
			seen[c.Name]++
			k := key{c.Name, seen[c.Name]}
			if _, ok := kinds[k]; !ok {
				order = append(order, k)
				kinds[k] = c.Kind
			}
		}
	}
	total := 0
	for _, p := range parts {
		total += p.NumRows()
	}
	out := make([]*Series, 0, len(order))
	for _, k := range order {
		segs := make([]*Series, 0, len(parts))
		for _, p := range parts {
			seen := 0
			var found *Series
			for _, c := range p.cols {
				if c.Name == k.name {
					seen++
					if seen == k.ord {
						found = c
						break
					}
				}
			}
			if found == nil {
				found = missingSeries(k.name, kinds[k], p.NumRows())
			} else if found.Kind != kinds[k] {
				return nil, NewDomainError(ModuleFrame, ErrorCodeNonNumeric,
					fmt.Sprintf("vconcat: column %q kind mismatch", k.name))
			}
			segs = append(segs, found)
		}
		out = append(out, appendSeries(k.name, kinds[k], total, segs))
	}
	return &Frame{cols: out}, nil
}

func appendSeries(name string, kind SeriesKind, total int, segs []*Series) *Series {
	if kind == SeriesFloat {
		vals := make([]float64, 0, total)
		for _, s := range segs {
			vals = append(vals, s.Floats...)
		}
		return &Series{Name: name, Kind: SeriesFloat, Floats: vals}
	}
	strs := make([]string, 0, total)
	valid := make([]bool, 0, total)
	for _, s := range segs {
		strs = append(strs, s.Strings...)
		for i := range s.Strings {
			valid = append(valid, s.Valid == nil || s.Valid[i])
		}
	}
	return &Series{Name: name, Kind: SeriesString, Strings: strs, Valid: valid}
}

// GroupRuns 返回 key 列中连续相同取值的分段 [start, end)。
// 引擎假定输入已按 (serial_number, date) 排序，因此同一设备的行必然连续；
// 排序本身是上游导入协作方的职责，这里不做强制。
func GroupRuns(key *Series) [][2]int {
	n := key.Len()
	if n == 0 {
		return nil
	}
	runs := make([][2]int, 0)
	start := 0
	for i := 1; i <= n; i++ {
		if i == n || !sameKey(key, i-1, i) {
			runs = append(runs, [2]int{start, i})
			start = i
		}
	}
	return runs
}

func sameKey(s *Series, a, b int) bool {
	if s.Kind == SeriesString {
		return s.Strings[a] == s.Strings[b]
	}
	return s.Floats[a] == s.Floats[b] || (math.IsNaN(s.Floats[a]) && math.IsNaN(s.Floats[b]))
}
