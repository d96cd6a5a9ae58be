// Package filter 提供窗口化结果的有效性过滤阶段。
package filter

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/rushteam/smartwin/core"
	"github.com/rushteam/smartwin/pipeline"
)

// 重复标识列的匹配模式：base 名 + 下划线 + 数字后缀，依赖 Reconciler 的后缀规则。
var duplicateIDPattern = regexp.MustCompile(
	`^(` + strings.Join(core.DuplicateDropColumns, "|") + `)_\d+$`)

// Validity 是有效性过滤 Stage，窗口化启用时按序执行：
//
//  1. 剔除合成的重复标识列（serial_number_2、date_3 这类带数字后缀的副本），
//     只保留无后缀的原始列；
//  2. 若 date / serial_number / capacity_bytes 三列齐备，剔除其中任一缺失的行；
//     否则只在 Report 中记录缺失列名并跳过按行剔除。注意：该路径是一个
//     已知的正确性缺口（窗口可能静默保留标识不完整的行），按观测行为保留，
//     待复核，不做静默加固；
//  3. 剔除仍含缺失值的任意列 —— 这是粗粒度策略：特征列中一个缺失值就会
//     使该列从全部样本中消失；
//  4. 行按 (serial_number, date) 重排为规范顺序。
//
// 无论窗口化与否，最后整列剔除标识列（serial_number / date / model /
// capacity_bytes）：它们不属于数值张量。
type Validity struct{}

func (s *Validity) Name() string        { return "filter.validity" }
func (s *Validity) Kind() pipeline.Kind { return pipeline.KindFilter }

func (s *Validity) Process(
	ctx context.Context,
	bctx *core.BuildContext,
	f *core.Frame,
) (*core.Frame, error) {
	if bctx.Config.Windowing {
		f = dropDuplicateIDColumns(f)
		f = dropRowsMissingEssentials(f, bctx.Report)
		f = dropColumnsWithMissing(f, bctx.Report)
		f = sortByDeviceDate(f)
	}
	return f.DropColumns(core.IdentifierColumns...), nil
}

func dropDuplicateIDColumns(f *core.Frame) *core.Frame {
	cols := make([]*core.Series, 0, f.NumCols())
	for i := 0; i < f.NumCols(); i++ {
		c := f.ColAt(i)
		if duplicateIDPattern.MatchString(c.Name) {
			continue
		}
		cols = append(cols, c)
	}
	return f.WithColumns(cols)
}

func dropRowsMissingEssentials(f *core.Frame, report *core.Report) *core.Frame {
	essentials := make([]*core.Series, 0, len(core.EssentialColumns))
	missing := make([]string, 0)
	for _, name := range core.EssentialColumns {
		c, ok := f.Col(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		essentials = append(essentials, c)
	}
	if len(missing) > 0 {
		report.MissingEssential = missing
		report.Notef("columns %v do not exist, skipping row drop", missing)
		return f
	}

	keep := make([]int, 0, f.NumRows())
	for i := 0; i < f.NumRows(); i++ {
		ok := true
		for _, c := range essentials {
			if c.Missing(i) {
				ok = false
				break
			}
		}
		if ok {
			keep = append(keep, i)
		}
	}
	dropped := f.NumRows() - len(keep)
	report.RowsDropped += dropped
	if dropped == 0 {
		return f
	}
	report.Notef("dropped %d rows with missing essential identifiers", dropped)
	return f.Take(keep)
}

func dropColumnsWithMissing(f *core.Frame, report *core.Report) *core.Frame {
	cols := make([]*core.Series, 0, f.NumCols())
	for i := 0; i < f.NumCols(); i++ {
		c := f.ColAt(i)
		if c.HasMissing() {
			report.ColumnsDropped = append(report.ColumnsDropped, c.Name)
			continue
		}
		cols = append(cols, c)
	}
	return f.WithColumns(cols)
}

// sortByDeviceDate 把样本行重排为 (serial_number, date) 的字典序。
// 两列缺失其一时保持原序。
func sortByDeviceDate(f *core.Frame) *core.Frame {
	serial, okS := f.Col(core.ColSerialNumber)
	date, okD := f.Col(core.ColDate)
	if !okS || !okD || serial.Kind != core.SeriesString || date.Kind != core.SeriesString {
		return f
	}
	rows := make([]int, f.NumRows())
	for i := range rows {
		rows[i] = i
	}
	sort.SliceStable(rows, func(a, b int) bool {
		ra, rb := rows[a], rows[b]
		if serial.Strings[ra] != serial.Strings[rb] {
			return serial.Strings[ra] < serial.Strings[rb]
		}
		return date.Strings[ra] < date.Strings[rb]
	})
	return f.Take(rows)
}

// DuplicateIDColumnName 判断列名是否是会被步骤 1 剔除的重复标识列，
// 供测试与调用方自查 schema 用。
func DuplicateIDColumnName(name string) bool {
	return duplicateIDPattern.MatchString(name)
}
