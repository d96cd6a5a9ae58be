// Package ingest 提供导入边界：CSV 读取、设备内时间排序、故障临近标签生成
// 与基于表达式的行筛选。引擎假定输入已按 (serial_number, date) 排序，
// 排序是这里（上游协作方）的职责。
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/rushteam/smartwin/core"
)

// stringColumns 是按字符串读入的列；其余列一律解析为 float64。
var stringColumns = map[string]bool{
	core.ColSerialNumber: true,
	core.ColDate:         true,
	core.ColModel:        true,
}

// ReadCSV 读取 Backblaze 风格的逐日 SMART 遥测 CSV：
// 首行为列名；serial_number / date / model 按字符串读入，其余列解析为
// float64，空值记为缺失（NaN）。数值列出现无法解析的内容是致命的类型错误。
func ReadCSV(r io.Reader) (*core.Frame, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	floats := make([][]float64, len(header))
	strs := make([][]string, len(header))
	valid := make([][]bool, len(header))

	row := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}
		for i, cell := range rec {
			if stringColumns[header[i]] {
				strs[i] = append(strs[i], cell)
				valid[i] = append(valid[i], cell != "")
				continue
			}
			if cell == "" {
				floats[i] = append(floats[i], math.NaN())
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, core.NewDomainError(core.ModuleIngest, core.ErrorCodeNonNumeric,
					fmt.Sprintf("row %d column %q: not numeric: %q", row, header[i], cell))
			}
			floats[i] = append(floats[i], v)
		}
		row++
	}

	cols := make([]*core.Series, len(header))
	for i, name := range header {
		if stringColumns[name] {
			cols[i] = &core.Series{Name: name, Kind: core.SeriesString, Strings: strs[i], Valid: valid[i]}
		} else {
			cols[i] = core.NewFloatSeries(name, floats[i])
		}
	}
	return core.NewFrame(cols...)
}

// SortByDevice 把行稳定排序为 (serial_number, date) 的字典序，
// 满足窗口化引擎对输入顺序的假定。
func SortByDevice(f *core.Frame) (*core.Frame, error) {
	serial, ok := f.Col(core.ColSerialNumber)
	if !ok || serial.Kind != core.SeriesString {
		return nil, core.NewDomainError(core.ModuleIngest, core.ErrorCodeMissingColumn,
			"sort: serial_number column required")
	}
	date, ok := f.Col(core.ColDate)
	if !ok || date.Kind != core.SeriesString {
		return nil, core.NewDomainError(core.ModuleIngest, core.ErrorCodeMissingColumn,
			"sort: date column required")
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
	return f.Take(rows), nil
}
