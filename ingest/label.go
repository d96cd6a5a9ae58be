package ingest

import (
	"github.com/rushteam/smartwin/core"
)

// Label 生成故障临近标签，追加（或替换）predict_val 与 validate_val 两列：
//
//   - validate_val：设备历史中出现过 failure == 1 的，该设备全部行记 1，
//     否则记 0（"这台设备最终会坏"）；
//   - predict_val：分段 RUL 标签 —— 距设备故障行不超过 failureWindow 个
//     时间步的行记 1，其余记 0（"故障临近"）。
//
// 输入需已按 (serial_number, date) 排序（见 SortByDevice）；
// 分组按 serial_number 的连续分段切分。
func Label(f *core.Frame, failureWindow int) (*core.Frame, error) {
	serial, ok := f.Col(core.ColSerialNumber)
	if !ok {
		return nil, core.NewDomainError(core.ModuleIngest, core.ErrorCodeMissingColumn,
			"label: serial_number column required")
	}
	failure, ok := f.Col(core.ColFailure)
	if !ok || failure.Kind != core.SeriesFloat {
		return nil, core.NewDomainError(core.ModuleIngest, core.ErrorCodeMissingColumn,
			"label: numeric failure column required")
	}

	n := f.NumRows()
	predict := make([]float64, n)
	validate := make([]float64, n)

	for _, run := range core.GroupRuns(serial) {
		failRow := -1
		for i := run[0]; i < run[1]; i++ {
			if failure.Floats[i] == 1 {
				failRow = i
				break
			}
		}
		if failRow < 0 {
			continue
		}
		for i := run[0]; i < run[1]; i++ {
			validate[i] = 1
			if d := failRow - i; d >= 0 && d < failureWindow {
				predict[i] = 1
			}
		}
	}

	out := f.DropColumns(core.ColPredictVal, core.ColValidateVal)
	cols := make([]*core.Series, 0, out.NumCols()+2)
	for i := 0; i < out.NumCols(); i++ {
		cols = append(cols, out.ColAt(i))
	}
	cols = append(cols,
		core.NewFloatSeries(core.ColPredictVal, predict),
		core.NewFloatSeries(core.ColValidateVal, validate),
	)
	return out.WithColumns(cols), nil
}
