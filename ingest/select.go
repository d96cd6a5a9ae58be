package ingest

import (
	"fmt"
	"math"

	"github.com/rushteam/smartwin/core"
	"github.com/rushteam/smartwin/pkg/dsl"
)

// Select 按 CEL 表达式筛选行，返回匹配行组成的新表（保持原序）。
// 常见用法是在导入边界按型号圈定设备：
//
//	kept, err := ingest.Select(f, `record.model.startsWith("ST")`)
//
// 表达式编译失败或求值失败都是致命的配置错误，需要修正后重跑。
func Select(f *core.Frame, expr string) (*core.Frame, error) {
	if expr == "" {
		return f, nil
	}
	eval, err := dsl.NewEval(expr)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleIngest, core.ErrorCodeInvalidInput,
			fmt.Sprintf("select expression: %v", err))
	}

	keep := make([]int, 0, f.NumRows())
	record := make(map[string]any, f.NumCols())
	for i := 0; i < f.NumRows(); i++ {
		for c := 0; c < f.NumCols(); c++ {
			col := f.ColAt(c)
			if col.Kind == core.SeriesString {
				if col.Missing(i) {
					record[col.Name] = nil
				} else {
					record[col.Name] = col.Strings[i]
				}
			} else {
				if math.IsNaN(col.Floats[i]) {
					record[col.Name] = nil
				} else {
					record[col.Name] = col.Floats[i]
				}
			}
		}
		ok, err := eval.Match(record)
		if err != nil {
			return nil, core.NewDomainError(core.ModuleIngest, core.ErrorCodeInvalidInput,
				fmt.Sprintf("select row %d: %v", i, err))
		}
		if ok {
			keep = append(keep, i)
		}
	}
	return f.Take(keep), nil
}
