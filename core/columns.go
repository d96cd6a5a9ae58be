package core

// 标识/标签列的列名常量。输入表中这些列与任意数量的数值特征列并存，
// 列名约定与 Backblaze 风格的硬盘遥测数据保持一致。
const (
	ColSerialNumber  = "serial_number"
	ColDate          = "date"
	ColFailure       = "failure"
	ColPredictVal    = "predict_val"
	ColValidateVal   = "validate_val"
	ColModel         = "model"
	ColCapacityBytes = "capacity_bytes"
)

// TemporalColumns 是归一化时需要原样保留的标识/标签列集合。
// 其余列一律视为数值特征列参与缩放。
var TemporalColumns = []string{
	ColSerialNumber,
	ColDate,
	ColFailure,
	ColPredictVal,
	ColValidateVal,
	ColModel,
	ColCapacityBytes,
}

// DuplicateDropColumns 是窗口化后需要按 base_\d+ 后缀模式剔除重复副本的标识列。
var DuplicateDropColumns = []string{
	ColSerialNumber,
	ColDate,
	ColCapacityBytes,
	ColModel,
}

// EssentialColumns 是按行剔除缺失值时依据的关键标识列。
// 三者齐备才执行按行剔除；缺失任何一个时只记录诊断并跳过（见 filter 包）。
var EssentialColumns = []string{
	ColDate,
	ColSerialNumber,
	ColCapacityBytes,
}

// IdentifierColumns 是最终张量中不保留的标识列，在重塑前整列剔除。
var IdentifierColumns = []string{
	ColSerialNumber,
	ColDate,
	ColModel,
	ColCapacityBytes,
}

// IsTemporalColumn 判断列名是否属于标识/标签列。
func IsTemporalColumn(name string) bool {
	for _, c := range TemporalColumns {
		if c == name {
			return true
		}
	}
	return false
}
