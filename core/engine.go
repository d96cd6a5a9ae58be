package core

import "context"

// Table 是表引擎的惰性表句柄。行数在 shift/concat/take 链上是可推导的，
// 因此无需物化即可获取。
type Table interface {
	// NumRows 返回行数（惰性可知）
	NumRows() int
}

// GroupFunc 是分组回调：接收单个设备分组（已物化）与该分组在全表中的起始
// 行号，返回保留行的全局行号。
type GroupFunc func(group *Frame, offset int) []int

// TableEngine 是表计算引擎的能力接口。
//
// 设计要点：
//   - shift / hconcat / vconcat / take 之间引用透明，各步返回新的逻辑表，
//     分区之间无共享可变状态，因此允许分块并行求值而无需加锁
//   - 只有两类同步点需要物化：分组操作之前（降采样要求同设备行全局有序）
//     与构建结束
//   - 无取消、无重试：长构建要么完成要么返回致命错误
//
// 内存实现（tableng.MemoryEngine）与分块实现（tableng.ChunkedEngine）
// 满足同一契约，WindowBuilder 只依赖此接口。
type TableEngine interface {
	// FromFrame 将物化表包装为 Table
	FromFrame(f *Frame) Table
	// Shift 全列向下移位 periods 行，头部补缺失值
	Shift(t Table, periods int) Table
	// HConcat 按列拼接（axis=1），各表行数必须一致
	HConcat(parts ...Table) Table
	// VConcat 按行拼接（axis=0），列按（列名，同名序号）对齐，缺列补缺失值
	VConcat(parts ...Table) Table
	// Take 按行号选取行
	Take(t Table, rows []int) Table
	// GroupApply 按 key 列的连续分段分组，对每组调用 fn，合并返回的全局行号。
	// key 必须与 t 行对齐。这是一个同步点：t 与 key 都会被物化。
	GroupApply(ctx context.Context, t Table, key Table, fn GroupFunc) ([]int, error)
	// Materialize 求值并返回物化表。这是一个同步点。
	Materialize(ctx context.Context, t Table) (*Frame, error)
}
