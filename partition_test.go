package smartwin

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rushteam/smartwin/core"
	"github.com/rushteam/smartwin/store"
	"github.com/rushteam/smartwin/tableng"
)

// telemetryFrame 构造按 (serial_number, date) 排好序的遥测表：
// devices 个设备、每设备 rows 天，2 个特征列 + 标识/标签列。
func telemetryFrame(devices, rows int) *core.Frame {
	var serials, dates, models []string
	var capacity, failure, predict, validate, s5, s187 []float64
	for d := 0; d < devices; d++ {
		for r := 0; r < rows; r++ {
			serials = append(serials, fmt.Sprintf("Z%04d", d))
			dates = append(dates, fmt.Sprintf("2024-01-%02d", r+1))
			models = append(models, "ST4000DM000")
			capacity = append(capacity, 4e12)
			failure = append(failure, 0)
			predict = append(predict, 0)
			validate = append(validate, 0)
			s5 = append(s5, float64(r))
			s187 = append(s187, float64(100-r))
		}
	}
	return core.MustNewFrame(
		core.NewStringSeries(core.ColSerialNumber, serials),
		core.NewStringSeries(core.ColDate, dates),
		core.NewStringSeries(core.ColModel, models),
		core.NewFloatSeries(core.ColCapacityBytes, capacity),
		core.NewFloatSeries(core.ColFailure, failure),
		core.NewFloatSeries("smart_5_raw", s5),
		core.NewFloatSeries("smart_187_raw", s187),
		core.NewFloatSeries(core.ColPredictVal, predict),
		core.NewFloatSeries(core.ColValidateVal, validate),
	)
}

// 数值张量保留的特征：failure / smart_5_raw / smart_187_raw /
// predict_val / validate_val，标识列被过滤阶段剔除。
const numericFeatures = 5

func TestPartitionDynamic(t *testing.T) {
	f := telemetryFrame(3, 10)
	cfg := core.BuildConfig{
		Model:     "ST4000DM000",
		WindowDim: 4,
		Overlap:   core.OverlapDynamic,
		Windowing: true,
		TailGuard: -1,
	}
	tensor, err := Partition(context.Background(), f, cfg)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	samples, features, depth := tensor.Shape()
	if samples != 6 || features != numericFeatures || depth != 3 {
		t.Fatalf("形状 = (%d,%d,%d), want (6,%d,3)", samples, features, depth, numericFeatures)
	}
}

// 设备历史短于尾部保护窗口时，动态降采样逐轮收敛到空集，
// 端到端产出空张量而非报错。
func TestPartitionDynamicShortHistories(t *testing.T) {
	f := telemetryFrame(3, 8)
	cfg := core.BuildConfig{
		Model:     "ST4000DM000",
		WindowDim: 4,
		Overlap:   core.OverlapDynamic,
		Windowing: true,
	}
	tensor, err := Partition(context.Background(), f, cfg)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	samples, features, depth := tensor.Shape()
	if samples != 0 || features != numericFeatures || depth != 3 {
		t.Fatalf("形状 = (%d,%d,%d), want (0,%d,3)", samples, features, depth, numericFeatures)
	}
}

// 混合策略端到端：动态 6 行 + 故障设备完全重叠 10 行。
// 动态侧第 4 份副本为缺失值，被含缺失列剔除，深度与动态策略一致。
func TestPartitionHybrid(t *testing.T) {
	f := telemetryFrame(3, 10)
	validate, _ := f.Col(core.ColValidateVal)
	for i := 20; i < 30; i++ {
		validate.Floats[i] = 1
	}
	cfg := core.BuildConfig{
		Model:     "ST4000DM000",
		WindowDim: 4,
		Overlap:   core.OverlapHybrid,
		Windowing: true,
		TailGuard: -1,
	}
	tensor, err := Partition(context.Background(), f, cfg)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	samples, features, depth := tensor.Shape()
	if samples != 16 || features != numericFeatures || depth != 3 {
		t.Fatalf("形状 = (%d,%d,%d), want (16,%d,3)", samples, features, depth, numericFeatures)
	}
}

func TestPartitionFull(t *testing.T) {
	f := telemetryFrame(3, 10)
	cfg := core.BuildConfig{
		Model:     "ST4000DM000",
		WindowDim: 2,
		Overlap:   core.OverlapFull,
		Windowing: true,
	}
	tensor, err := Partition(context.Background(), f, cfg)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	samples, features, depth := tensor.Shape()
	// 全局移位使首行携带未定义的滞后值，被关键标识列剔除
	if samples != 29 || features != numericFeatures || depth != 2 {
		t.Fatalf("形状 = (%d,%d,%d), want (29,%d,2)", samples, features, depth, numericFeatures)
	}
}

func TestPartitionWindowingDisabled(t *testing.T) {
	f := telemetryFrame(2, 5)
	cfg := core.BuildConfig{
		Model:     "ST4000DM000",
		WindowDim: 4,
		Overlap:   core.OverlapDynamic,
		Windowing: false,
	}
	tensor, err := Partition(context.Background(), f, cfg)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	samples, features, depth := tensor.Shape()
	if samples != 10 || features != numericFeatures || depth != 1 {
		t.Fatalf("形状 = (%d,%d,%d), want (10,%d,1)", samples, features, depth, numericFeatures)
	}
}

func TestPartitionInvalidConfig(t *testing.T) {
	f := telemetryFrame(1, 5)
	if _, err := Partition(context.Background(), f, core.BuildConfig{WindowDim: 0, Overlap: core.OverlapFull}); err == nil {
		t.Errorf("window_dim 为零应报错")
	}
	if _, err := Partition(context.Background(), f, core.BuildConfig{WindowDim: 4, Overlap: "partial"}); err == nil {
		t.Errorf("未知策略应报错")
	}
}

// 两种引擎端到端产出一致的张量。
func TestPartitionEngineEquivalence(t *testing.T) {
	f := telemetryFrame(3, 12)
	cfg := core.BuildConfig{
		Model:     "ST4000DM000",
		WindowDim: 6,
		Overlap:   core.OverlapDynamic,
		Windowing: true,
		TailGuard: -1,
	}
	mem, err := Partition(context.Background(), f, cfg, WithEngine(tableng.NewMemoryEngine()))
	if err != nil {
		t.Fatalf("memory: %v", err)
	}
	chunked, err := Partition(context.Background(), f, cfg, WithEngine(&tableng.ChunkedEngine{ChunkSize: 4}))
	if err != nil {
		t.Fatalf("chunked: %v", err)
	}
	if !mem.Equal(chunked) {
		t.Errorf("两种引擎的张量不一致")
	}
}

func TestPartitionCache(t *testing.T) {
	cache := store.NewMemoryTensorStore()
	defer cache.Close()

	f := telemetryFrame(3, 10)
	cfg := core.BuildConfig{
		Model:     "ST4000DM000",
		WindowDim: 4,
		Ranking:   "enet",
		Overlap:   core.OverlapDynamic,
		Windowing: true,
		TailGuard: -1,
	}

	first, err := Partition(context.Background(), f, cfg, WithCache(cache))
	if err != nil {
		t.Fatalf("第一次构建: %v", err)
	}

	var report core.Report
	second, err := Partition(context.Background(), f, cfg, WithCache(cache), WithReport(&report))
	if err != nil {
		t.Fatalf("第二次构建: %v", err)
	}
	if !first.Equal(second) {
		t.Errorf("缓存命中的张量与首次构建不一致")
	}

	hit := false
	for _, note := range report.Notes {
		if strings.Contains(note, "cache hit") {
			hit = true
		}
	}
	if !hit {
		t.Errorf("第二次构建应命中缓存, notes = %v", report.Notes)
	}
}

func TestPartitionReportMissingEssential(t *testing.T) {
	// 缺少 capacity_bytes 列：按行剔除被跳过，只记录诊断
	f := core.MustNewFrame(
		core.NewStringSeries(core.ColSerialNumber, []string{"a", "a", "a", "a"}),
		core.NewStringSeries(core.ColDate, []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04"}),
		core.NewFloatSeries("smart_5_raw", []float64{0, 1, 2, 3}),
		core.NewFloatSeries(core.ColPredictVal, []float64{0, 0, 0, 0}),
		core.NewFloatSeries(core.ColValidateVal, []float64{0, 0, 0, 0}),
	)
	cfg := core.BuildConfig{
		WindowDim: 2,
		Overlap:   core.OverlapDynamic,
		Windowing: true,
		TailGuard: -1,
	}
	var report core.Report
	if _, err := Partition(context.Background(), f, cfg, WithReport(&report)); err != nil {
		t.Fatalf("Partition: %v", err)
	}
	if len(report.MissingEssential) != 1 || report.MissingEssential[0] != core.ColCapacityBytes {
		t.Errorf("MissingEssential = %v, want [capacity_bytes]", report.MissingEssential)
	}
	if report.RowsDropped != 0 {
		t.Errorf("RowsDropped = %d, want 0", report.RowsDropped)
	}
}
