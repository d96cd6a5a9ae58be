package ingest

import (
	"reflect"
	"testing"

	"github.com/rushteam/smartwin/core"
)

func TestLabel(t *testing.T) {
	// dev-a 在第 4 行（设备内行号 3）故障，dev-b 健康
	f := core.MustNewFrame(
		core.NewStringSeries(core.ColSerialNumber, []string{"a", "a", "a", "a", "a", "b", "b"}),
		core.NewFloatSeries(core.ColFailure, []float64{0, 0, 0, 1, 0, 0, 0}),
	)
	got, err := Label(f, 2)
	if err != nil {
		t.Fatalf("Label: %v", err)
	}

	predict, _ := got.Col(core.ColPredictVal)
	validate, _ := got.Col(core.ColValidateVal)

	// 距故障行 0、1 个时间步的行记 1；故障后的行不记
	wantPredict := []float64{0, 0, 1, 1, 0, 0, 0}
	if !reflect.DeepEqual(predict.Floats, wantPredict) {
		t.Errorf("predict_val = %v, want %v", predict.Floats, wantPredict)
	}
	// 最终故障设备全部行记 1
	wantValidate := []float64{1, 1, 1, 1, 1, 0, 0}
	if !reflect.DeepEqual(validate.Floats, wantValidate) {
		t.Errorf("validate_val = %v, want %v", validate.Floats, wantValidate)
	}
}

func TestLabelReplacesExisting(t *testing.T) {
	f := core.MustNewFrame(
		core.NewStringSeries(core.ColSerialNumber, []string{"a"}),
		core.NewFloatSeries(core.ColFailure, []float64{1}),
		core.NewFloatSeries(core.ColPredictVal, []float64{9}),
		core.NewFloatSeries(core.ColValidateVal, []float64{9}),
	)
	got, err := Label(f, 7)
	if err != nil {
		t.Fatalf("Label: %v", err)
	}
	// 旧标签列被替换而非追加
	count := 0
	for _, name := range got.ColumnNames() {
		if name == core.ColPredictVal {
			count++
		}
	}
	if count != 1 {
		t.Errorf("predict_val 列数 = %d, want 1", count)
	}
	predict, _ := got.Col(core.ColPredictVal)
	if predict.Floats[0] != 1 {
		t.Errorf("predict_val = %v, want 1", predict.Floats[0])
	}
}

func TestLabelMissingColumns(t *testing.T) {
	f := core.MustNewFrame(core.NewFloatSeries("v", []float64{1}))
	if _, err := Label(f, 7); !core.IsMissingColumn(err) {
		t.Fatalf("err = %v, want MISSING_COLUMN", err)
	}
	f = core.MustNewFrame(core.NewStringSeries(core.ColSerialNumber, []string{"a"}))
	if _, err := Label(f, 7); !core.IsMissingColumn(err) {
		t.Fatalf("err = %v, want MISSING_COLUMN", err)
	}
}
