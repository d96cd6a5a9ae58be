package feast

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rushteam/smartwin/core"
	"github.com/rushteam/smartwin/pkg/conv"
)

// FrameLoader 把 Feast 在线特征拉取结果组装为窗口化引擎的输入表。
// 每次 Load 对应一个采样日：按序列号批量取特征，产出一行一个设备的 Frame；
// 逐日调用后用 core.VConcatFrames 纵向拼接，再经 ingest.SortByDevice 排序，
// 即可得到引擎要求的 (serial_number, date) 有序表。
type FrameLoader struct {
	Client Client
	// Features 拉取的特征引用（"view:feature" 形式），列名取冒号后的部分
	Features []string
}

// Load 拉取 serials 在采样日 date 的特征，返回含
// serial_number / date 两列与全部特征列的 Frame。
// 特征库未命中的取值记为缺失（NaN）。
func (l *FrameLoader) Load(ctx context.Context, serials []string, date string) (*core.Frame, error) {
	if len(serials) == 0 {
		return &core.Frame{}, nil
	}
	entityRows := make([]map[string]any, len(serials))
	for i, s := range serials {
		entityRows[i] = map[string]any{core.ColSerialNumber: s}
	}

	resp, err := l.Client.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features:   l.Features,
		EntityRows: entityRows,
	})
	if err != nil {
		return nil, fmt.Errorf("load frame: %w", err)
	}

	n := len(serials)
	dates := make([]string, n)
	for i := range dates {
		dates[i] = date
	}
	cols := []*core.Series{
		core.NewStringSeries(core.ColSerialNumber, serials),
		core.NewStringSeries(core.ColDate, dates),
	}

	for _, ref := range l.Features {
		name := featureColumnName(ref)
		vals := make([]float64, n)
		for i := range vals {
			vals[i] = math.NaN()
		}
		for i, fv := range resp.FeatureVectors {
			if v, ok := fv.Values[ref]; ok {
				if f, ok := conv.ToFloat64(v); ok {
					vals[i] = f
				}
			} else if v, ok := fv.Values[name]; ok {
				if f, ok := conv.ToFloat64(v); ok {
					vals[i] = f
				}
			}
		}
		cols = append(cols, core.NewFloatSeries(name, vals))
	}
	return core.NewFrame(cols...)
}

// featureColumnName 取 "view:feature" 引用的列名部分。
func featureColumnName(ref string) string {
	if i := strings.LastIndex(ref, ":"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}
