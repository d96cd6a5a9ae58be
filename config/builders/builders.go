// Package builders 注册内置 Stage 的构建器。
// 通过空白导入触发注册：
//
//	import _ "github.com/rushteam/smartwin/config/builders"
package builders

import (
	"strings"

	"github.com/rushteam/smartwin/config"
	"github.com/rushteam/smartwin/filter"
	"github.com/rushteam/smartwin/normalize"
	"github.com/rushteam/smartwin/pipeline"
	"github.com/rushteam/smartwin/pkg/conv"
	"github.com/rushteam/smartwin/window"
)

func init() {
	config.Register("normalize.minmax", func(cfg map[string]any) (pipeline.Stage, error) {
		return &normalize.MinMax{}, nil
	})

	config.Register("window.builder", func(cfg map[string]any) (pipeline.Stage, error) {
		return &window.Builder{}, nil
	})

	config.Register("window.reconcile", func(cfg map[string]any) (pipeline.Stage, error) {
		return &window.Reconciler{}, nil
	})

	config.Register("filter.validity", func(cfg map[string]any) (pipeline.Stage, error) {
		return &filter.Validity{}, nil
	})

	config.Register("filter.expr", func(cfg map[string]any) (pipeline.Stage, error) {
		// 单条 expr 与列表 exprs 均可配置，列表按 && 合取
		exprs := conv.SliceAnyToString(cfg["exprs"])
		if e := conv.ConfigGet(cfg, "expr", ""); e != "" {
			exprs = append([]string{e}, exprs...)
		}
		return &filter.Expr{Expr: strings.Join(exprs, " && ")}, nil
	})
}
