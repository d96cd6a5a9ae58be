package config

import (
	"github.com/rushteam/smartwin/core"
	"github.com/rushteam/smartwin/pkg/conv"
)

// ParseBuildConfig 从配置 map（YAML/JSON 解析出的 build 段）解析构建配置。
// overlap 接受 full / dynamic / other（别名 hybrid），缺省为 full；
// 数值字段兼容 YAML 的 int 与 JSON 的 float64。
func ParseBuildConfig(m map[string]any) (core.BuildConfig, error) {
	cfg := core.BuildConfig{
		WindowDim:   int(conv.ConfigGetInt64(m, "window_dim", 0)),
		NumFeatures: int(conv.ConfigGetInt64(m, "num_features", 0)),
		TailGuard:   int(conv.ConfigGetInt64(m, "tail_guard", 0)),
		ChunkSize:   int(conv.ConfigGetInt64(m, "chunk_size", 0)),
		Windowing:   conv.ConfigGet(m, "windowing", false),
	}
	if v, ok := conv.ToString(m["model"]); ok {
		cfg.Model = v
	}
	if v, ok := conv.ToString(m["ranking"]); ok {
		cfg.Ranking = v
	}

	overlap, err := core.ParseOverlap(conv.ConfigGet(m, "overlap", "full"))
	if err != nil {
		return core.BuildConfig{}, err
	}
	cfg.Overlap = overlap

	if err := cfg.Validate(); err != nil {
		return core.BuildConfig{}, err
	}
	return cfg, nil
}
