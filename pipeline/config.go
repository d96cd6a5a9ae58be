package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 是 Pipeline 的配置结构（支持 YAML/JSON）。
type Config struct {
	Pipeline struct {
		Name   string        `yaml:"name" json:"name"`
		Stages []StageConfig `yaml:"stages" json:"stages"`
	} `yaml:"pipeline" json:"pipeline"`
	// Build 构建参数段（window_dim / overlap / windowing 等），
	// 由 config.ParseBuildConfig 解析为 core.BuildConfig
	Build map[string]any `yaml:"build" json:"build"`
}

// StageConfig 是单个 Stage 的配置。
type StageConfig struct {
	Type   string         `yaml:"type" json:"type"`     // normalize.minmax / window.builder / filter.validity 等
	Config map[string]any `yaml:"config" json:"config"` // Stage 特定配置
}

// LoadFromYAML 从 YAML 文件加载 Pipeline 配置。
func LoadFromYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	return &cfg, nil
}

// LoadFromJSON 从 JSON 文件加载 Pipeline 配置。
func LoadFromJSON(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	return &cfg, nil
}

// BuildPipeline 根据配置构建 Pipeline（需要 StageFactory 注册 Stage 构建器）。
// 注意：默认工厂在独立的 config 包中，避免循环依赖。
func (c *Config) BuildPipeline(factory *StageFactory) (*Pipeline, error) {
	stages := make([]Stage, 0, len(c.Pipeline.Stages))

	for _, sc := range c.Pipeline.Stages {
		stage, err := factory.Build(sc.Type, sc.Config)
		if err != nil {
			return nil, fmt.Errorf("build stage %s: %w", sc.Type, err)
		}
		stages = append(stages, stage)
	}

	return &Pipeline{Stages: stages}, nil
}

// StageFactory 用于根据配置构建 Stage 实例。
type StageFactory struct {
	builders map[string]StageBuilder
}

func NewStageFactory() *StageFactory {
	return &StageFactory{
		builders: make(map[string]StageBuilder),
	}
}

// Register 注册 Stage 构建器。
func (f *StageFactory) Register(stageType string, builder StageBuilder) {
	f.builders[stageType] = builder
}

// Build 根据类型和配置构建 Stage。
func (f *StageFactory) Build(stageType string, config map[string]any) (Stage, error) {
	builder, ok := f.builders[stageType]
	if !ok {
		return nil, fmt.Errorf("unknown stage type: %s", stageType)
	}
	return builder(config)
}
