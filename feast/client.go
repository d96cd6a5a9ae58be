// Package feast 提供 Feast Feature Store 的客户端封装：当上游遥测特征
// 物化在特征库而非 CSV 时，从在线存储拉取设备特征并组装为输入表。
package feast

import "context"

// Client 是 Feast Feature Store 的客户端接口。
//
// 使用方式：
//   - 方式1：使用 GrpcClient（官方 SDK，见 grpc_client.go）
//   - 方式2：自行实现此接口（如测试桩）
//
// 参考：https://github.com/feast-dev/feast
type Client interface {
	// GetOnlineFeatures 获取在线特征
	//
	// 参数：
	//   - features: 特征名称列表，例如 ["disk_daily_stats:smart_5_raw"]
	//   - entityRows: 实体行，例如 [{"serial_number": "ZCH0A1B2"}]
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求
type GetOnlineFeaturesRequest struct {
	// Features 特征名称列表
	Features []string
	// EntityRows 实体行，key 为实体名（serial_number）
	EntityRows []map[string]any
	// Project 项目名称（可选，缺省用客户端配置）
	Project string
}

// FeatureVector 单个实体的特征向量
type FeatureVector struct {
	// Values key 为特征名称
	Values map[string]any
	// EntityRow 对应的实体行
	EntityRow map[string]any
}

// GetOnlineFeaturesResponse 获取在线特征响应
type GetOnlineFeaturesResponse struct {
	FeatureVectors []FeatureVector
}
