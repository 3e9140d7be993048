// Package service 实现业务逻辑层
package service

// ServiceConfig 服务层配置
type ServiceConfig struct {
	User UserServiceConfig // 用户相关配置
	App  AppServiceConfig  // 应用相关配置
}

// UserServiceConfig 用户服务配置
type UserServiceConfig struct {
	// RegisterIsEnable 注册是否启用
	RegisterIsEnable bool
}

// AppServiceConfig 应用服务配置
type AppServiceConfig struct {
	// SoftDeleteRetentionTime 软删除保留时间（支持格式：7d、24h、30m，0 或空表示不自动清理）
	SoftDeleteRetentionTime string
}
