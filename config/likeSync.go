package config

// LikeSyncConfig 包含点赞数回刷任务相关的配置
type LikeSyncConfig struct {
	// BatchSize 是将 Redis 中的点赞数回刷到 MySQL 时，每个数据库操作批次处理的装机单数量。
	// 例如 Redis 里有 20,000 份装机单的点赞数待同步，BatchSize 为 500 时会切成 40 个批次，
	// 每个批次通过一条 CASE WHEN 形式的 UPDATE 语句完成。
	BatchSize int `mapstructure:"batchSize" json:"batchSize" yaml:"batchSize"`

	// ConcurrencyLevel 是回刷任务并发处理数据批次的 worker (goroutine) 数量。
	// 决定同时向数据库发起更新请求的并发连接数。
	ConcurrencyLevel int `mapstructure:"concurrencyLevel" json:"concurrencyLevel" yaml:"concurrencyLevel"`

	// ScanBatchSize 是用 SCAN 命令遍历 Redis 点赞计数 Key 时传给 COUNT 参数的建议值。
	// Redis 不保证精确返回该数量，仅作为提示。
	ScanBatchSize int64 `mapstructure:"scanBatchSize" json:"scanBatchSize" yaml:"scanBatchSize"`
}
