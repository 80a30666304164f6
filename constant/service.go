package constant

// 服务标识，用于链路追踪与日志归属
const (
	ServiceName    = "build-service"
	ServiceVersion = "1.0.0"
)

// 定时任务相关常量
const (
	// HotBuildsCacheCronSpec 热门榜缓存重建任务的 cron 表达式（分钟级精度，每 5 分钟）
	HotBuildsCacheCronSpec = "*/5 * * * *"

	// HotBuildsCacheSize 热门榜截取的装机单数量上限
	HotBuildsCacheSize = 100

	// SyncLikeCountCronSpec 点赞数回刷 MySQL 的 cron 表达式（每 2 分钟）
	SyncLikeCountCronSpec = "*/2 * * * *"
)

// COS 对象键前缀
const (
	// COSObjectKeyPrefixComponentImages 配件商品图的对象键前缀
	COSObjectKeyPrefixComponentImages = "component_images/"
)
