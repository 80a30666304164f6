package constant

// Redis Key 相关常量 (导出)
const (
	// --- Key 前缀 (用于动态生成 Key) ---

	// BuildLikeCountPrefix 是装机单点赞计数器的 Key 前缀。
	// 每份装机单会有一个对应的 String 类型的 Key，用于原子性计数。
	// 示例 Key: "build_like_count:123" (其中 123 是 buildID)
	// Redis 类型: String
	// 示例值: "58" (表示装机单 123 的点赞数为 58)
	BuildLikeCountPrefix = "build_like_count:"

	// --- 固定 Key 名称 (全局使用的 Key) ---

	// BuildsHashKey 是热门装机单摘要缓存的 Hash Key 名称。
	// Field 是装机单 ID，Value 是装机单实体的 JSON 序列化，由定时任务整体重建。
	// Redis 类型: Hash
	BuildsHashKey = "builds"

	// BuildsRankKey 是全局装机单热度排行榜的 Key 名称。
	// 这是一个 Sorted Set (ZSet)，成员是装机单 ID (buildID)，分数是点赞数。
	// Redis 类型: Sorted Set
	// 示例成员与分数: Member="123", Score=58; Member="456", Score=102
	BuildsRankKey = "build_rank"

	// HotBuildsRankKey 是热门装机单榜单的 Key 名称。
	// 这是一个较小的 Sorted Set (ZSet)，由定时任务从 BuildsRankKey 中截取 Top N 生成。
	// Redis 类型: Sorted Set
	HotBuildsRankKey = "hot_build_rank"
)
