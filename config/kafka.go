package config

type KafkaConfig struct {
	Brokers         []string `mapstructure:"brokers" json:"brokers" yaml:"brokers"`
	Topics          Topics   `mapstructure:"topics" json:"topics" yaml:"topics"`
	ConsumerGroupID string   `mapstructure:"consumer_group_id" json:"consumer_group_id" yaml:"consumer_group_id"`
}

type Topics struct {
	BuildCreated    string `mapstructure:"buildCreated" yaml:"buildCreated"`       // 装机单创建主题
	BuildLiked      string `mapstructure:"buildLiked" yaml:"buildLiked"`           // 装机单点赞主题
	ComponentImport string `mapstructure:"componentImport" yaml:"componentImport"` // 配件异步导入主题
}
