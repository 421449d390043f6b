package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Host string
	Port int
}

func (s ServerConfig) Addr() string {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RedisConfig Redis 配置（目录/购物车快照的持久化键值存储）
type RedisConfig struct {
	Addr string
}

// RabbitMQConfig MQ 配置，URL 为空表示不发布目录变更事件
type RabbitMQConfig struct {
	URL string
}

// SeedConfig 种子数据源配置
type SeedConfig struct {
	// URL 返回 {"products": [...]} 的 JSON 文档，目录首次加载时使用
	URL string
}

// RemoteConfig 前台远端商品集合配置
type RemoteConfig struct {
	// BaseURL 远端集合根地址：列表 GET {BaseURL}/products，详情 GET {BaseURL}/products/{id}
	BaseURL string
}

// ListConfig 列表管线默认参数
type ListConfig struct {
	PageSize int
}

// Config 应用总配置
type Config struct {
	Server      ServerConfig
	AdminServer ServerConfig
	Redis       RedisConfig
	RabbitMQ    RabbitMQConfig
	Seed        SeedConfig
	Remote      RemoteConfig
	List        ListConfig
}

// DefaultConfig 默认配置，方便快速跑起来
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		AdminServer: ServerConfig{
			Host: "0.0.0.0",
			Port: 8081,
		},
		Redis: RedisConfig{
			Addr: "127.0.0.1:6379",
		},
		RabbitMQ: RabbitMQConfig{
			URL: "",
		},
		Seed: SeedConfig{
			URL: "https://my-json-server.typicode.com/dangducnhatkhoa/dev1/db",
		},
		Remote: RemoteConfig{
			BaseURL: "https://my-json-server.typicode.com/dangducnhatkhoa/dev1",
		},
		List: ListConfig{
			PageSize: 10,
		},
	}
}

// Load 从指定目录读取 config.yaml 覆盖默认值；文件不存在时直接返回默认配置
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
