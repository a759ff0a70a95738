package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// WatchlistEntryConfig 单个监控查询配置结构
type WatchlistEntryConfig struct {
	Name       string  `mapstructure:"name"`
	Query      string  `mapstructure:"query"`
	Domain     string  `mapstructure:"domain"`
	Pages      int     `mapstructure:"pages"`
	MinRating  float64 `mapstructure:"min_rating"`
	MinReviews int     `mapstructure:"min_reviews"`
	Enabled    bool    `mapstructure:"enabled"`
}

// WatchlistsConfig 定时监控查询配置
type WatchlistsConfig struct {
	Enabled  bool                   `mapstructure:"enabled"`
	Schedule string                 `mapstructure:"schedule"` // cron 表达式
	Entries  []WatchlistEntryConfig `mapstructure:"entries"`
}

// LoadWatchlistsConfig 加载监控查询配置
func LoadWatchlistsConfig(configPath string, logger *zap.Logger) (*WatchlistsConfig, error) {
	viper.SetConfigName("watchlists")
	viper.SetConfigType("yaml")

	// 添加配置路径
	if configPath != "" {
		viper.AddConfigPath(configPath)
	}
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")

	// 读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if logger != nil {
				logger.Warn("watchlists.yaml not found, using default empty config")
			}
			// 返回空配置
			return &WatchlistsConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read watchlists config file: %w", err)
	}

	var watchlistsConfig WatchlistsConfig
	if err := viper.Unmarshal(&watchlistsConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal watchlists config: %w", err)
	}

	if logger != nil {
		logger.Info("watchlists config loaded successfully",
			zap.String("config_file", viper.ConfigFileUsed()),
			zap.Int("entries", len(watchlistsConfig.Entries)),
		)
	}

	return &watchlistsConfig, nil
}

// LoadWatchlistsConfigFromFile 从指定文件加载配置
func LoadWatchlistsConfigFromFile(filePath string, logger *zap.Logger) (*WatchlistsConfig, error) {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(filePath)

	// 检查文件是否存在
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		if logger != nil {
			logger.Warn("watchlists config file not found, using default empty config",
				zap.String("file_path", filePath),
			)
		}
		return &WatchlistsConfig{}, nil
	}

	// 读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read watchlists config file: %w", err)
	}

	var watchlistsConfig WatchlistsConfig
	if err := viper.Unmarshal(&watchlistsConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal watchlists config: %w", err)
	}

	if logger != nil {
		logger.Info("watchlists config loaded successfully",
			zap.String("config_file", filePath),
			zap.Int("entries", len(watchlistsConfig.Entries)),
		)
	}

	return &watchlistsConfig, nil
}
