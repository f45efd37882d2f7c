package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/decker502/pufferfish/pkg/config"
	"github.com/decker502/pufferfish/pkg/embedded"
)

// loadGameConfig 按优先级加载游戏配置
//
// 查找顺序:
//  1. 磁盘上的配置文件
//  2. 随程序嵌入的同名文件
//  3. 路径为默认路径时使用内置默认配置
//
// 文件存在但解析或校验失败时直接返回错误，不做回退。
func loadGameConfig(path string) (*config.GameConfig, error) {
	if path == "" {
		path = config.DefaultConfigPath
	}

	cfg, err := config.LoadGameConfig(path)
	if err == nil {
		log.Printf("[Config] 加载游戏配置: %s", path)
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	if embedded.Exists(path) {
		data, err := embedded.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded pufferfish config: %w", err)
		}
		cfg, err := config.ParseGameConfig(data)
		if err != nil {
			return nil, err
		}
		log.Printf("[Config] 使用嵌入的游戏配置: %s", path)
		return cfg, nil
	}

	if path == config.DefaultConfigPath {
		log.Printf("[Config] Warning: 未找到 %s，使用内置默认配置", path)
		return config.DefaultGameConfig(), nil
	}

	return nil, err
}
