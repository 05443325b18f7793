package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Audio   AudioConfig   `toml:"audio"`
	Assets  AssetsConfig  `toml:"assets"`
	Logging LoggingConfig `toml:"logging"`
}

type EngineConfig struct {
	TweenStep    time.Duration `toml:"tween_step"`
	CancelOnStop bool          `toml:"cancel_on_stop"`
}

type AudioConfig struct {
	Enabled    bool `toml:"enabled"`
	SampleRate int  `toml:"sample_rate"`
}

type AssetsConfig struct {
	SceneFile    string `toml:"scene_file"`
	StoryDir     string `toml:"story_dir"`
	DefaultStory string `toml:"default_story"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			TweenStep:    16 * time.Millisecond,
			CancelOnStop: false,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
		},
		Assets: AssetsConfig{
			SceneFile:    "data/scene.yaml",
			StoryDir:     "stories",
			DefaultStory: "opening",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
