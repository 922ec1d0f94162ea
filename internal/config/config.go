// Package config loads the YAML configuration shared by every sub-command.
package config

import (
	"fmt"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/M1Va1/Stockdoge/internal/board"
)

type Config struct {
	Log   logx.LogConf
	Magic MagicConf
	HTTP  HTTPConf
}

type MagicConf struct {
	Seed        uint64 `json:",default=11400714819323198485"`
	MaxAttempts int    `json:",default=4194304,range=[1:1073741824]"`
	// CacheDir holds the magic database; empty uses the platform data dir.
	CacheDir string `json:",optional"`
	// NoCache keeps the database in memory only.
	NoCache bool `json:",optional"`
}

type HTTPConf struct {
	Addr          string `json:",default=127.0.0.1:8080"`
	Pprof         bool   `json:",optional"`
	MaxPerftDepth int    `json:",default=5,range=[1:8]"`
}

// Load reads path, or returns the defaults when path is empty.
func Load(path string) (Config, error) {
	var c Config
	if path == "" {
		if err := conf.FillDefault(&c); err != nil {
			return c, fmt.Errorf("default config: %w", err)
		}
		return c, nil
	}
	if err := conf.Load(path, &c); err != nil {
		return c, fmt.Errorf("load config %s: %w", path, err)
	}
	return c, nil
}

// MagicConfig converts the magic section for board.BuildMagics.
func (c Config) MagicConfig() board.MagicConfig {
	return board.MagicConfig{
		Seed:        c.Magic.Seed,
		MaxAttempts: c.Magic.MaxAttempts,
	}
}
