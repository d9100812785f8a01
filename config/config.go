// Package config loads feedkit configuration from YAML files and
// environment variables, with change watching and validation.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/feedkit/feedkit/logging/logger"
	"github.com/feedkit/feedkit/paging"
)

var validate = validator.New()

// Config is the root configuration document.
type Config struct {
	AppName string         `mapstructure:"app_name"`
	Paging  *Paging        `mapstructure:"paging" validate:"required"`
	Logger  *logger.Config `mapstructure:"logger"`

	v *viper.Viper
}

// Paging is the serializable subset of paging.Options. Key and probe
// functions are code, not configuration, and are attached by the caller
// via Options.
type Paging struct {
	PageSize          int     `mapstructure:"page_size" validate:"gte=0"`
	InitialPage       int     `mapstructure:"initial_page" validate:"gte=0"`
	InfiniteScroll    bool    `mapstructure:"infinite_scroll"`
	AutoLoadFirstPage bool    `mapstructure:"auto_load_first_page"`
	CachePolicy       string  `mapstructure:"cache_policy" validate:"omitempty,oneof=keep_all keep_none keep_last"`
	MaxCachedItems    int     `mapstructure:"max_cached_items" validate:"gte=0"`
	PrefetchItemCount int     `mapstructure:"prefetch_item_count" validate:"gte=0"`
	PrefetchDistance  float64 `mapstructure:"prefetch_distance" validate:"gte=0"`
	CompensateForTrim bool    `mapstructure:"compensate_for_trim"`
}

// Load reads the configuration from the given file, falling back to
// ./config.yaml, and overlays FEEDKIT_* environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("feedkit")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	cfg := &Config{v: v}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	if cfg.Paging == nil {
		cfg.Paging = &Paging{}
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Watch re-reads the configuration whenever the file changes and hands
// the result to onChange. Unparseable or invalid updates are skipped.
func (c *Config) Watch(onChange func(*Config)) {
	if c.v == nil {
		return
	}
	c.v.OnConfigChange(func(_ fsnotify.Event) {
		next := &Config{v: c.v}
		if err := c.v.Unmarshal(next); err != nil {
			return
		}
		if next.Paging == nil {
			next.Paging = &Paging{}
		}
		if err := validate.Struct(next); err != nil {
			return
		}
		onChange(next)
	})
	c.v.WatchConfig()
}

// Policy resolves the configured cache policy.
func (p *Paging) Policy() paging.CachePolicy {
	switch p.CachePolicy {
	case "keep_none":
		return paging.KeepNone()
	case "keep_last":
		return paging.KeepLast(p.MaxCachedItems)
	default:
		return paging.KeepAll()
	}
}

// Options builds paging options from the configuration. KeyOf and Probe
// are attached by the caller afterwards.
func Options[T any](p *Paging) paging.Options[T] {
	opts := paging.Options[T]{
		PageSize:          p.PageSize,
		InitialPage:       p.InitialPage,
		InfiniteScroll:    p.InfiniteScroll,
		AutoLoadFirstPage: p.AutoLoadFirstPage,
		PrefetchItemCount: p.PrefetchItemCount,
		PrefetchDistance:  p.PrefetchDistance,
		CompensateForTrim: p.CompensateForTrim,
	}
	if p.CachePolicy != "" {
		opts.CachePolicy = p.Policy()
	} else {
		opts.MaxCachedItems = p.MaxCachedItems
	}
	return opts
}
