// Package config loads the demo configuration with Viper.
//
// Values come from, in order of precedence, command-line flags bound with
// BindFlag, ST7735R_* environment variables, the config file and the
// defaults below.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. ST7735R_BUS_KIND.
const EnvPrefix = "ST7735R"

// Config is the complete demo configuration.
type Config struct {
	Panel PanelConfig `mapstructure:"panel" yaml:"panel"`
	Bus   BusConfig   `mapstructure:"bus" yaml:"bus"`
	Log   LogConfig   `mapstructure:"log" yaml:"log"`
	Sim   SimConfig   `mapstructure:"sim" yaml:"sim"`
}

// PanelConfig describes the glass.
type PanelConfig struct {
	Width         int  `mapstructure:"width" yaml:"width"`
	Height        int  `mapstructure:"height" yaml:"height"`
	OriginX       int  `mapstructure:"origin_x" yaml:"origin_x"`
	OriginY       int  `mapstructure:"origin_y" yaml:"origin_y"`
	MADCTL        int  `mapstructure:"madctl" yaml:"madctl"`
	SoftwareReset bool `mapstructure:"software_reset" yaml:"software_reset"`
}

// BusConfig names the host lines. Pin names are resolved with gpioreg.
type BusConfig struct {
	Kind string `mapstructure:"kind" yaml:"kind"` // "spi" or "parallel"

	SPI string `mapstructure:"spi" yaml:"spi"`
	Hz  int64  `mapstructure:"hz" yaml:"hz"`

	DC  string `mapstructure:"dc" yaml:"dc"`
	RST string `mapstructure:"rst" yaml:"rst"`
	LED string `mapstructure:"led" yaml:"led"`

	// Parallel only.
	CS   string   `mapstructure:"cs" yaml:"cs"`
	WR   string   `mapstructure:"wr" yaml:"wr"`
	RD   string   `mapstructure:"rd" yaml:"rd"`
	Data []string `mapstructure:"data" yaml:"data"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// SimConfig drives the emulated panel.
type SimConfig struct {
	Scene  string `mapstructure:"scene" yaml:"scene"`
	Out    string `mapstructure:"out" yaml:"out"`
	Scale  int    `mapstructure:"scale" yaml:"scale"`
	Window bool   `mapstructure:"window" yaml:"window"`
	Watch  bool   `mapstructure:"watch" yaml:"watch"`
}

// Manager owns a Viper instance and the last good Config.
type Manager struct {
	viper     *viper.Viper
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
	watching  bool
}

// NewManager reads file when set, otherwise st7735r.{yaml,json,toml} from
// the working directory if one exists.
func NewManager(file string) *Manager {
	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("st7735r")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return &Manager{viper: v}
}

// BindFlag lets flag override key when it is set on the command line.
func (m *Manager) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("no flag for %s", key)
	}
	if err := m.viper.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("failed to bind flag %s: %w", flag.Name, err)
	}
	return nil
}

// Load reads the config file, if any, and validates the result.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	cfg, err := m.decode()
	if err != nil {
		return err
	}
	m.config = cfg
	return nil
}

func (m *Manager) decode() (*Config, error) {
	cfg := &Config{}
	if err := m.viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Bus.Kind = strings.ToLower(cfg.Bus.Kind)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c := *m.config
	c.Bus.Data = append([]string(nil), m.config.Bus.Data...)
	return &c
}

// File returns the config file in use, empty when running on defaults.
func (m *Manager) File() string {
	return m.viper.ConfigFileUsed()
}

// Watch reloads the file whenever it changes and notifies the callbacks
// registered with OnChange. Invalid edits are reported to onError and the
// previous configuration is kept.
func (m *Manager) Watch(onError func(error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil
	}
	if m.viper.ConfigFileUsed() == "" {
		return errors.New("no config file to watch")
	}
	m.viper.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := m.reload()
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		m.mu.RLock()
		callbacks := slices.Clone(m.callbacks)
		m.mu.RUnlock()
		for _, cb := range callbacks {
			cb(cfg)
		}
	})
	m.viper.WatchConfig()
	m.watching = true
	return nil
}

// OnChange registers a callback for reloaded configurations.
func (m *Manager) OnChange(cb func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, cb)
}

func (m *Manager) reload() (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := m.decode()
	if err != nil {
		return nil, err
	}
	m.config = cfg
	return cfg, nil
}
