package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultMessageTemplate is the outreach message used when a run request
// carries no template of its own.
const DefaultMessageTemplate = "Ola {nome}, tudo bem?\n\n" +
	"Vi seu perfil e fiquei interessado no seu trabalho como {cargo}.\n" +
	"Gostaria de trocar uma ideia sobre [seu motivo aqui].\n\n" +
	"Podemos conversar?"

type Config struct {
	Server struct {
		Addr   string `yaml:"addr"`
		APIKey string `yaml:"api_key"`
	} `yaml:"server"`
	LinkedIn struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"linkedin"`
	Browser struct {
		Headless bool `yaml:"headless"`
	} `yaml:"browser"`
	Run struct {
		Keywords        []string `yaml:"keywords"`
		MaxMessages     int      `yaml:"max_messages"`
		DelayMin        float64  `yaml:"delay_min"`
		DelayMax        float64  `yaml:"delay_max"`
		MessageTemplate string   `yaml:"message_template"`
	} `yaml:"run"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load() // optional
	cfg := defaultConfig()
	if b, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	applyEnvOverrides(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultConfig() Config {
	var cfg Config
	cfg.Server.Addr = ":8000"
	cfg.Server.APIKey = "troque-esta-chave"
	cfg.LinkedIn.BaseURL = "https://www.linkedin.com/"
	cfg.Browser.Headless = true
	cfg.Run.Keywords = []string{"product manager senior"}
	cfg.Run.MaxMessages = 10
	cfg.Run.DelayMin = 3
	cfg.Run.DelayMax = 7
	cfg.Run.MessageTemplate = DefaultMessageTemplate
	cfg.Database.Path = "outreachd.db"
	cfg.Logging.Level = "info"
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("API_KEY"); v != "" {
		cfg.Server.APIKey = v
	}
	if v := os.Getenv("OUTREACHD_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("OUTREACHD_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("OUTREACHD_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("OUTREACHD_HEADLESS"); v == "0" || v == "false" {
		cfg.Browser.Headless = false
	}
}

func validate(cfg *Config) error {
	if cfg.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if cfg.Server.APIKey == "" {
		return errors.New("server.api_key is required")
	}
	if cfg.LinkedIn.BaseURL == "" {
		return errors.New("linkedin.base_url is required")
	}
	if cfg.Run.MaxMessages <= 0 {
		return errors.New("run.max_messages must be > 0")
	}
	if cfg.Run.DelayMin < 0 || cfg.Run.DelayMax < cfg.Run.DelayMin {
		return errors.New("run.delay_min/delay_max must satisfy 0 <= min <= max")
	}
	if len(cfg.Run.Keywords) == 0 {
		return errors.New("run.keywords must not be empty")
	}
	return nil
}
