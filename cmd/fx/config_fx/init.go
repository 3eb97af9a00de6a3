package config_fx

import (
	"go.uber.org/fx"

	"bizlens/internal/config"
	"bizlens/pkg/utils"
)

var Module = fx.Provide(provideConfig)

func provideConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	utils.SetSigningKey(cfg.JWTSecret)
	return cfg, nil
}
