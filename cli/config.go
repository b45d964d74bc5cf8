package main

import (
	"flagset"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"os"
)

type Config struct {
	LogLevel    string                    `envconfig:"LOG_LEVEL" default:"info"`
	Compression flagset.CompressAlgorithm `envconfig:"COMPRESSION" default:"snappy"`
	NoChecksum  bool                      `envconfig:"NO_CHECKSUM" default:"false"`
}

// loadConfig reads .env (if present) and the FLAGSET_* environment.
func loadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(errors.Cause(err)) {
		return nil, errors.Wrap(err, "load .env")
	}
	cfg := &Config{}
	if err := envconfig.Process("FLAGSET", cfg); err != nil {
		return nil, errors.Wrap(err, "process environment")
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "FLAGSET_LOG_LEVEL")
	}
	log.SetLevel(level)
	return cfg, nil
}

func (c *Config) Options() *flagset.Options {
	return &flagset.Options{
		Compression: c.Compression,
		NoChecksum:  c.NoChecksum,
	}
}
