package main

import (
	"flag"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nikmy/sift/internal/api"
	"github.com/nikmy/sift/internal/users"
	"github.com/nikmy/sift/pkg/environment"
	"github.com/nikmy/sift/pkg/errors"
)

type Config struct {
	Environment environment.Env   `yaml:"environment"`
	API         api.Config        `yaml:"api"`
	Mongo       users.MongoConfig `yaml:"mongo"`
}

func loadConfig() (*Config, error) {
	path, err := filepath.Abs("config.yaml")
	if err != nil {
		return nil, errors.WrapFail(err, "build path to config")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFail(err, "read config file")
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, errors.WrapFail(err, "parse yaml")
	}

	if env := getEnvFromFlags(); env != environment.Unknown {
		cfg.Environment = env
	}

	return &cfg, nil
}

func getEnvFromFlags() environment.Env {
	raw := flag.String("env", "", "environment (dev, prod)")
	flag.Parse()
	return environment.FromString(*raw)
}
