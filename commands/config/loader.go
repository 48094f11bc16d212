package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

type Config struct {
	RegistryURL              string `yaml:"registry_url"`
	AuthURL                  string `yaml:"auth_url"`
	AuthService              string `yaml:"auth_service"`
	Architecture             string `yaml:"architecture"`
	WorkspaceParent          string `yaml:"workspace_parent"`
	LogLevel                 string `yaml:"log_level"`
	LogFile                  string `yaml:"log_file"`
	MetronEndpoint           string `yaml:"metron_endpoint"`
	SlowPullThresholdSeconds int    `yaml:"slow_pull_threshold_seconds"`
	RegistryTimeoutSeconds   int    `yaml:"registry_timeout_seconds"`
	SkipDigestVerification   bool   `yaml:"skip_digest_verification"`
}

func Load(configPath string) (Config, error) {
	configContent, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("invalid config path: %s", err)
	}

	var config Config
	err = yaml.UnmarshalStrict(configContent, &config)
	if err != nil {
		return Config{}, fmt.Errorf("invalid config file: %s", err)
	}

	return config, nil
}
