package config

import (
	"time"

	errorspkg "github.com/pkg/errors"
)

const (
	DefaultRegistryURL  = "https://registry.hub.docker.com"
	DefaultAuthURL      = "https://auth.docker.io/token"
	DefaultAuthService  = "registry.docker.io"
	DefaultArchitecture = "amd64"
)

type Builder struct {
	config *Config
}

func Defaults() Config {
	return Config{
		RegistryURL:  DefaultRegistryURL,
		AuthURL:      DefaultAuthURL,
		AuthService:  DefaultAuthService,
		Architecture: DefaultArchitecture,
	}
}

// NewBuilder starts from the defaults. Keys set in the file at configPath, if
// any, replace them.
func NewBuilder(configPath string) (*Builder, error) {
	config := Defaults()

	if configPath != "" {
		loaded, err := Load(configPath)
		if err != nil {
			return nil, err
		}
		merge(&config, loaded)
	}

	return &Builder{
		config: &config,
	}, nil
}

func (b *Builder) Build() (Config, error) {
	if err := ValidateLogLevel(b.config.LogLevel); err != nil {
		return *b.config, err
	}

	if err := ValidateURL("registry_url", b.config.RegistryURL); err != nil {
		return *b.config, err
	}

	if err := ValidateURL("auth_url", b.config.AuthURL); err != nil {
		return *b.config, err
	}

	if b.config.Architecture == "" {
		return *b.config, errorspkg.New("architecture must not be empty")
	}

	if b.config.SlowPullThresholdSeconds < 0 {
		return *b.config, errorspkg.New("slow_pull_threshold_seconds must not be negative")
	}

	if b.config.RegistryTimeoutSeconds < 0 {
		return *b.config, errorspkg.New("registry_timeout_seconds must not be negative")
	}

	return *b.config, nil
}

func (b *Builder) WithRegistryURL(registryURL string, isSet bool) *Builder {
	if isSet {
		b.config.RegistryURL = registryURL
	}
	return b
}

func (b *Builder) WithAuthURL(authURL string, isSet bool) *Builder {
	if isSet {
		b.config.AuthURL = authURL
	}
	return b
}

func (b *Builder) WithAuthService(authService string, isSet bool) *Builder {
	if isSet {
		b.config.AuthService = authService
	}
	return b
}

func (b *Builder) WithArchitecture(architecture string, isSet bool) *Builder {
	if isSet {
		b.config.Architecture = architecture
	}
	return b
}

func (b *Builder) WithWorkspaceParent(workspaceParent string, isSet bool) *Builder {
	if isSet {
		b.config.WorkspaceParent = workspaceParent
	}
	return b
}

func (b *Builder) WithLogLevel(level string, isSet bool) *Builder {
	if isSet {
		b.config.LogLevel = level
	}
	return b
}

func (b *Builder) WithLogFile(filepath string) *Builder {
	if filepath != "" {
		b.config.LogFile = filepath
	}
	return b
}

func (b *Builder) WithMetronEndpoint(metronEndpoint string) *Builder {
	if metronEndpoint != "" {
		b.config.MetronEndpoint = metronEndpoint
	}
	return b
}

func (b *Builder) WithSlowPullThreshold(threshold time.Duration, isSet bool) *Builder {
	if isSet {
		b.config.SlowPullThresholdSeconds = int(threshold / time.Second)
	}
	return b
}

func (b *Builder) WithRegistryTimeout(timeout time.Duration, isSet bool) *Builder {
	if isSet {
		b.config.RegistryTimeoutSeconds = int(timeout / time.Second)
	}
	return b
}

func (b *Builder) WithSkipDigestVerification(skip bool) *Builder {
	if skip {
		b.config.SkipDigestVerification = true
	}
	return b
}

func (c Config) SlowPullThreshold() time.Duration {
	return time.Duration(c.SlowPullThresholdSeconds) * time.Second
}

func (c Config) RegistryTimeout() time.Duration {
	return time.Duration(c.RegistryTimeoutSeconds) * time.Second
}

func merge(config *Config, loaded Config) {
	if loaded.RegistryURL != "" {
		config.RegistryURL = loaded.RegistryURL
	}
	if loaded.AuthURL != "" {
		config.AuthURL = loaded.AuthURL
	}
	if loaded.AuthService != "" {
		config.AuthService = loaded.AuthService
	}
	if loaded.Architecture != "" {
		config.Architecture = loaded.Architecture
	}
	config.WorkspaceParent = loaded.WorkspaceParent
	config.LogLevel = loaded.LogLevel
	config.LogFile = loaded.LogFile
	config.MetronEndpoint = loaded.MetronEndpoint
	config.SlowPullThresholdSeconds = loaded.SlowPullThresholdSeconds
	config.RegistryTimeoutSeconds = loaded.RegistryTimeoutSeconds
	config.SkipDigestVerification = loaded.SkipDigestVerification
}
