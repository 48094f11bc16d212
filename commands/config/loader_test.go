package config_test

import (
	"os"
	"path/filepath"

	"code.cloudfoundry.org/grootrun/commands/config"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	yaml "gopkg.in/yaml.v2"
)

var _ = Describe("Load", func() {
	var (
		configDir      string
		configFilePath string
	)

	BeforeEach(func() {
		var err error
		configDir, err = os.MkdirTemp("", "")
		Expect(err).NotTo(HaveOccurred())

		cfg := config.Config{
			RegistryURL:            "http://registry.example.org",
			Architecture:           "arm64",
			SkipDigestVerification: true,
		}

		configYaml, err := yaml.Marshal(cfg)
		Expect(err).NotTo(HaveOccurred())
		configFilePath = filepath.Join(configDir, "config.yaml")

		Expect(os.WriteFile(configFilePath, configYaml, 0755)).To(Succeed())
	})

	AfterEach(func() {
		Expect(os.RemoveAll(configDir)).To(Succeed())
	})

	It("loads a config file", func() {
		config, err := config.Load(configFilePath)
		Expect(err).NotTo(HaveOccurred())
		Expect(config.RegistryURL).To(Equal("http://registry.example.org"))
		Expect(config.Architecture).To(Equal("arm64"))
		Expect(config.SkipDigestVerification).To(BeTrue())
	})

	It("reads the documented keys", func() {
		Expect(os.WriteFile(configFilePath, []byte(`
registry_url: http://localhost:5000
auth_url: http://localhost:5000/token
auth_service: local
architecture: s390x
workspace_parent: /var/tmp
log_level: debug
log_file: /var/log/grootrun.log
metron_endpoint: 127.0.0.1:3457
slow_pull_threshold_seconds: 30
registry_timeout_seconds: 10
skip_digest_verification: true
`), 0644)).To(Succeed())

		cfg, err := config.Load(configFilePath)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).To(Equal(config.Config{
			RegistryURL:              "http://localhost:5000",
			AuthURL:                  "http://localhost:5000/token",
			AuthService:              "local",
			Architecture:             "s390x",
			WorkspaceParent:          "/var/tmp",
			LogLevel:                 "debug",
			LogFile:                  "/var/log/grootrun.log",
			MetronEndpoint:           "127.0.0.1:3457",
			SlowPullThresholdSeconds: 30,
			RegistryTimeoutSeconds:   10,
			SkipDigestVerification:   true,
		}))
	})

	Context("when filepath is invalid", func() {
		It("returns an error", func() {
			_, err := config.Load("/tmp/not-here")
			Expect(err).To(MatchError(ContainSubstring("invalid config path")))
		})
	})

	Context("when config file has invalid content", func() {
		BeforeEach(func() {
			configFilePath = filepath.Join(configDir, "invalid-config.yaml")
			Expect(os.WriteFile(configFilePath, []byte("invalid-content"), 0755)).To(Succeed())
		})

		It("returns an error", func() {
			_, err := config.Load(configFilePath)
			Expect(err).To(MatchError(ContainSubstring("invalid config file")))
		})
	})

	Context("when config file has an unknown key", func() {
		BeforeEach(func() {
			Expect(os.WriteFile(configFilePath, []byte("store_path: /var/vcap\n"), 0755)).To(Succeed())
		})

		It("returns an error", func() {
			_, err := config.Load(configFilePath)
			Expect(err).To(MatchError(ContainSubstring("invalid config file")))
		})
	})
})
