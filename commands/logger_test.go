package commands_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"code.cloudfoundry.org/grootrun/commands"
	"code.cloudfoundry.org/grootrun/commands/config"
	"code.cloudfoundry.org/lager/v3"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ConfigureLogger", func() {
	var (
		logger lager.Logger
		stderr *bytes.Buffer
		cfg    config.Config
		closer io.Closer
	)

	BeforeEach(func() {
		logger = lager.NewLogger("grootrun")
		stderr = bytes.NewBuffer([]byte{})
		cfg = config.Defaults()
	})

	JustBeforeEach(func() {
		var err error
		closer, err = commands.ConfigureLogger(logger, cfg, stderr)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(closer.Close()).To(Succeed())
	})

	Context("without a log level or log file", func() {
		It("logs nothing", func() {
			logger.Info("hello")
			logger.Error("oh-no", os.ErrNotExist)
			Expect(stderr.Len()).To(BeZero())
		})
	})

	Context("with a log level", func() {
		BeforeEach(func() {
			cfg.LogLevel = "error"
		})

		It("logs at that level to stderr", func() {
			logger.Info("hello")
			Expect(stderr.String()).To(BeEmpty())

			logger.Error("oh-no", os.ErrNotExist)
			Expect(stderr.String()).To(ContainSubstring("grootrun.oh-no"))
		})
	})

	Context("with a log file", func() {
		var logDir string

		BeforeEach(func() {
			var err error
			logDir, err = os.MkdirTemp("", "")
			Expect(err).NotTo(HaveOccurred())
			cfg.LogFile = filepath.Join(logDir, "grootrun.log")
		})

		AfterEach(func() {
			Expect(os.RemoveAll(logDir)).To(Succeed())
		})

		It("logs to the file instead of stderr", func() {
			logger.Info("hello")
			Expect(stderr.Len()).To(BeZero())

			contents, err := os.ReadFile(cfg.LogFile)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(contents)).To(ContainSubstring("grootrun.hello"))
		})
	})
})
