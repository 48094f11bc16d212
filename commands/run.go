package commands // import "code.cloudfoundry.org/grootrun/commands"

import (
	"os"

	"code.cloudfoundry.org/commandrunner/linux_command_runner"
	"code.cloudfoundry.org/grootrun/base_image_puller"
	"code.cloudfoundry.org/grootrun/base_image_puller/unpacker"
	"code.cloudfoundry.org/grootrun/commands/config"
	"code.cloudfoundry.org/grootrun/fetcher/registry"
	"code.cloudfoundry.org/grootrun/groot"
	"code.cloudfoundry.org/grootrun/metrics"
	"code.cloudfoundry.org/grootrun/metrics/systemreporter"
	"code.cloudfoundry.org/grootrun/sandbox"
	"code.cloudfoundry.org/grootrun/workspace"
	"code.cloudfoundry.org/lager/v3"
	errorspkg "github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var RunCommand = cli.Command{
	Name:        "run",
	Usage:       "run <image[:tag]> <command> [args...]",
	Description: "Pulls an image from the registry and runs a command inside it.",

	SkipFlagParsing: true,

	Action: func(ctx *cli.Context) error {
		logger := ctx.App.Metadata["logger"].(lager.Logger)
		logger = logger.Session("run")

		configBuilder := ctx.App.Metadata["configBuilder"].(*config.Builder)
		cfg, err := configBuilder.Build()
		logger.Debug("run-config", lager.Data{"currentConfig": cfg})
		if err != nil {
			logger.Error("config-builder-failed", err)
			return cli.Exit(err.Error(), 1)
		}

		runSpec, err := NewRunSpec(ctx.Args().Slice(), cfg.Architecture)
		if err != nil {
			logger.Error("parsing-command", err)
			return cli.Exit(err.Error(), 1)
		}

		metricsEmitter, err := newMetricsEmitter(cfg)
		if err != nil {
			logger.Error("initializing-metrics-failed", err)
			return cli.Exit(err.Error(), 1)
		}

		runner := NewGroot(cfg, metricsEmitter)
		exitCode, err := runner.Run(logger, runSpec)
		if err != nil {
			logger.Error("running-failed", err)
			return cli.Exit(err.Error(), 1)
		}

		if exitCode != 0 {
			return cli.Exit("", exitCode)
		}

		return nil
	},
}

// NewRunSpec expects the image reference followed by the command and its
// arguments.
func NewRunSpec(args []string, architecture string) (groot.RunSpec, error) {
	if len(args) < 1 || args[0] == "" {
		return groot.RunSpec{}, errorspkg.New("image was not specified")
	}

	if len(args) < 2 {
		return groot.RunSpec{}, errorspkg.New("command was not specified")
	}

	return groot.RunSpec{
		Image:        args[0],
		Architecture: architecture,
		Args:         args[1:],
	}, nil
}

func NewGroot(cfg config.Config, metricsEmitter groot.MetricsEmitter) *groot.Groot {
	httpClient := registry.NewHTTPClient(cfg.RegistryTimeout())
	commandRunner := linux_command_runner.New()

	workspaceBuilder := workspace.NewBuilder(cfg.WorkspaceParent, nil)
	authenticator := registry.NewAuthenticator(httpClient, cfg.AuthURL, cfg.AuthService)
	manifestResolver := registry.NewManifestResolver(httpClient, cfg.RegistryURL)

	systemReporter := systemreporter.NewSlowPullReporter(cfg.SlowPullThreshold(), workspaceParent(cfg), commandRunner)
	layerPuller := base_image_puller.NewBaseImagePuller(
		registry.NewBlobFetcher(httpClient, cfg.RegistryURL),
		unpacker.NewTarUnpacker(),
		metricsEmitter,
		systemReporter,
		cfg.SkipDigestVerification,
	)

	isolator := sandbox.NewIsolator(sandbox.NewSyscaller())
	processRunner := sandbox.NewProcessRunner(commandRunner, os.Stdin, os.Stdout, os.Stderr)

	return groot.IamGroot(
		workspaceBuilder, authenticator, manifestResolver,
		layerPuller, isolator, processRunner, metricsEmitter,
	)
}

func newMetricsEmitter(cfg config.Config) (groot.MetricsEmitter, error) {
	if cfg.MetronEndpoint == "" {
		return metrics.NewNoopEmitter(), nil
	}

	emitter, err := metrics.NewEmitter(cfg.MetronEndpoint)
	if err != nil {
		return nil, errorspkg.Wrapf(err, "initializing metrics for `%s`", cfg.MetronEndpoint)
	}

	return emitter, nil
}

func workspaceParent(cfg config.Config) string {
	if cfg.WorkspaceParent == "" {
		return os.TempDir()
	}
	return cfg.WorkspaceParent
}
