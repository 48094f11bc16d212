package main

import (
	"fmt"
	"os"

	"code.cloudfoundry.org/grootrun/commands"
	"code.cloudfoundry.org/grootrun/commands/config"
	"code.cloudfoundry.org/lager/v3"

	"github.com/urfave/cli/v2"
)

func main() {
	grootrun := cli.NewApp()
	grootrun.Name = "grootrun"
	grootrun.Usage = "Run a command inside a registry image"
	grootrun.Version = "0.1.0"

	grootrun.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "Path to config file",
			EnvVars: []string{"GROOTRUN_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Set logging level <debug|info|error|fatal>; nothing is logged when unset",
			EnvVars: []string{"GROOTRUN_LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:    "log-file",
			Usage:   "File to write logs to",
			EnvVars: []string{"GROOTRUN_LOG_FILE"},
		},
		&cli.StringFlag{
			Name:    "registry-url",
			Usage:   "Base URL of the image registry",
			Value:   config.DefaultRegistryURL,
			EnvVars: []string{"GROOTRUN_REGISTRY_URL"},
		},
		&cli.StringFlag{
			Name:    "auth-url",
			Usage:   "URL of the registry token endpoint",
			Value:   config.DefaultAuthURL,
			EnvVars: []string{"GROOTRUN_AUTH_URL"},
		},
		&cli.StringFlag{
			Name:    "auth-service",
			Usage:   "Service name sent to the token endpoint",
			Value:   config.DefaultAuthService,
			EnvVars: []string{"GROOTRUN_AUTH_SERVICE"},
		},
		&cli.StringFlag{
			Name:    "architecture",
			Usage:   "Architecture of the image to run",
			Value:   config.DefaultArchitecture,
			EnvVars: []string{"GROOTRUN_ARCHITECTURE"},
		},
		&cli.StringFlag{
			Name:    "workspace-parent",
			Usage:   "Directory the image workspace is created in",
			EnvVars: []string{"GROOTRUN_WORKSPACE_PARENT"},
		},
		&cli.StringFlag{
			Name:    "metron-endpoint",
			Usage:   "Metron endpoint used to send metrics",
			EnvVars: []string{"GROOTRUN_METRON_ENDPOINT"},
		},
		&cli.DurationFlag{
			Name:    "slow-pull-threshold",
			Usage:   "Log a system report when pulling the layers takes longer than this",
			EnvVars: []string{"GROOTRUN_SLOW_PULL_THRESHOLD"},
		},
		&cli.DurationFlag{
			Name:    "registry-timeout",
			Usage:   "Timeout of each registry request; no timeout when unset",
			EnvVars: []string{"GROOTRUN_REGISTRY_TIMEOUT"},
		},
		&cli.BoolFlag{
			Name:    "skip-digest-verification",
			Usage:   "Do not check layer blobs against their digests",
			EnvVars: []string{"GROOTRUN_SKIP_DIGEST_VERIFICATION"},
		},
	}

	grootrun.Commands = []*cli.Command{
		&commands.RunCommand,
	}

	grootrun.Before = func(ctx *cli.Context) error {
		cfgBuilder, err := config.NewBuilder(ctx.String("config"))
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		ctx.App.Metadata["configBuilder"] = cfgBuilder

		cfg, err := cfgBuilder.
			WithRegistryURL(ctx.String("registry-url"), ctx.IsSet("registry-url")).
			WithAuthURL(ctx.String("auth-url"), ctx.IsSet("auth-url")).
			WithAuthService(ctx.String("auth-service"), ctx.IsSet("auth-service")).
			WithArchitecture(ctx.String("architecture"), ctx.IsSet("architecture")).
			WithWorkspaceParent(ctx.String("workspace-parent"), ctx.IsSet("workspace-parent")).
			WithLogLevel(ctx.String("log-level"), ctx.IsSet("log-level")).
			WithLogFile(ctx.String("log-file")).
			WithMetronEndpoint(ctx.String("metron-endpoint")).
			WithSlowPullThreshold(ctx.Duration("slow-pull-threshold"), ctx.IsSet("slow-pull-threshold")).
			WithRegistryTimeout(ctx.Duration("registry-timeout"), ctx.IsSet("registry-timeout")).
			WithSkipDigestVerification(ctx.Bool("skip-digest-verification")).
			Build()
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		logger := lager.NewLogger("grootrun")
		// the log file stays open for the lifetime of the process
		if _, err := commands.ConfigureLogger(logger, cfg, os.Stderr); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		ctx.App.Metadata["logger"] = logger

		return nil
	}

	if err := grootrun.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
