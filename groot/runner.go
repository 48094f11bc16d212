package groot

import (
	"time"

	"code.cloudfoundry.org/lager/v3"
	errorspkg "github.com/pkg/errors"
)

const MetricRunPreparationTime = "RunPreparationTime"

type Groot struct {
	workspaceBuilder WorkspaceBuilder
	authenticator    Authenticator
	manifestResolver ManifestResolver
	layerPuller      LayerPuller
	isolator         Isolator
	processRunner    ProcessRunner
	metricsEmitter   MetricsEmitter
}

func IamGroot(
	workspaceBuilder WorkspaceBuilder, authenticator Authenticator,
	manifestResolver ManifestResolver, layerPuller LayerPuller,
	isolator Isolator, processRunner ProcessRunner, metricsEmitter MetricsEmitter) *Groot {
	return &Groot{
		workspaceBuilder: workspaceBuilder,
		authenticator:    authenticator,
		manifestResolver: manifestResolver,
		layerPuller:      layerPuller,
		isolator:         isolator,
		processRunner:    processRunner,
		metricsEmitter:   metricsEmitter,
	}
}

// Run returns the exit code of the contained command. A non-zero exit code is
// not an error; errors are reserved for failures of the pipeline itself.
func (g *Groot) Run(logger lager.Logger, spec RunSpec) (int, error) {
	startTime := time.Now()

	logger = logger.Session("groot-running", lager.Data{"spec": spec})
	logger.Info("starting")
	defer logger.Info("ending")

	if len(spec.Args) == 0 {
		return 0, errorspkg.New("no command to run")
	}

	imageRef, err := ParseImageRef(spec.Image)
	if err != nil {
		return 0, errorspkg.Wrap(err, "parsing image reference")
	}

	workspace, err := g.workspaceBuilder.Build(logger)
	if err != nil {
		return 0, errorspkg.Wrap(NewWorkspaceErr(err), "building workspace")
	}
	logger.Debug("workspace-built", lager.Data{"workspace": workspace.Path})

	token, err := g.authenticator.Token(logger, imageRef.Repository())
	if err != nil {
		return 0, errorspkg.Wrap(err, "fetching registry token")
	}

	layers, err := g.manifestResolver.Resolve(logger, imageRef, spec.Architecture, token)
	if err != nil {
		return 0, errorspkg.Wrapf(err, "resolving manifest for `%s`", imageRef)
	}
	logger.Debug("manifest-resolved", lager.Data{"layers": layers})

	if err := g.layerPuller.Pull(logger, PullSpec{
		Image:      imageRef,
		Token:      token,
		Layers:     layers,
		TargetPath: workspace.Path,
	}); err != nil {
		return 0, errorspkg.Wrap(err, "pulling layers")
	}

	g.metricsEmitter.TryEmitDurationFrom(logger, MetricRunPreparationTime, startTime)

	confined, err := g.isolator.Isolate(logger, workspace.Path)
	if err != nil {
		return 0, errorspkg.Wrap(NewIsolationErr(err), "isolating process")
	}

	exitCode, err := g.processRunner.Run(logger, confined, NewProcess(spec.Args))
	if err != nil {
		return 0, NewLaunchErr(errorspkg.Wrapf(err, "running '%s'", spec.Args[0]))
	}
	logger.Info("process-exited", lager.Data{"exitCode": exitCode})

	return exitCode, nil
}
