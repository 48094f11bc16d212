package groot_test

import (
	"errors"
	"time"

	grootpkg "code.cloudfoundry.org/grootrun/groot"
	"code.cloudfoundry.org/grootrun/groot/grootfakes"
	"code.cloudfoundry.org/grootrun/sandbox"
	"code.cloudfoundry.org/grootrun/sandbox/sandboxfakes"
	"code.cloudfoundry.org/grootrun/testhelpers"
	"code.cloudfoundry.org/lager/v3"
	"code.cloudfoundry.org/lager/v3/lagertest"
	specs "github.com/opencontainers/runtime-spec/specs-go"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("I AM GROOT, the Orchestrator", func() {
	var (
		fakeWorkspaceBuilder *grootfakes.FakeWorkspaceBuilder
		fakeAuthenticator    *grootfakes.FakeAuthenticator
		fakeManifestResolver *grootfakes.FakeManifestResolver
		fakeLayerPuller      *grootfakes.FakeLayerPuller
		fakeIsolator         *grootfakes.FakeIsolator
		fakeProcessRunner    *grootfakes.FakeProcessRunner
		fakeMetricsEmitter   *grootfakes.FakeMetricsEmitter

		confined *sandbox.Confined
		layers   []grootpkg.Layer
		runSpec  grootpkg.RunSpec
		events   []string

		groot  *grootpkg.Groot
		logger lager.Logger
	)

	record := func(event string) {
		events = append(events, event)
	}

	BeforeEach(func() {
		logger = lagertest.NewTestLogger("groot")
		events = []string{}

		rootChanged, err := sandbox.New(new(sandboxfakes.FakeSyscaller), "/tmp/grootrun-ws").ChangeRoot(logger)
		Expect(err).NotTo(HaveOccurred())
		confined, err = rootChanged.IsolatePIDs(logger)
		Expect(err).NotTo(HaveOccurred())

		layers = []grootpkg.Layer{
			{Digest: "sha256:1111111111111111111111111111111111111111111111111111111111111111"},
			{Digest: "sha256:2222222222222222222222222222222222222222222222222222222222222222"},
		}

		fakeWorkspaceBuilder = new(grootfakes.FakeWorkspaceBuilder)
		fakeWorkspaceBuilder.BuildStub = func(lager.Logger) (grootpkg.Workspace, error) {
			record("build")
			return grootpkg.Workspace{Path: "/tmp/grootrun-ws"}, nil
		}

		fakeAuthenticator = new(grootfakes.FakeAuthenticator)
		fakeAuthenticator.TokenStub = func(lager.Logger, string) (string, error) {
			record("token")
			return "a-token", nil
		}

		fakeManifestResolver = new(grootfakes.FakeManifestResolver)
		fakeManifestResolver.ResolveStub = func(lager.Logger, grootpkg.ImageRef, string, string) ([]grootpkg.Layer, error) {
			record("resolve")
			return layers, nil
		}

		fakeLayerPuller = new(grootfakes.FakeLayerPuller)
		fakeLayerPuller.PullStub = func(lager.Logger, grootpkg.PullSpec) error {
			record("pull")
			return nil
		}

		fakeIsolator = new(grootfakes.FakeIsolator)
		fakeIsolator.IsolateStub = func(lager.Logger, string) (*sandbox.Confined, error) {
			record("isolate")
			return confined, nil
		}

		fakeProcessRunner = new(grootfakes.FakeProcessRunner)
		fakeProcessRunner.RunStub = func(lager.Logger, *sandbox.Confined, specs.Process) (int, error) {
			record("run")
			return 0, nil
		}

		fakeMetricsEmitter = new(grootfakes.FakeMetricsEmitter)

		runSpec = grootpkg.RunSpec{
			Image:        "busybox:1.36",
			Architecture: "arm64",
			Args:         []string{"/bin/echo", "hello"},
		}
	})

	JustBeforeEach(func() {
		groot = grootpkg.IamGroot(
			fakeWorkspaceBuilder, fakeAuthenticator, fakeManifestResolver,
			fakeLayerPuller, fakeIsolator, fakeProcessRunner, fakeMetricsEmitter,
		)
	})

	Describe("Run", func() {
		It("runs every stage in order", func() {
			_, err := groot.Run(logger, runSpec)
			Expect(err).NotTo(HaveOccurred())

			Expect(events).To(Equal([]string{"build", "token", "resolve", "pull", "isolate", "run"}))
		})

		It("asks for a token scoped to the library repository", func() {
			_, err := groot.Run(logger, runSpec)
			Expect(err).NotTo(HaveOccurred())

			_, repository := fakeAuthenticator.TokenArgsForCall(0)
			Expect(repository).To(Equal("library/busybox"))
		})

		It("resolves the manifest for the image and architecture with the token", func() {
			_, err := groot.Run(logger, runSpec)
			Expect(err).NotTo(HaveOccurred())

			_, ref, architecture, token := fakeManifestResolver.ResolveArgsForCall(0)
			Expect(ref).To(Equal(grootpkg.ImageRef{Name: "busybox", Tag: "1.36"}))
			Expect(architecture).To(Equal("arm64"))
			Expect(token).To(Equal("a-token"))
		})

		It("pulls the resolved layers into the workspace", func() {
			_, err := groot.Run(logger, runSpec)
			Expect(err).NotTo(HaveOccurred())

			_, pullSpec := fakeLayerPuller.PullArgsForCall(0)
			Expect(pullSpec).To(Equal(grootpkg.PullSpec{
				Image:      grootpkg.ImageRef{Name: "busybox", Tag: "1.36"},
				Token:      "a-token",
				Layers:     layers,
				TargetPath: "/tmp/grootrun-ws",
			}))
		})

		It("isolates the process in the workspace", func() {
			_, err := groot.Run(logger, runSpec)
			Expect(err).NotTo(HaveOccurred())

			_, rootPath := fakeIsolator.IsolateArgsForCall(0)
			Expect(rootPath).To(Equal("/tmp/grootrun-ws"))
		})

		It("runs the command confined with an empty environment", func() {
			_, err := groot.Run(logger, runSpec)
			Expect(err).NotTo(HaveOccurred())

			_, runConfined, process := fakeProcessRunner.RunArgsForCall(0)
			Expect(runConfined).To(BeIdenticalTo(confined))
			Expect(process.Args).To(Equal([]string{"/bin/echo", "hello"}))
			Expect(process.Env).To(BeEmpty())
			Expect(process.Cwd).To(Equal("/"))
		})

		It("emits the preparation time before isolating", func() {
			fakeMetricsEmitter.TryEmitDurationFromStub = func(_ lager.Logger, name string, _ time.Time) {
				record("metric:" + name)
			}

			_, err := groot.Run(logger, runSpec)
			Expect(err).NotTo(HaveOccurred())

			Expect(events).To(Equal([]string{
				"build", "token", "resolve", "pull",
				"metric:" + grootpkg.MetricRunPreparationTime,
				"isolate", "run",
			}))
		})

		It("returns the exit code of the command", func() {
			fakeProcessRunner.RunStub = nil
			fakeProcessRunner.RunReturns(7, nil)

			exitCode, err := groot.Run(logger, runSpec)
			Expect(err).NotTo(HaveOccurred())
			Expect(exitCode).To(Equal(7))
		})

		Context("when the image has no tag", func() {
			BeforeEach(func() {
				runSpec.Image = "alpine"
			})

			It("uses latest", func() {
				_, err := groot.Run(logger, runSpec)
				Expect(err).NotTo(HaveOccurred())

				_, ref, _, _ := fakeManifestResolver.ResolveArgsForCall(0)
				Expect(ref.Tag).To(Equal("latest"))
			})
		})

		Context("when there is no command", func() {
			BeforeEach(func() {
				runSpec.Args = []string{}
			})

			It("returns an error before doing anything", func() {
				_, err := groot.Run(logger, runSpec)
				Expect(err).To(MatchError("no command to run"))
				Expect(events).To(BeEmpty())
			})
		})

		Context("when the image reference is invalid", func() {
			BeforeEach(func() {
				runSpec.Image = "busybox:a:b"
			})

			It("returns an error before building the workspace", func() {
				_, err := groot.Run(logger, runSpec)
				Expect(err).To(MatchError(ContainSubstring("parsing image reference")))
				Expect(fakeWorkspaceBuilder.BuildCallCount()).To(BeZero())
			})
		})

		Context("when building the workspace fails", func() {
			BeforeEach(func() {
				fakeWorkspaceBuilder.BuildStub = nil
				fakeWorkspaceBuilder.BuildReturns(grootpkg.Workspace{}, errors.New("no space left"))
			})

			It("returns a workspace error", func() {
				_, err := groot.Run(logger, runSpec)
				Expect(err).To(testhelpers.BeErrorType(grootpkg.WorkspaceErr{}))
				Expect(err).To(MatchError(ContainSubstring("no space left")))
				Expect(fakeAuthenticator.TokenCallCount()).To(BeZero())
			})
		})

		Context("when fetching the token fails", func() {
			BeforeEach(func() {
				fakeAuthenticator.TokenStub = nil
				fakeAuthenticator.TokenReturns("", grootpkg.NewRegistryErr(errors.New("unauthorized")))
			})

			It("keeps the registry error", func() {
				_, err := groot.Run(logger, runSpec)
				Expect(err).To(testhelpers.BeErrorType(grootpkg.RegistryErr{}))
				Expect(err).To(MatchError(ContainSubstring("fetching registry token")))
				Expect(fakeManifestResolver.ResolveCallCount()).To(BeZero())
			})
		})

		Context("when there is no manifest for the architecture", func() {
			BeforeEach(func() {
				fakeManifestResolver.ResolveStub = nil
				fakeManifestResolver.ResolveReturns(nil, grootpkg.NewNoManifestForArchitectureErr(errors.New("no manifest for architecture `arm64`")))
			})

			It("fails without pulling any layer", func() {
				_, err := groot.Run(logger, runSpec)
				Expect(err).To(testhelpers.BeErrorType(grootpkg.NoManifestForArchitectureErr{}))
				Expect(err).To(MatchError(ContainSubstring("resolving manifest for `busybox:1.36`")))
				Expect(fakeLayerPuller.PullCallCount()).To(BeZero())
				Expect(fakeIsolator.IsolateCallCount()).To(BeZero())
			})
		})

		Context("when pulling the layers fails", func() {
			BeforeEach(func() {
				fakeLayerPuller.PullStub = nil
				fakeLayerPuller.PullReturns(grootpkg.NewUnpackErr(errors.New("bad tar")))
			})

			It("never isolates the process", func() {
				_, err := groot.Run(logger, runSpec)
				Expect(err).To(testhelpers.BeErrorType(grootpkg.UnpackErr{}))
				Expect(err).To(MatchError(ContainSubstring("pulling layers")))
				Expect(fakeIsolator.IsolateCallCount()).To(BeZero())
				Expect(fakeProcessRunner.RunCallCount()).To(BeZero())
			})

			It("does not emit the preparation time", func() {
				_, err := groot.Run(logger, runSpec)
				Expect(err).To(HaveOccurred())
				Expect(fakeMetricsEmitter.TryEmitDurationFromCallCount()).To(BeZero())
			})
		})

		Context("when isolating fails", func() {
			BeforeEach(func() {
				fakeIsolator.IsolateStub = nil
				fakeIsolator.IsolateReturns(nil, errors.New("operation not permitted"))
			})

			It("returns an isolation error", func() {
				_, err := groot.Run(logger, runSpec)
				Expect(err).To(testhelpers.BeErrorType(grootpkg.IsolationErr{}))
				Expect(err).To(MatchError(ContainSubstring("operation not permitted")))
				Expect(fakeProcessRunner.RunCallCount()).To(BeZero())
			})
		})

		Context("when the command cannot be started", func() {
			BeforeEach(func() {
				fakeProcessRunner.RunStub = nil
				fakeProcessRunner.RunReturns(0, errors.New("executable file not found"))
			})

			It("returns a launch error naming the command", func() {
				_, err := groot.Run(logger, runSpec)
				Expect(err).To(testhelpers.BeErrorType(grootpkg.LaunchErr{}))
				Expect(err).To(MatchError(ContainSubstring("running '/bin/echo'")))
			})
		})
	})
})
