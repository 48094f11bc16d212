package groot // import "code.cloudfoundry.org/grootrun/groot"

import (
	"strings"
	"time"

	"code.cloudfoundry.org/grootrun/sandbox"
	"code.cloudfoundry.org/lager/v3"
	digestpkg "github.com/opencontainers/go-digest"
	specs "github.com/opencontainers/runtime-spec/specs-go"
	errorspkg "github.com/pkg/errors"
)

const (
	DefaultTag        = "latest"
	LibraryNamespace  = "library"
	imageTagSeparator = ":"
)

//go:generate counterfeiter . WorkspaceBuilder
//go:generate counterfeiter . Authenticator
//go:generate counterfeiter . ManifestResolver
//go:generate counterfeiter . LayerPuller
//go:generate counterfeiter . Isolator
//go:generate counterfeiter . ProcessRunner
//go:generate counterfeiter . MetricsEmitter

type ImageRef struct {
	Name string
	Tag  string
}

// ParseImageRef splits ref on its single tag separator. The name and tag are
// taken verbatim, even when one of them is empty; without a separator the tag
// is "latest".
func ParseImageRef(ref string) (ImageRef, error) {
	if ref == "" {
		return ImageRef{}, errorspkg.New("image reference is empty")
	}

	parts := strings.Split(ref, imageTagSeparator)
	if len(parts) > 2 {
		return ImageRef{}, errorspkg.Errorf("image reference `%s` has more than one tag", ref)
	}

	imageRef := ImageRef{Name: parts[0], Tag: DefaultTag}
	if len(parts) == 2 {
		imageRef.Tag = parts[1]
	}

	return imageRef, nil
}

func (r ImageRef) Repository() string {
	return LibraryNamespace + "/" + r.Name
}

func (r ImageRef) String() string {
	return r.Name + imageTagSeparator + r.Tag
}

type Layer struct {
	Digest    digestpkg.Digest
	MediaType string
	Size      int64
}

type Workspace struct {
	Path string
}

type PullSpec struct {
	Image      ImageRef
	Token      string
	Layers     []Layer
	TargetPath string
}

type RunSpec struct {
	Image        string
	Architecture string
	Args         []string
}

type WorkspaceBuilder interface {
	Build(logger lager.Logger) (Workspace, error)
}

type Authenticator interface {
	Token(logger lager.Logger, repository string) (string, error)
}

type ManifestResolver interface {
	Resolve(logger lager.Logger, ref ImageRef, architecture, token string) ([]Layer, error)
}

type LayerPuller interface {
	Pull(logger lager.Logger, spec PullSpec) error
}

type Isolator interface {
	Isolate(logger lager.Logger, rootPath string) (*sandbox.Confined, error)
}

type ProcessRunner interface {
	Run(logger lager.Logger, confined *sandbox.Confined, process specs.Process) (int, error)
}

type MetricsEmitter interface {
	TryEmitDuration(logger lager.Logger, name string, duration time.Duration)
	TryEmitDurationFrom(logger lager.Logger, name string, from time.Time)
}

// NewProcess describes the contained command: it starts at the new root and
// inherits no environment variables.
func NewProcess(args []string) specs.Process {
	return specs.Process{
		Args: args,
		Cwd:  "/",
		Env:  []string{},
	}
}
