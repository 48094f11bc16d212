package workspace // import "code.cloudfoundry.org/grootrun/workspace"

import (
	"os"
	"path/filepath"

	"code.cloudfoundry.org/grootrun/groot"
	"code.cloudfoundry.org/lager/v3"
	errorspkg "github.com/pkg/errors"
	shortid "github.com/ventu-io/go-shortid"
)

const (
	namePrefix      = "grootrun-"
	DevNullPath     = "dev/null"
	devDirMode      = 0755
	devNullMode     = 0666
	parentDirectory = 0700
)

type Builder struct {
	parentPath  string
	idGenerator func() (string, error)
}

// NewBuilder returns a builder that creates workspaces under parentPath. An
// empty parentPath means the OS temp directory; a nil idGenerator means
// shortid.
func NewBuilder(parentPath string, idGenerator func() (string, error)) *Builder {
	if parentPath == "" {
		parentPath = os.TempDir()
	}
	if idGenerator == nil {
		idGenerator = shortid.Generate
	}

	return &Builder{
		parentPath:  parentPath,
		idGenerator: idGenerator,
	}
}

// Build creates a fresh directory holding an empty dev/null. The file is a
// stand-in for programs that open the null device, not a device node.
func (b *Builder) Build(logger lager.Logger) (groot.Workspace, error) {
	logger = logger.Session("building-workspace", lager.Data{"parentPath": b.parentPath})
	logger.Debug("starting")
	defer logger.Debug("ending")

	if err := b.ensureParent(logger); err != nil {
		return groot.Workspace{}, err
	}

	id, err := b.idGenerator()
	if err != nil {
		return groot.Workspace{}, errorspkg.Wrap(err, "generating workspace id")
	}

	workspacePath, err := os.MkdirTemp(b.parentPath, namePrefix+id+"-")
	if err != nil {
		logger.Error("making-workspace-failed", err)
		return groot.Workspace{}, errorspkg.Wrapf(err, "making workspace directory in `%s`", b.parentPath)
	}
	logger.Debug("workspace-created", lager.Data{"path": workspacePath})

	if err := os.Mkdir(filepath.Join(workspacePath, "dev"), devDirMode); err != nil {
		return groot.Workspace{}, errorspkg.Wrap(err, "making dev directory")
	}

	devNull, err := os.OpenFile(filepath.Join(workspacePath, DevNullPath), os.O_CREATE|os.O_EXCL|os.O_WRONLY, devNullMode)
	if err != nil {
		return groot.Workspace{}, errorspkg.Wrap(err, "creating dev/null placeholder")
	}
	if err := devNull.Close(); err != nil {
		return groot.Workspace{}, errorspkg.Wrap(err, "closing dev/null placeholder")
	}

	// open is subject to umask
	if err := os.Chmod(devNull.Name(), devNullMode); err != nil {
		return groot.Workspace{}, errorspkg.Wrap(err, "chmoding dev/null placeholder")
	}

	return groot.Workspace{Path: workspacePath}, nil
}

func (b *Builder) ensureParent(logger lager.Logger) error {
	if info, err := os.Stat(b.parentPath); err == nil {
		if !info.IsDir() {
			return errorspkg.Errorf("workspace parent `%s` is not a directory", b.parentPath)
		}

		return nil
	}

	if err := os.MkdirAll(b.parentPath, parentDirectory); err != nil {
		logger.Error("making-parent-failed", err)
		return errorspkg.Wrapf(err, "making workspace parent `%s`", b.parentPath)
	}

	return nil
}
