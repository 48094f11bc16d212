package unpacker // import "code.cloudfoundry.org/grootrun/base_image_puller/unpacker"

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"

	"code.cloudfoundry.org/grootrun/base_image_puller"
	"code.cloudfoundry.org/lager/v3"
	securejoin "github.com/cyphar/filepath-securejoin"
	errorspkg "github.com/pkg/errors"
)

// TarUnpacker writes the entries of an uncompressed tar stream onto a
// directory. An entry replaces whatever a previous entry or layer left at the
// same path. Whiteout entries are written as ordinary files.
type TarUnpacker struct{}

func NewTarUnpacker() *TarUnpacker {
	return &TarUnpacker{}
}

func (u *TarUnpacker) Unpack(logger lager.Logger, spec base_image_puller.UnpackSpec) (base_image_puller.UnpackOutput, error) {
	logger = logger.Session("unpacking-with-tar", lager.Data{"targetPath": spec.TargetPath})
	logger.Debug("starting")
	defer logger.Debug("ending")

	if _, err := os.Stat(spec.TargetPath); err != nil {
		if err := os.Mkdir(spec.TargetPath, 0755); err != nil {
			return base_image_puller.UnpackOutput{}, errorspkg.Wrapf(err, "making destination directory `%s`", spec.TargetPath)
		}
	}

	output := base_image_puller.UnpackOutput{}
	tarReader := tar.NewReader(spec.Stream)
	for {
		tarHeader, err := tarReader.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return output, errorspkg.Wrap(err, "reading tar entry")
		}

		entryPath, err := resolve(spec.TargetPath, tarHeader.Name)
		if err != nil {
			return output, err
		}

		if entryPath == filepath.Clean(spec.TargetPath) && tarHeader.Typeflag != tar.TypeDir {
			logger.Debug("skipping-root-entry", lager.Data{"name": tarHeader.Name, "type": string(tarHeader.Typeflag)})
			continue
		}

		written, err := u.handleEntry(logger, spec.TargetPath, entryPath, tarReader, tarHeader)
		if err != nil {
			return output, err
		}
		output.BytesWritten += written
	}

	return output, nil
}

func (u *TarUnpacker) handleEntry(logger lager.Logger, targetPath, entryPath string, tarReader *tar.Reader, tarHeader *tar.Header) (int64, error) {
	switch tarHeader.Typeflag {
	case tar.TypeBlock, tar.TypeChar, tar.TypeFifo:
		// ignore devices
		logger.Debug("skipping-special-file", lager.Data{"name": tarHeader.Name})
		return 0, nil

	case tar.TypeLink, tar.TypeSymlink, tar.TypeDir, tar.TypeReg:
		if err := ensureParent(entryPath); err != nil {
			return 0, err
		}
	}

	switch tarHeader.Typeflag {
	case tar.TypeLink:
		return 0, u.createLink(targetPath, entryPath, tarHeader)

	case tar.TypeSymlink:
		return 0, u.createSymlink(entryPath, tarHeader)

	case tar.TypeDir:
		return 0, u.createDirectory(entryPath, tarHeader)

	case tar.TypeReg:
		return u.createRegularFile(entryPath, tarHeader, tarReader)
	}

	logger.Debug("skipping-unsupported-entry", lager.Data{"name": tarHeader.Name, "type": string(tarHeader.Typeflag)})
	return 0, nil
}

func (u *TarUnpacker) createDirectory(path string, tarHeader *tar.Header) error {
	if err := removeExisting(path, true); err != nil {
		return err
	}

	if _, err := os.Lstat(path); err != nil {
		if err = os.Mkdir(path, tarHeader.FileInfo().Mode()); err != nil {
			if os.IsPermission(err) {
				return permissionErr(tarHeader)
			}
			return errorspkg.Wrapf(err, "creating directory `%s`", path)
		}
	}

	if err := chown(path, tarHeader); err != nil {
		return err
	}

	// mkdir is subject to umask
	if err := os.Chmod(path, tarHeader.FileInfo().Mode()); err != nil {
		return errorspkg.Wrapf(err, "chmoding directory `%s`", path)
	}

	if err := changeModTime(path, tarHeader.ModTime); err != nil {
		return errorspkg.Wrapf(err, "setting the modtime for directory `%s`", path)
	}

	return nil
}

func (u *TarUnpacker) createSymlink(path string, tarHeader *tar.Header) error {
	if err := removeExisting(path, false); err != nil {
		return err
	}

	if err := os.Symlink(tarHeader.Linkname, path); err != nil {
		return errorspkg.Wrapf(err, "create symlink `%s` -> `%s`", tarHeader.Linkname, path)
	}

	if err := chown(path, tarHeader); err != nil {
		return err
	}

	if err := changeModTime(path, tarHeader.ModTime); err != nil {
		return errorspkg.Wrapf(err, "setting the modtime for the symlink `%s`", path)
	}

	return nil
}

func (u *TarUnpacker) createLink(targetPath, path string, tarHeader *tar.Header) error {
	linkTarget, err := resolve(targetPath, tarHeader.Linkname)
	if err != nil {
		return err
	}

	if linkTarget == path {
		return nil
	}

	if err := removeExisting(path, false); err != nil {
		return err
	}

	if err := os.Link(linkTarget, path); err != nil {
		return errorspkg.Wrapf(err, "create hardlink `%s` -> `%s`", tarHeader.Linkname, path)
	}

	return nil
}

func (u *TarUnpacker) createRegularFile(path string, tarHeader *tar.Header, tarReader *tar.Reader) (int64, error) {
	if err := removeExisting(path, false); err != nil {
		return 0, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, tarHeader.FileInfo().Mode())
	if err != nil {
		if os.IsPermission(err) {
			return 0, permissionErr(tarHeader)
		}
		return 0, errorspkg.Wrapf(err, "creating file `%s`", path)
	}

	written, err := io.Copy(file, tarReader)
	if err != nil {
		file.Close()
		return written, errorspkg.Wrapf(err, "writing to file `%s`", path)
	}

	if err := file.Close(); err != nil {
		return written, errorspkg.Wrapf(err, "closing file `%s`", path)
	}

	if err := chown(path, tarHeader); err != nil {
		return written, err
	}

	// open is subject to umask
	if err := os.Chmod(path, tarHeader.FileInfo().Mode()); err != nil {
		return written, errorspkg.Wrapf(err, "chmoding file `%s`", path)
	}

	if err := changeModTime(path, tarHeader.ModTime); err != nil {
		return written, errorspkg.Wrapf(err, "setting the modtime for file `%s`", path)
	}

	return written, nil
}

// resolve maps an entry name to a path below root. Symlinks in the parent
// directories are followed without leaving root; the last component is kept
// as is so that an entry replaces a symlink instead of its target.
func resolve(root, name string) (string, error) {
	cleanName := filepath.Clean(string(filepath.Separator) + name)
	if cleanName == string(filepath.Separator) {
		return filepath.Clean(root), nil
	}

	parent, err := securejoin.SecureJoin(root, filepath.Dir(cleanName))
	if err != nil {
		return "", errorspkg.Wrapf(err, "resolving entry `%s`", name)
	}

	return filepath.Join(parent, filepath.Base(cleanName)), nil
}

// layers are not required to declare parent directories
func ensureParent(path string) error {
	parent := filepath.Dir(path)
	if _, err := os.Lstat(parent); err == nil {
		return nil
	}

	if err := os.MkdirAll(parent, 0755); err != nil {
		return errorspkg.Wrapf(err, "creating parent directory `%s`", parent)
	}

	return nil
}

// removeExisting clears the way for a new entry. A directory is only kept
// when the new entry is a directory too.
func removeExisting(path string, keepDirectory bool) error {
	stat, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errorspkg.Wrapf(err, "inspecting `%s`", path)
	}

	if stat.IsDir() {
		if keepDirectory {
			return nil
		}
		if err := os.RemoveAll(path); err != nil {
			return errorspkg.Wrapf(err, "removing directory `%s`", path)
		}
		return nil
	}

	if err := os.Remove(path); err != nil {
		return errorspkg.Wrapf(err, "removing file `%s`", path)
	}

	return nil
}

func chown(path string, tarHeader *tar.Header) error {
	if os.Getuid() != 0 {
		return nil
	}

	if err := os.Lchown(path, tarHeader.Uid, tarHeader.Gid); err != nil {
		return errorspkg.Wrapf(err, "chowning %d:%d `%s`", tarHeader.Uid, tarHeader.Gid, path)
	}

	return nil
}

func permissionErr(tarHeader *tar.Header) error {
	dirName := filepath.Dir(tarHeader.Name)
	return errorspkg.Errorf("'/%s' does not give write permission to its owner. This image can only be unpacked by running as root.", dirName)
}
