package testhelpers

import (
	"archive/tar"
	"bytes"
	"time"

	"github.com/klauspost/compress/gzip"
	. "github.com/onsi/gomega"
	digestpkg "github.com/opencontainers/go-digest"
)

type TarEntry struct {
	Name     string
	Type     byte
	Mode     int64
	Contents string
	Linkname string
	ModTime  time.Time
}

func FileEntry(name, contents string) TarEntry {
	return TarEntry{Name: name, Type: tar.TypeReg, Mode: 0644, Contents: contents}
}

func DirEntry(name string) TarEntry {
	return TarEntry{Name: name, Type: tar.TypeDir, Mode: 0755}
}

func SymlinkEntry(name, linkname string) TarEntry {
	return TarEntry{Name: name, Type: tar.TypeSymlink, Mode: 0777, Linkname: linkname}
}

func HardlinkEntry(name, linkname string) TarEntry {
	return TarEntry{Name: name, Type: tar.TypeLink, Mode: 0644, Linkname: linkname}
}

// TarStream builds an uncompressed tar archive holding the entries in order.
func TarStream(entries ...TarEntry) []byte {
	buffer := bytes.NewBuffer([]byte{})
	tarWriter := tar.NewWriter(buffer)

	for _, entry := range entries {
		modTime := entry.ModTime
		if modTime.IsZero() {
			modTime = time.Unix(1500000000, 0)
		}

		header := &tar.Header{
			Name:     entry.Name,
			Typeflag: entry.Type,
			Mode:     entry.Mode,
			Linkname: entry.Linkname,
			ModTime:  modTime,
		}
		if entry.Type == tar.TypeReg {
			header.Size = int64(len(entry.Contents))
		}

		Expect(tarWriter.WriteHeader(header)).To(Succeed())
		if entry.Type == tar.TypeReg {
			_, err := tarWriter.Write([]byte(entry.Contents))
			Expect(err).NotTo(HaveOccurred())
		}
	}

	Expect(tarWriter.Close()).To(Succeed())
	return buffer.Bytes()
}

// GzipLayer returns a compressed layer blob and its digest.
func GzipLayer(entries ...TarEntry) ([]byte, digestpkg.Digest) {
	return Gzip(TarStream(entries...))
}

func Gzip(contents []byte) ([]byte, digestpkg.Digest) {
	buffer := bytes.NewBuffer([]byte{})
	gzipWriter := gzip.NewWriter(buffer)
	_, err := gzipWriter.Write(contents)
	Expect(err).NotTo(HaveOccurred())
	Expect(gzipWriter.Close()).To(Succeed())

	return buffer.Bytes(), digestpkg.FromBytes(buffer.Bytes())
}
