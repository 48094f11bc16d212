package unpacker_test

import (
	"archive/tar"
	"bytes"
	"os"
	"path/filepath"
	"time"

	"code.cloudfoundry.org/grootrun/base_image_puller"
	"code.cloudfoundry.org/grootrun/base_image_puller/unpacker"
	"code.cloudfoundry.org/grootrun/testhelpers"
	"code.cloudfoundry.org/lager/v3"
	"code.cloudfoundry.org/lager/v3/lagertest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Tar", func() {
	var (
		logger lager.Logger

		tempDir    string
		targetPath string

		tarUnpacker *unpacker.TarUnpacker
	)

	unpack := func(entries ...testhelpers.TarEntry) (base_image_puller.UnpackOutput, error) {
		return tarUnpacker.Unpack(logger, base_image_puller.UnpackSpec{
			Stream:     bytes.NewReader(testhelpers.TarStream(entries...)),
			TargetPath: targetPath,
		})
	}

	readFile := func(path string) string {
		contents, err := os.ReadFile(filepath.Join(targetPath, path))
		Expect(err).NotTo(HaveOccurred())
		return string(contents)
	}

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "")
		Expect(err).NotTo(HaveOccurred())
		targetPath = filepath.Join(tempDir, "rootfs")

		tarUnpacker = unpacker.NewTarUnpacker()
		logger = lagertest.NewTestLogger("tar-unpacker")
	})

	AfterEach(func() {
		Expect(os.RemoveAll(tempDir)).To(Succeed())
	})

	It("writes the entries in the target directory", func() {
		output, err := unpack(
			testhelpers.FileEntry("a_file", "hello-world"),
			testhelpers.DirEntry("subdir/"),
			testhelpers.DirEntry("subdir/subdir2/"),
			testhelpers.FileEntry("subdir/subdir2/another_file", "goodbye-world"),
		)
		Expect(err).NotTo(HaveOccurred())

		Expect(readFile("a_file")).To(Equal("hello-world"))
		Expect(readFile("subdir/subdir2/another_file")).To(Equal("goodbye-world"))
		Expect(output.BytesWritten).To(Equal(int64(len("hello-world") + len("goodbye-world"))))
	})

	It("applies the entry permissions", func() {
		entry := testhelpers.FileEntry("script", "#!/bin/sh")
		entry.Mode = 0751
		dirEntry := testhelpers.DirEntry("private")
		dirEntry.Mode = 0700

		_, err := unpack(entry, dirEntry)
		Expect(err).NotTo(HaveOccurred())

		stat, err := os.Stat(filepath.Join(targetPath, "script"))
		Expect(err).NotTo(HaveOccurred())
		Expect(stat.Mode().Perm()).To(Equal(os.FileMode(0751)))

		stat, err = os.Stat(filepath.Join(targetPath, "private"))
		Expect(err).NotTo(HaveOccurred())
		Expect(stat.Mode().Perm()).To(Equal(os.FileMode(0700)))
	})

	It("applies the entry modification time", func() {
		modTime := time.Date(2012, time.March, 4, 5, 6, 7, 0, time.UTC)
		entry := testhelpers.FileEntry("old_file", "old")
		entry.ModTime = modTime

		_, err := unpack(entry)
		Expect(err).NotTo(HaveOccurred())

		stat, err := os.Stat(filepath.Join(targetPath, "old_file"))
		Expect(err).NotTo(HaveOccurred())
		Expect(stat.ModTime().Unix()).To(Equal(modTime.Unix()))
	})

	It("creates symlinks without following them", func() {
		_, err := unpack(
			testhelpers.FileEntry("a_file", "hello"),
			testhelpers.SymlinkEntry("symlink", "a_file"),
		)
		Expect(err).NotTo(HaveOccurred())

		linkname, err := os.Readlink(filepath.Join(targetPath, "symlink"))
		Expect(err).NotTo(HaveOccurred())
		Expect(linkname).To(Equal("a_file"))
	})

	It("creates hardlinks relative to the target directory", func() {
		_, err := unpack(
			testhelpers.FileEntry("bin/busybox", "multi-call"),
			testhelpers.HardlinkEntry("bin/sh", "bin/busybox"),
		)
		Expect(err).NotTo(HaveOccurred())

		busyboxStat, err := os.Stat(filepath.Join(targetPath, "bin", "busybox"))
		Expect(err).NotTo(HaveOccurred())
		shStat, err := os.Stat(filepath.Join(targetPath, "bin", "sh"))
		Expect(err).NotTo(HaveOccurred())
		Expect(os.SameFile(busyboxStat, shStat)).To(BeTrue())
	})

	It("extracts whiteout entries as ordinary files", func() {
		_, err := unpack(
			testhelpers.FileEntry("etc/motd", "welcome"),
			testhelpers.FileEntry("etc/.wh.motd", ""),
			testhelpers.FileEntry("etc/.wh..wh..opq", ""),
		)
		Expect(err).NotTo(HaveOccurred())

		Expect(readFile("etc/motd")).To(Equal("welcome"))
		Expect(filepath.Join(targetPath, "etc", ".wh.motd")).To(BeARegularFile())
		Expect(filepath.Join(targetPath, "etc", ".wh..wh..opq")).To(BeARegularFile())
	})

	It("skips device entries", func() {
		_, err := unpack(
			testhelpers.TarEntry{Name: "dev/tty", Type: tar.TypeChar, Mode: 0666},
			testhelpers.TarEntry{Name: "dev/sda", Type: tar.TypeBlock, Mode: 0660},
			testhelpers.TarEntry{Name: "run/fifo", Type: tar.TypeFifo, Mode: 0600},
		)
		Expect(err).NotTo(HaveOccurred())

		Expect(filepath.Join(targetPath, "dev", "tty")).NotTo(BeAnExistingFile())
		Expect(filepath.Join(targetPath, "dev", "sda")).NotTo(BeAnExistingFile())
		Expect(filepath.Join(targetPath, "run", "fifo")).NotTo(BeAnExistingFile())
	})

	Describe("later entries", func() {
		It("overwrite files written by earlier layers", func() {
			_, err := unpack(testhelpers.FileEntry("etc/hostname", "layer-one"))
			Expect(err).NotTo(HaveOccurred())
			_, err = unpack(testhelpers.FileEntry("etc/hostname", "two"))
			Expect(err).NotTo(HaveOccurred())

			Expect(readFile("etc/hostname")).To(Equal("two"))
		})

		It("replace a directory with a file", func() {
			_, err := unpack(
				testhelpers.DirEntry("thing/"),
				testhelpers.FileEntry("thing/inside", "inside"),
			)
			Expect(err).NotTo(HaveOccurred())
			_, err = unpack(testhelpers.FileEntry("thing", "now a file"))
			Expect(err).NotTo(HaveOccurred())

			Expect(readFile("thing")).To(Equal("now a file"))
		})

		It("replace a file with a directory", func() {
			_, err := unpack(testhelpers.FileEntry("thing", "a file"))
			Expect(err).NotTo(HaveOccurred())
			_, err = unpack(
				testhelpers.DirEntry("thing/"),
				testhelpers.FileEntry("thing/inside", "inside"),
			)
			Expect(err).NotTo(HaveOccurred())

			Expect(filepath.Join(targetPath, "thing")).To(BeADirectory())
			Expect(readFile("thing/inside")).To(Equal("inside"))
		})

		It("keep the contents of a directory that is declared again", func() {
			_, err := unpack(
				testhelpers.DirEntry("usr/"),
				testhelpers.FileEntry("usr/one", "one"),
			)
			Expect(err).NotTo(HaveOccurred())
			_, err = unpack(
				testhelpers.DirEntry("usr/"),
				testhelpers.FileEntry("usr/two", "two"),
			)
			Expect(err).NotTo(HaveOccurred())

			Expect(readFile("usr/one")).To(Equal("one"))
			Expect(readFile("usr/two")).To(Equal("two"))
		})

		It("replace a symlink instead of writing through it", func() {
			_, err := unpack(
				testhelpers.FileEntry("target", "original"),
				testhelpers.SymlinkEntry("link", "target"),
			)
			Expect(err).NotTo(HaveOccurred())
			_, err = unpack(testhelpers.FileEntry("link", "replaced"))
			Expect(err).NotTo(HaveOccurred())

			Expect(readFile("target")).To(Equal("original"))
			Expect(readFile("link")).To(Equal("replaced"))
			stat, err := os.Lstat(filepath.Join(targetPath, "link"))
			Expect(err).NotTo(HaveOccurred())
			Expect(stat.Mode().IsRegular()).To(BeTrue())
		})

		It("do not write through a hardlink", func() {
			_, err := unpack(
				testhelpers.FileEntry("bin/busybox", "multi-call"),
				testhelpers.HardlinkEntry("bin/sh", "bin/busybox"),
			)
			Expect(err).NotTo(HaveOccurred())
			_, err = unpack(testhelpers.FileEntry("bin/sh", "dash"))
			Expect(err).NotTo(HaveOccurred())

			Expect(readFile("bin/busybox")).To(Equal("multi-call"))
			Expect(readFile("bin/sh")).To(Equal("dash"))
		})
	})

	Describe("containment", func() {
		var outsidePath string

		BeforeEach(func() {
			outsidePath = filepath.Join(tempDir, "outside")
			Expect(os.Mkdir(outsidePath, 0755)).To(Succeed())
		})

		It("keeps parent directory references inside the target", func() {
			_, err := unpack(testhelpers.FileEntry("../outside/escaped", "gotcha"))
			Expect(err).NotTo(HaveOccurred())

			Expect(filepath.Join(outsidePath, "escaped")).NotTo(BeAnExistingFile())
			Expect(readFile("outside/escaped")).To(Equal("gotcha"))
		})

		It("does not follow symlinks out of the target", func() {
			_, err := unpack(
				testhelpers.SymlinkEntry("evil", outsidePath),
				testhelpers.FileEntry("evil/escaped", "gotcha"),
			)
			Expect(err).NotTo(HaveOccurred())

			Expect(filepath.Join(outsidePath, "escaped")).NotTo(BeAnExistingFile())
		})

		It("does not hardlink files from outside the target", func() {
			Expect(os.WriteFile(filepath.Join(outsidePath, "secret"), []byte("secret"), 0600)).To(Succeed())

			_, err := unpack(testhelpers.HardlinkEntry("stolen", "../outside/secret"))
			Expect(err).To(HaveOccurred())
			Expect(filepath.Join(targetPath, "stolen")).NotTo(BeAnExistingFile())
		})
	})

	Context("when the target directory does not exist", func() {
		It("creates it", func() {
			_, err := unpack(testhelpers.FileEntry("a_file", "hello"))
			Expect(err).NotTo(HaveOccurred())
			Expect(targetPath).To(BeADirectory())
		})
	})

	Context("when the stream is not a tar archive", func() {
		It("returns an error", func() {
			_, err := tarUnpacker.Unpack(logger, base_image_puller.UnpackSpec{
				Stream:     bytes.NewReader(bytes.Repeat([]byte("x"), 1024)),
				TargetPath: targetPath,
			})
			Expect(err).To(MatchError(ContainSubstring("reading tar entry")))
		})
	})
})
