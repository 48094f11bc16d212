//go:build linux
// +build linux

package unpacker

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// changeModTime leaves the access time alone and does not follow symlinks.
func changeModTime(path string, modTime time.Time) error {
	ts := []unix.Timespec{
		{Sec: 0, Nsec: unix.UTIME_OMIT},
		unix.NsecToTimespec(modTime.UnixNano()),
	}

	err := unix.UtimesNanoAt(unix.AT_FDCWD, path, ts, unix.AT_SYMLINK_NOFOLLOW)
	if err == unix.ENOSYS {
		return os.Chtimes(path, time.Now(), modTime)
	}

	return err
}
