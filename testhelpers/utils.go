package testhelpers

import (
	"archive/tar"
	"fmt"
	"math/rand"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// ReseedRandomNumberGenerator reinitialises the global random number generator
// with a new seed value, which incorporates the system time and GinkgoParallelProcess
// id. This should prevent random number-related races between tests which kick
// off at the same time on different Ginkgo nodes.
func ReseedRandomNumberGenerator() {
	rand.Seed(time.Now().UnixNano() + int64(GinkgoParallelProcess()*1000))
}

func NewRandomID() string {
	return fmt.Sprintf("random-id-%d", rand.Int())
}

// SkipIfNonRoot skips tests that change root or create namespaces.
func SkipIfNonRoot() {
	if os.Getuid() != 0 {
		Skip("these tests need to run as root")
	}
}

// ExecutableEntry puts the host file at hostPath into a layer at name.
func ExecutableEntry(name, hostPath string) TarEntry {
	contents, err := os.ReadFile(hostPath)
	Expect(err).NotTo(HaveOccurred())

	return TarEntry{Name: name, Type: tar.TypeReg, Mode: 0755, Contents: string(contents)}
}
