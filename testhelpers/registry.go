package testhelpers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"sync"

	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/registry"
	v1 "github.com/google/go-containerregistry/pkg/v1"
	"github.com/google/go-containerregistry/pkg/v1/empty"
	"github.com/google/go-containerregistry/pkg/v1/mutate"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"github.com/google/go-containerregistry/pkg/v1/tarball"
	"github.com/google/go-containerregistry/pkg/v1/types"
	"github.com/onsi/gomega/ghttp"
	digestpkg "github.com/opencontainers/go-digest"
)

const FakeRegistryToken = "fake-registry-token"

var blobRegexp = regexp.MustCompile(`^/v2/.*/blobs/(sha256:[a-f0-9]+)$`)

// PlatformImage is one entry of a manifest index. Layers are gzip blobs, in
// application order.
type PlatformImage struct {
	Architecture string
	OS           string
	Layers       [][]byte
}

// FakeRegistry serves an in-memory registry and a token endpoint on the same
// address, and records the GET requests it receives.
type FakeRegistry struct {
	server          *ghttp.Server
	registry        http.Handler
	blobHandlers    map[string]http.HandlerFunc
	requests        []string
	tokenRequests   []url.Values
	dockerMediaType bool
	mutex           *sync.RWMutex
}

func NewFakeRegistry() *FakeRegistry {
	return &FakeRegistry{
		registry:     registry.New(registry.Logger(log.New(io.Discard, "", 0))),
		blobHandlers: make(map[string]http.HandlerFunc),
		mutex:        &sync.RWMutex{},
	}
}

// WithDockerMediaTypes makes pushed indexes Docker manifest lists and pushed
// images Docker schema2 manifests instead of their OCI counterparts.
func (r *FakeRegistry) WithDockerMediaTypes() *FakeRegistry {
	r.dockerMediaType = true
	return r
}

func (r *FakeRegistry) Start() {
	r.server = ghttp.NewServer()
	r.server.RouteToHandler("GET", "/token", r.serveToken)

	anyPath := regexp.MustCompile(`.*`)
	for _, method := range []string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE"} {
		r.server.RouteToHandler(method, anyPath, r.serveRegistry)
	}
}

func (r *FakeRegistry) Stop() {
	r.server.Close()
}

func (r *FakeRegistry) URL() string {
	return r.server.URL()
}

func (r *FakeRegistry) AuthURL() string {
	return r.server.URL() + "/token"
}

func (r *FakeRegistry) Addr() string {
	return r.server.Addr()
}

// PushImage pushes a manifest index tagged library/<image>:<tag> with one
// manifest per platform.
func (r *FakeRegistry) PushImage(image, tag string, platforms ...PlatformImage) error {
	ref, err := name.ParseReference(fmt.Sprintf("%s/library/%s:%s", r.Addr(), image, tag), name.Insecure)
	if err != nil {
		return err
	}

	var index v1.ImageIndex = empty.Index
	if r.dockerMediaType {
		index = mutate.IndexMediaType(index, types.DockerManifestList)
	}

	for _, platform := range platforms {
		img, err := r.buildImage(platform)
		if err != nil {
			return err
		}

		osName := platform.OS
		if osName == "" {
			osName = "linux"
		}

		index = mutate.AppendManifests(index, mutate.IndexAddendum{
			Add: img,
			Descriptor: v1.Descriptor{
				Platform: &v1.Platform{Architecture: platform.Architecture, OS: osName},
			},
		})
	}

	if err := remote.WriteIndex(ref, index); err != nil {
		return err
	}

	r.ClearRequests()
	return nil
}

func (r *FakeRegistry) buildImage(platform PlatformImage) (v1.Image, error) {
	var img v1.Image = empty.Image
	if r.dockerMediaType {
		img = mutate.MediaType(img, types.DockerManifestSchema2)
	} else {
		img = mutate.MediaType(img, types.OCIManifestSchema1)
		img = mutate.ConfigMediaType(img, types.OCIConfigJSON)
	}

	for _, blob := range platform.Layers {
		blob := blob
		layer, err := tarball.LayerFromOpener(func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(blob)), nil
		})
		if err != nil {
			return nil, err
		}

		img, err = mutate.AppendLayers(img, layer)
		if err != nil {
			return nil, err
		}
	}

	return img, nil
}

// WhenGettingBlob replaces the registry response for one blob.
func (r *FakeRegistry) WhenGettingBlob(digest digestpkg.Digest, httpHandler http.HandlerFunc) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.blobHandlers[digest.String()] = httpHandler
}

// Requests lists "GET <path>" for every GET received since the last push.
func (r *FakeRegistry) Requests() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return append([]string{}, r.requests...)
}

func (r *FakeRegistry) RequestedBlobs() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	blobDigests := []string{}
	for _, request := range r.requests {
		var path string
		if _, err := fmt.Sscanf(request, "GET %s", &path); err != nil {
			continue
		}
		if match := blobRegexp.FindStringSubmatch(path); match != nil {
			blobDigests = append(blobDigests, match[1])
		}
	}

	return blobDigests
}

func (r *FakeRegistry) TokenRequests() []url.Values {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return append([]url.Values{}, r.tokenRequests...)
}

func (r *FakeRegistry) ClearRequests() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.requests = []string{}
	r.tokenRequests = []url.Values{}
}

func (r *FakeRegistry) serveToken(rw http.ResponseWriter, req *http.Request) {
	r.mutex.Lock()
	r.requests = append(r.requests, "GET "+req.URL.Path)
	r.tokenRequests = append(r.tokenRequests, req.URL.Query())
	r.mutex.Unlock()

	rw.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(rw).Encode(map[string]string{"token": FakeRegistryToken})
}

func (r *FakeRegistry) serveRegistry(rw http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		r.registry.ServeHTTP(rw, req)
		return
	}

	r.mutex.Lock()
	r.requests = append(r.requests, "GET "+req.URL.Path)
	var handler http.HandlerFunc
	if match := blobRegexp.FindStringSubmatch(req.URL.Path); match != nil {
		handler = r.blobHandlers[match[1]]
	}
	r.mutex.Unlock()

	if handler != nil {
		handler(rw, req)
		return
	}

	r.registry.ServeHTTP(rw, req)
}
