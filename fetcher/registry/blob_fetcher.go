package registry

import (
	"io"
	"net/http"

	"code.cloudfoundry.org/grootrun/groot"
	"code.cloudfoundry.org/lager/v3"
	digestpkg "github.com/opencontainers/go-digest"
)

type BlobFetcher struct {
	httpClient  *http.Client
	registryURL string
}

func NewBlobFetcher(httpClient *http.Client, registryURL string) *BlobFetcher {
	return &BlobFetcher{
		httpClient:  httpClient,
		registryURL: registryURL,
	}
}

// StreamBlob returns the blob body unread. The caller must close it. The size
// is -1 when the registry did not announce it.
func (f *BlobFetcher) StreamBlob(logger lager.Logger, ref groot.ImageRef, token string, digest digestpkg.Digest) (io.ReadCloser, int64, error) {
	logger = logger.Session("streaming-blob", lager.Data{"ref": ref, "digest": digest})
	logger.Info("starting")
	defer logger.Info("ending")

	resp, err := get(logger, f.httpClient, request{
		url:   joinURL(f.registryURL, "v2", ref.Repository(), "blobs", digest.String()),
		token: token,
	})
	if err != nil {
		logger.Error("requesting-blob-failed", err)
		return nil, 0, err
	}
	logger.Debug("got-blob-stream", lager.Data{"size": resp.ContentLength})

	return resp.Body, resp.ContentLength, nil
}
