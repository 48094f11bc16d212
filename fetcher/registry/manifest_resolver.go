package registry

import (
	"net/http"
	"strings"

	"code.cloudfoundry.org/grootrun/groot"
	"code.cloudfoundry.org/lager/v3"
	"github.com/docker/distribution/manifest/manifestlist"
	"github.com/docker/distribution/manifest/schema2"
	digestpkg "github.com/opencontainers/go-digest"
	specsv1 "github.com/opencontainers/image-spec/specs-go/v1"
	errorspkg "github.com/pkg/errors"
)

var (
	IndexMediaTypes    = []string{manifestlist.MediaTypeManifestList, specsv1.MediaTypeImageIndex}
	ManifestMediaTypes = []string{specsv1.MediaTypeImageManifest, schema2.MediaTypeManifest}
)

type ManifestResolver struct {
	httpClient  *http.Client
	registryURL string
}

func NewManifestResolver(httpClient *http.Client, registryURL string) *ManifestResolver {
	return &ManifestResolver{
		httpClient:  httpClient,
		registryURL: registryURL,
	}
}

// Resolve fetches the manifest index for the tag, picks the entry for the
// architecture and returns the layers of that manifest in application order.
// No blob is requested when the architecture is missing from the index.
func (r *ManifestResolver) Resolve(logger lager.Logger, ref groot.ImageRef, architecture, token string) ([]groot.Layer, error) {
	logger = logger.Session("resolving-manifest", lager.Data{"ref": ref, "architecture": architecture})
	logger.Info("starting")
	defer logger.Info("ending")

	index, err := r.fetchIndex(logger, ref, token)
	if err != nil {
		logger.Error("fetching-index-failed", err)
		return nil, err
	}

	entry, ok := index.Select(architecture)
	if !ok {
		err := groot.NewNoManifestForArchitectureErr(
			errorspkg.Errorf("no manifest for architecture `%s` in `%s` (available: %s)",
				architecture, ref, strings.Join(index.Architectures(), ", ")),
		)
		logger.Error("selecting-manifest-failed", err)
		return nil, err
	}
	logger.Debug("manifest-selected", lager.Data{"digest": entry.Digest})

	manifest, err := r.fetchManifest(logger, ref, entry.Digest, token)
	if err != nil {
		logger.Error("fetching-manifest-failed", err)
		return nil, err
	}

	return manifest.Layers, nil
}

func (r *ManifestResolver) fetchIndex(logger lager.Logger, ref groot.ImageRef, token string) (Index, error) {
	document, err := r.fetchDocument(logger, ref, ref.Tag, token, IndexMediaTypes)
	if err != nil {
		return Index{}, err
	}

	if document.Kind != IndexDocument {
		return Index{}, groot.NewMalformedResponseErr(
			errorspkg.Errorf("expected a manifest index for `%s`, got %s", ref, document.Kind),
		)
	}

	return document.Index, nil
}

func (r *ManifestResolver) fetchManifest(logger lager.Logger, ref groot.ImageRef, digest digestpkg.Digest, token string) (ImageManifest, error) {
	document, err := r.fetchDocument(logger, ref, digest.String(), token, ManifestMediaTypes)
	if err != nil {
		return ImageManifest{}, err
	}

	if document.Kind != ManifestDocument {
		return ImageManifest{}, groot.NewMalformedResponseErr(
			errorspkg.Errorf("expected an image manifest for `%s`, got %s", digest, document.Kind),
		)
	}

	return document.Manifest, nil
}

func (r *ManifestResolver) fetchDocument(logger lager.Logger, ref groot.ImageRef, reference, token string, accept []string) (Document, error) {
	resp, err := get(logger, r.httpClient, request{
		url:    joinURL(r.registryURL, "v2", ref.Repository(), "manifests", reference),
		token:  token,
		accept: accept,
	})
	if err != nil {
		return Document{}, err
	}

	return readDocument(resp)
}
