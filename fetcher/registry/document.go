package registry // import "code.cloudfoundry.org/grootrun/fetcher/registry"

import (
	"encoding/json"
	"mime"

	"code.cloudfoundry.org/grootrun/groot"
	"github.com/docker/distribution/manifest/manifestlist"
	"github.com/docker/distribution/manifest/schema2"
	"github.com/docker/distribution/registry/api/errcode"
	_ "github.com/docker/distribution/registry/api/v2"
	digestpkg "github.com/opencontainers/go-digest"
	specsv1 "github.com/opencontainers/image-spec/specs-go/v1"
	errorspkg "github.com/pkg/errors"
)

type DocumentKind int

const (
	UnknownDocument DocumentKind = iota
	IndexDocument
	ManifestDocument
	ErrorDocument
)

func (k DocumentKind) String() string {
	switch k {
	case IndexDocument:
		return "manifest index"
	case ManifestDocument:
		return "image manifest"
	case ErrorDocument:
		return "error body"
	default:
		return "unknown document"
	}
}

// Document is a registry response body narrowed to one of the shapes this
// client understands. Only the field matching Kind is populated.
type Document struct {
	Kind     DocumentKind
	Index    Index
	Manifest ImageManifest
	Errors   errcode.Errors
}

type IndexEntry struct {
	Digest       digestpkg.Digest
	Architecture string
	OS           string
	Variant      string
}

type Index struct {
	Entries []IndexEntry
}

// Select returns the first entry built for the architecture. The comparison is
// exact: there is no fallback to another architecture.
func (i Index) Select(architecture string) (IndexEntry, bool) {
	for _, entry := range i.Entries {
		if entry.Architecture == architecture {
			return entry, true
		}
	}

	return IndexEntry{}, false
}

func (i Index) Architectures() []string {
	architectures := []string{}
	for _, entry := range i.Entries {
		architectures = append(architectures, entry.Architecture)
	}
	return architectures
}

type ImageManifest struct {
	Layers []groot.Layer
}

type documentShape struct {
	MediaType string            `json:"mediaType"`
	Manifests []json.RawMessage `json:"manifests"`
	Layers    []json.RawMessage `json:"layers"`
	Errors    []json.RawMessage `json:"errors"`
}

// DecodeDocument narrows a body using the Content-Type of the response, then
// the mediaType field of the body, then the fields present in the body.
func DecodeDocument(contentType string, body []byte) (Document, error) {
	var shape documentShape
	if err := json.Unmarshal(body, &shape); err != nil {
		return Document{}, groot.NewMalformedResponseErr(errorspkg.Wrap(err, "decoding registry response"))
	}

	mediaType := parseMediaType(contentType)
	if !isKnownMediaType(mediaType) {
		mediaType = shape.MediaType
	}

	switch {
	case mediaType == manifestlist.MediaTypeManifestList:
		return decodeManifestList(body)
	case mediaType == specsv1.MediaTypeImageIndex:
		return decodeOCIIndex(body)
	case mediaType == specsv1.MediaTypeImageManifest, mediaType == schema2.MediaTypeManifest:
		return decodeImageManifest(body)
	case len(shape.Errors) > 0:
		return decodeErrors(body)
	case len(shape.Manifests) > 0:
		return decodeOCIIndex(body)
	case len(shape.Layers) > 0:
		return decodeImageManifest(body)
	}

	return Document{}, groot.NewMalformedResponseErr(
		errorspkg.Errorf("unrecognised registry document (content type `%s`)", contentType),
	)
}

func decodeManifestList(body []byte) (Document, error) {
	var manifestList manifestlist.ManifestList
	if err := json.Unmarshal(body, &manifestList); err != nil {
		return Document{}, groot.NewMalformedResponseErr(errorspkg.Wrap(err, "decoding manifest list"))
	}

	index := Index{Entries: []IndexEntry{}}
	for _, descriptor := range manifestList.Manifests {
		if err := descriptor.Digest.Validate(); err != nil {
			return Document{}, groot.NewMalformedResponseErr(errorspkg.Wrapf(err, "manifest list entry `%s`", descriptor.Digest))
		}

		index.Entries = append(index.Entries, IndexEntry{
			Digest:       descriptor.Digest,
			Architecture: descriptor.Platform.Architecture,
			OS:           descriptor.Platform.OS,
			Variant:      descriptor.Platform.Variant,
		})
	}

	return Document{Kind: IndexDocument, Index: index}, nil
}

func decodeOCIIndex(body []byte) (Document, error) {
	var ociIndex specsv1.Index
	if err := json.Unmarshal(body, &ociIndex); err != nil {
		return Document{}, groot.NewMalformedResponseErr(errorspkg.Wrap(err, "decoding image index"))
	}

	index := Index{Entries: []IndexEntry{}}
	for _, descriptor := range ociIndex.Manifests {
		if err := descriptor.Digest.Validate(); err != nil {
			return Document{}, groot.NewMalformedResponseErr(errorspkg.Wrapf(err, "image index entry `%s`", descriptor.Digest))
		}

		entry := IndexEntry{Digest: descriptor.Digest}
		if descriptor.Platform != nil {
			entry.Architecture = descriptor.Platform.Architecture
			entry.OS = descriptor.Platform.OS
			entry.Variant = descriptor.Platform.Variant
		}
		index.Entries = append(index.Entries, entry)
	}

	return Document{Kind: IndexDocument, Index: index}, nil
}

func decodeImageManifest(body []byte) (Document, error) {
	var ociManifest specsv1.Manifest
	if err := json.Unmarshal(body, &ociManifest); err != nil {
		return Document{}, groot.NewMalformedResponseErr(errorspkg.Wrap(err, "decoding image manifest"))
	}

	manifest := ImageManifest{Layers: []groot.Layer{}}
	for _, layer := range ociManifest.Layers {
		if err := layer.Digest.Validate(); err != nil {
			return Document{}, groot.NewMalformedResponseErr(errorspkg.Wrapf(err, "layer `%s`", layer.Digest))
		}

		manifest.Layers = append(manifest.Layers, groot.Layer{
			Digest:    layer.Digest,
			MediaType: layer.MediaType,
			Size:      layer.Size,
		})
	}

	return Document{Kind: ManifestDocument, Manifest: manifest}, nil
}

func decodeErrors(body []byte) (Document, error) {
	var errs errcode.Errors
	if err := json.Unmarshal(body, &errs); err != nil {
		return Document{}, groot.NewMalformedResponseErr(errorspkg.Wrap(err, "decoding registry errors"))
	}

	return Document{Kind: ErrorDocument, Errors: errs}, nil
}

func parseMediaType(contentType string) string {
	if contentType == "" {
		return ""
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}

	return mediaType
}

func isKnownMediaType(mediaType string) bool {
	switch mediaType {
	case manifestlist.MediaTypeManifestList, specsv1.MediaTypeImageIndex,
		specsv1.MediaTypeImageManifest, schema2.MediaTypeManifest:
		return true
	}

	return false
}
