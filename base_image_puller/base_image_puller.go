package base_image_puller // import "code.cloudfoundry.org/grootrun/base_image_puller"

import (
	"io"
	"time"

	"code.cloudfoundry.org/grootrun/groot"
	"code.cloudfoundry.org/lager/v3"
	units "github.com/docker/go-units"
	"github.com/klauspost/compress/gzip"
	digestpkg "github.com/opencontainers/go-digest"
	errorspkg "github.com/pkg/errors"
)

const MetricsUnpackTimeName = "UnpackTime"
const MetricsDownloadTimeName = "DownloadTime"
const MetricsFailedUnpackTimeName = "FailedUnpackTime"

//go:generate counterfeiter . BlobFetcher
//go:generate counterfeiter . Unpacker
//go:generate counterfeiter . SystemReporter

type UnpackSpec struct {
	Stream     io.Reader `json:"-"`
	TargetPath string
}

type UnpackOutput struct {
	BytesWritten int64
}

type BlobFetcher interface {
	StreamBlob(logger lager.Logger, ref groot.ImageRef, token string, digest digestpkg.Digest) (io.ReadCloser, int64, error)
}

type Unpacker interface {
	Unpack(logger lager.Logger, spec UnpackSpec) (UnpackOutput, error)
}

type SystemReporter interface {
	Report(logger lager.Logger, duration time.Duration)
}

type BaseImagePuller struct {
	blobFetcher            BlobFetcher
	unpacker               Unpacker
	metricsEmitter         groot.MetricsEmitter
	systemReporter         SystemReporter
	skipDigestVerification bool
}

func NewBaseImagePuller(blobFetcher BlobFetcher, unpacker Unpacker, metricsEmitter groot.MetricsEmitter, systemReporter SystemReporter, skipDigestVerification bool) *BaseImagePuller {
	return &BaseImagePuller{
		blobFetcher:            blobFetcher,
		unpacker:               unpacker,
		metricsEmitter:         metricsEmitter,
		systemReporter:         systemReporter,
		skipDigestVerification: skipDigestVerification,
	}
}

// Pull extracts the layers onto spec.TargetPath one after the other, in the
// order given. Later layers overwrite what earlier layers wrote. The first
// failure stops the pull and leaves the target partially extracted.
func (p *BaseImagePuller) Pull(logger lager.Logger, spec groot.PullSpec) error {
	startTime := time.Now()

	logger = logger.Session("image-pulling", lager.Data{
		"image":      spec.Image,
		"targetPath": spec.TargetPath,
		"layers":     len(spec.Layers),
	})
	logger.Info("starting")
	defer logger.Info("ending")
	defer func() {
		p.systemReporter.Report(logger, time.Since(startTime))
	}()

	for index, layer := range spec.Layers {
		if err := p.pullLayer(logger, index, layer, spec); err != nil {
			return err
		}
	}

	return nil
}

func (p *BaseImagePuller) pullLayer(logger lager.Logger, index int, layer groot.Layer, spec groot.PullSpec) error {
	logger = logger.Session("pulling-layer", lager.Data{
		"index":  index,
		"digest": layer.Digest,
		"size":   units.HumanSize(float64(layer.Size)),
	})
	logger.Debug("starting")
	defer logger.Debug("ending")

	if err := layer.Digest.Validate(); err != nil {
		return groot.NewMalformedResponseErr(errorspkg.Wrapf(err, "layer %d has an invalid digest", index))
	}

	stream, err := p.downloadLayer(logger, layer, spec)
	if err != nil {
		return err
	}
	defer stream.Close()

	return p.unpackLayer(logger, layer, spec, stream)
}

func (p *BaseImagePuller) downloadLayer(logger lager.Logger, layer groot.Layer, spec groot.PullSpec) (io.ReadCloser, error) {
	defer p.metricsEmitter.TryEmitDurationFrom(logger, MetricsDownloadTimeName, time.Now())

	stream, size, err := p.blobFetcher.StreamBlob(logger, spec.Image, spec.Token, layer.Digest)
	if err != nil {
		logger.Error("streaming-blob-failed", err)
		return nil, errorspkg.Wrapf(err, "streaming blob `%s`", layer.Digest)
	}

	logger.Debug("got-stream-for-blob", lager.Data{"size": units.HumanSize(float64(size))})
	return stream, nil
}

func (p *BaseImagePuller) unpackLayer(logger lager.Logger, layer groot.Layer, spec groot.PullSpec, stream io.Reader) (err error) {
	startTime := time.Now()
	defer func() {
		if err != nil {
			p.metricsEmitter.TryEmitDurationFrom(logger, MetricsFailedUnpackTimeName, startTime)
			return
		}
		p.metricsEmitter.TryEmitDurationFrom(logger, MetricsUnpackTimeName, startTime)
	}()

	stream = p.quotaedStream(layer, stream)

	var verifier digestpkg.Verifier
	if !p.skipDigestVerification {
		verifier = layer.Digest.Verifier()
		stream = io.TeeReader(stream, verifier)
	}

	gzipReader, err := gzip.NewReader(stream)
	if err != nil {
		logger.Error("opening-gzip-stream-failed", err)
		return unpackErr(err, "layer `%s` is not a gzip stream", layer.Digest)
	}
	defer gzipReader.Close()

	output, err := p.unpacker.Unpack(logger, UnpackSpec{
		Stream:     gzipReader,
		TargetPath: spec.TargetPath,
	})
	if err != nil {
		logger.Error("unpacking-failed", err)
		return unpackErr(err, "unpacking layer `%s`", layer.Digest)
	}
	logger.Debug("layer-unpacked", lager.Data{"bytesWritten": units.HumanSize(float64(output.BytesWritten))})

	if verifier == nil {
		return nil
	}

	// the tar reader stops at the end-of-archive marker, the digest covers
	// the whole blob
	if _, err := io.Copy(io.Discard, gzipReader); err != nil {
		return unpackErr(err, "draining layer `%s`", layer.Digest)
	}
	if _, err := io.Copy(io.Discard, stream); err != nil {
		if isMalformed(err) {
			return errorspkg.Wrapf(err, "draining blob `%s`", layer.Digest)
		}
		return groot.NewRegistryErr(errorspkg.Wrapf(err, "draining blob `%s`", layer.Digest))
	}

	if !verifier.Verified() {
		err := groot.NewMalformedResponseErr(errorspkg.Errorf("layer `%s` does not match its digest", layer.Digest))
		logger.Error("verifying-digest-failed", err)
		return err
	}

	return nil
}

// quotaedStream fails reads past the size the manifest declares for the
// layer. A layer without a declared size is not limited.
func (p *BaseImagePuller) quotaedStream(layer groot.Layer, stream io.Reader) io.Reader {
	quota := layer.Size
	if quota <= 0 {
		quota = -1
	}

	return &QuotaedReader{
		DelegateReader: stream,
		QuotaLeft:      quota,
		SkipValidation: p.skipDigestVerification,
		QuotaExceededErrorHandler: func() error {
			return groot.NewMalformedResponseErr(errorspkg.Errorf("layer `%s` is larger than its declared size of %d bytes", layer.Digest, layer.Size))
		},
	}
}

// unpackErr keeps a malformed blob error surfacing through the decompressor
// or the unpacker, everything else is an UnpackErr.
func unpackErr(err error, format string, args ...interface{}) error {
	if isMalformed(err) {
		return errorspkg.Wrapf(err, format, args...)
	}
	return groot.NewUnpackErr(errorspkg.Wrapf(err, format, args...))
}

func isMalformed(err error) bool {
	_, ok := errorspkg.Cause(err).(*groot.MalformedResponseErr)
	return ok
}
