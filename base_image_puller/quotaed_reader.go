package base_image_puller

import (
	"io"
)

// QuotaedReader fails once more than QuotaLeft bytes come out of
// DelegateReader. A negative quota disables the check.
type QuotaedReader struct {
	DelegateReader            io.Reader
	QuotaLeft                 int64
	SkipValidation            bool
	QuotaExceededErrorHandler func() error
}

func (q *QuotaedReader) Read(p []byte) (int, error) {
	if q.SkipValidation || q.QuotaLeft < 0 {
		return q.DelegateReader.Read(p)
	}

	if int64(len(p)) > q.QuotaLeft {
		p = p[0 : q.QuotaLeft+1]
	}

	n, err := q.DelegateReader.Read(p)
	q.QuotaLeft = q.QuotaLeft - int64(n)

	if q.QuotaLeft < 0 {
		return n, q.QuotaExceededErrorHandler()
	}

	return n, err
}
