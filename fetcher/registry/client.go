package registry

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"code.cloudfoundry.org/grootrun/groot"
	"code.cloudfoundry.org/lager/v3"
	"github.com/docker/distribution/registry/api/errcode"
	errorspkg "github.com/pkg/errors"
)

const maxErrorBodySize = 64 * 1024

func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

type request struct {
	url    string
	token  string
	accept []string
}

// get issues a GET and returns the response when it has a 2xx status. Any
// other status is reported as a RegistryErr carrying the registry's own error
// messages when the body has them.
func get(logger lager.Logger, client *http.Client, req request) (*http.Response, error) {
	httpReq, err := http.NewRequest(http.MethodGet, req.url, nil)
	if err != nil {
		return nil, errorspkg.Wrapf(err, "building request for `%s`", req.url)
	}

	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}
	for _, mediaType := range req.accept {
		httpReq.Header.Add("Accept", mediaType)
	}

	logger.Debug("requesting", lager.Data{"url": req.url, "accept": req.accept})
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, groot.NewRegistryErr(errorspkg.Wrapf(err, "requesting `%s`", req.url))
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	message := describeFailure(resp.Header.Get("Content-Type"), body)
	logger.Debug("unexpected-status", lager.Data{"url": req.url, "status": resp.StatusCode, "message": message})

	return nil, groot.NewRegistryErr(
		errorspkg.Errorf("GET `%s` returned %d: %s", req.url, resp.StatusCode, message),
	)
}

func describeFailure(contentType string, body []byte) string {
	document, err := DecodeDocument(contentType, body)
	if err == nil && document.Kind == ErrorDocument && len(document.Errors) > 0 {
		return describeErrors(document.Errors)
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return "empty body"
	}
	return text
}

// describeErrors keeps the registry's message even when errcode decoded an
// entry to its bare code, which happens when the message is the code default.
func describeErrors(errs errcode.Errors) string {
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		switch e := err.(type) {
		case errcode.ErrorCode:
			messages = append(messages, fmt.Sprintf("%s: %s", e.Error(), e.Message()))
		default:
			messages = append(messages, err.Error())
		}
	}

	return strings.Join(messages, "; ")
}

func readDocument(resp *http.Response) (Document, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Document{}, groot.NewRegistryErr(errorspkg.Wrap(err, "reading registry response"))
	}

	return DecodeDocument(resp.Header.Get("Content-Type"), body)
}

func joinURL(base string, elems ...string) string {
	return fmt.Sprintf("%s/%s", strings.TrimSuffix(base, "/"), strings.Join(elems, "/"))
}
