package registry

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"code.cloudfoundry.org/grootrun/groot"
	"code.cloudfoundry.org/lager/v3"
	errorspkg "github.com/pkg/errors"
)

type tokenResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
}

type Authenticator struct {
	httpClient *http.Client
	authURL    string
	service    string
}

func NewAuthenticator(httpClient *http.Client, authURL, service string) *Authenticator {
	return &Authenticator{
		httpClient: httpClient,
		authURL:    authURL,
		service:    service,
	}
}

// Token requests an anonymous pull token scoped to the repository.
func (a *Authenticator) Token(logger lager.Logger, repository string) (string, error) {
	logger = logger.Session("fetching-token", lager.Data{"repository": repository, "authURL": a.authURL})
	logger.Info("starting")
	defer logger.Info("ending")

	authURL, err := url.Parse(a.authURL)
	if err != nil {
		return "", errorspkg.Wrapf(err, "parsing auth url `%s`", a.authURL)
	}

	query := authURL.Query()
	query.Set("service", a.service)
	query.Set("scope", fmt.Sprintf("repository:%s:pull", repository))
	authURL.RawQuery = query.Encode()

	resp, err := get(logger, a.httpClient, request{url: authURL.String()})
	if err != nil {
		logger.Error("requesting-token-failed", err)
		return "", err
	}
	defer resp.Body.Close()

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		logger.Error("decoding-token-failed", err)
		return "", groot.NewMalformedResponseErr(errorspkg.Wrap(err, "decoding token response"))
	}

	if token.Token == "" {
		token.Token = token.AccessToken
	}
	if token.Token == "" {
		return "", groot.NewMalformedResponseErr(errorspkg.New("token response has no token"))
	}

	return token.Token, nil
}
