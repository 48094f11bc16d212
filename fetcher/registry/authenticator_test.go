package registry_test

import (
	"net/http"
	"net/url"

	"code.cloudfoundry.org/grootrun/fetcher/registry"
	"code.cloudfoundry.org/grootrun/groot"
	"code.cloudfoundry.org/grootrun/testhelpers"
	"code.cloudfoundry.org/lager/v3"
	"code.cloudfoundry.org/lager/v3/lagertest"
	"github.com/onsi/gomega/ghttp"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Authenticator", func() {
	var (
		logger        lager.Logger
		authServer    *ghttp.Server
		authenticator *registry.Authenticator
	)

	BeforeEach(func() {
		logger = lagertest.NewTestLogger("authenticator")
		authServer = ghttp.NewServer()
		authenticator = registry.NewAuthenticator(registry.NewHTTPClient(0), authServer.URL()+"/token", "registry.docker.io")
	})

	AfterEach(func() {
		authServer.Close()
	})

	It("requests a pull token scoped to the repository", func() {
		authServer.AppendHandlers(ghttp.CombineHandlers(
			ghttp.VerifyRequest("GET", "/token"),
			ghttp.VerifyForm(url.Values{
				"service": []string{"registry.docker.io"},
				"scope":   []string{"repository:library/busybox:pull"},
			}),
			ghttp.RespondWithJSONEncoded(http.StatusOK, map[string]string{"token": "my-token"}),
		))

		token, err := authenticator.Token(logger, "library/busybox")
		Expect(err).NotTo(HaveOccurred())
		Expect(token).To(Equal("my-token"))
		Expect(authServer.ReceivedRequests()).To(HaveLen(1))
	})

	It("does not send credentials", func() {
		authServer.AppendHandlers(ghttp.CombineHandlers(
			func(_ http.ResponseWriter, req *http.Request) {
				Expect(req.Header.Get("Authorization")).To(BeEmpty())
			},
			ghttp.RespondWithJSONEncoded(http.StatusOK, map[string]string{"token": "my-token"}),
		))

		_, err := authenticator.Token(logger, "library/busybox")
		Expect(err).NotTo(HaveOccurred())
	})

	Context("when the response only has an access_token", func() {
		BeforeEach(func() {
			authServer.AppendHandlers(
				ghttp.RespondWithJSONEncoded(http.StatusOK, map[string]string{"access_token": "oauth-token"}),
			)
		})

		It("returns it", func() {
			token, err := authenticator.Token(logger, "library/busybox")
			Expect(err).NotTo(HaveOccurred())
			Expect(token).To(Equal("oauth-token"))
		})
	})

	Context("when the endpoint returns a non-2xx status", func() {
		BeforeEach(func() {
			authServer.AppendHandlers(ghttp.RespondWith(http.StatusUnauthorized, "go away"))
		})

		It("returns a registry error", func() {
			_, err := authenticator.Token(logger, "library/busybox")
			Expect(err).To(testhelpers.BeErrorType(groot.RegistryErr{}))
			Expect(err).To(MatchError(ContainSubstring("401")))
			Expect(err).To(MatchError(ContainSubstring("go away")))
		})
	})

	Context("when the endpoint is unreachable", func() {
		BeforeEach(func() {
			authenticator = registry.NewAuthenticator(registry.NewHTTPClient(0), "http://127.0.0.1:1/token", "registry.docker.io")
		})

		It("returns a registry error", func() {
			_, err := authenticator.Token(logger, "library/busybox")
			Expect(err).To(testhelpers.BeErrorType(groot.RegistryErr{}))
		})
	})

	Context("when the body is not json", func() {
		BeforeEach(func() {
			authServer.AppendHandlers(ghttp.RespondWith(http.StatusOK, "<html>"))
		})

		It("returns a malformed response error", func() {
			_, err := authenticator.Token(logger, "library/busybox")
			Expect(err).To(testhelpers.BeErrorType(groot.MalformedResponseErr{}))
		})
	})

	Context("when the body has no token", func() {
		BeforeEach(func() {
			authServer.AppendHandlers(ghttp.RespondWithJSONEncoded(http.StatusOK, map[string]string{}))
		})

		It("returns a malformed response error", func() {
			_, err := authenticator.Token(logger, "library/busybox")
			Expect(err).To(testhelpers.BeErrorType(groot.MalformedResponseErr{}))
			Expect(err).To(MatchError(ContainSubstring("no token")))
		})
	})
})
