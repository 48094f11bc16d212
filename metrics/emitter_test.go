package metrics_test

import (
	"fmt"
	"time"

	"code.cloudfoundry.org/grootrun/metrics"
	"code.cloudfoundry.org/grootrun/testhelpers"
	"code.cloudfoundry.org/lager/v3/lagertest"
	"github.com/cloudfoundry/sonde-go/events"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Emitter", func() {
	Describe("NewEmitter", func() {
		Context("when the metron endpoint is not provided", func() {
			It("returns an error", func() {
				_, err := metrics.NewEmitter("")
				Expect(err).To(MatchError(ContainSubstring("destination variable not set")))
			})
		})
	})

	Context("with a metron listening", func() {
		var (
			logger           *lagertest.TestLogger
			fakeMetronPort   uint16
			fakeMetron       *testhelpers.FakeMetron
			fakeMetronClosed chan struct{}
			emitter          *metrics.Emitter
		)

		BeforeEach(func() {
			logger = lagertest.NewTestLogger("emitter")
			fakeMetronPort = uint16(5000 + GinkgoParallelProcess())

			fakeMetron = testhelpers.NewFakeMetron(fakeMetronPort)
			Expect(fakeMetron.Listen()).To(Succeed())

			var err error
			emitter, err = metrics.NewEmitter(
				fmt.Sprintf("127.0.0.1:%d", fakeMetronPort),
			)
			Expect(err).NotTo(HaveOccurred())

			fakeMetronClosed = make(chan struct{})
			go func() {
				defer GinkgoRecover()
				Expect(fakeMetron.Run()).To(Succeed())
				close(fakeMetronClosed)
			}()
		})

		AfterEach(func() {
			Expect(fakeMetron.Stop()).To(Succeed())
			Eventually(fakeMetronClosed).Should(BeClosed())
		})

		Describe("EmitDuration", func() {
			It("emits metrics", func() {
				Expect(emitter.EmitDuration("foo", time.Second)).To(Succeed())

				var fooMetrics []events.ValueMetric
				Eventually(func() []events.ValueMetric {
					fooMetrics = fakeMetron.ValueMetricsFor("foo")
					return fooMetrics
				}).Should(HaveLen(1))

				Expect(*fooMetrics[0].Name).To(Equal("foo"))
				Expect(*fooMetrics[0].Unit).To(Equal("nanos"))
				Expect(*fooMetrics[0].Value).To(Equal(float64(time.Second)))
			})
		})

		Describe("TryEmitDuration", func() {
			It("emits metrics", func() {
				emitter.TryEmitDuration(logger, "bar", time.Minute)

				Eventually(func() []events.ValueMetric {
					return fakeMetron.ValueMetricsFor("bar")
				}).Should(HaveLen(1))
				Expect(*fakeMetron.ValueMetricsFor("bar")[0].Value).To(Equal(float64(time.Minute)))
			})
		})

		Describe("TryEmitDurationFrom", func() {
			It("emits the time elapsed since the given moment", func() {
				emitter.TryEmitDurationFrom(logger, "baz", time.Now().Add(-time.Hour))

				var bazMetrics []events.ValueMetric
				Eventually(func() []events.ValueMetric {
					bazMetrics = fakeMetron.ValueMetricsFor("baz")
					return bazMetrics
				}).Should(HaveLen(1))
				Expect(*bazMetrics[0].Value).To(BeNumerically(">=", float64(time.Hour)))
			})
		})
	})

	Describe("NoopEmitter", func() {
		It("does not log anything", func() {
			logger := lagertest.NewTestLogger("noop")
			emitter := metrics.NewNoopEmitter()

			emitter.TryEmitDuration(logger, "foo", time.Second)
			emitter.TryEmitDurationFrom(logger, "foo", time.Now())

			Expect(logger.Logs()).To(BeEmpty())
		})
	})
})
