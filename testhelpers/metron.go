package testhelpers

import (
	"fmt"
	"net"
	"sort"
	"sync"

	"github.com/cloudfoundry/dropsonde/dropsonde_unmarshaller"
	"github.com/cloudfoundry/sonde-go/events"
	errorspkg "github.com/pkg/errors"
)

// maximum size of a UDP datagram
const maxEnvelopeSize = 65535

// FakeMetron listens for dropsonde envelopes on a local UDP port and keeps the
// value metrics it receives, keyed by metric name.
type FakeMetron struct {
	port         uint16
	conn         net.PacketConn
	unmarshaller *dropsonde_unmarshaller.DropsondeUnmarshaller

	mtx          sync.RWMutex
	stopped      bool
	valueMetrics map[string][]events.ValueMetric
}

func NewFakeMetron(port uint16) *FakeMetron {
	return &FakeMetron{
		port:         port,
		unmarshaller: dropsonde_unmarshaller.NewDropsondeUnmarshaller(nil),
		valueMetrics: make(map[string][]events.ValueMetric),
	}
}

func (m *FakeMetron) Listen() error {
	conn, err := net.ListenPacket("udp4", fmt.Sprintf("127.0.0.1:%d", m.port))
	if err != nil {
		return errorspkg.Wrapf(err, "listening on port %d", m.port)
	}
	m.conn = conn

	return nil
}

// Run blocks until Stop is called or an envelope cannot be decoded.
func (m *FakeMetron) Run() error {
	buffer := make([]byte, maxEnvelopeSize)
	for {
		n, _, err := m.conn.ReadFrom(buffer)
		if err != nil {
			if m.isStopped() {
				return nil
			}
			return err
		}

		envelope, err := m.unmarshaller.UnmarshallMessage(append([]byte(nil), buffer[:n]...))
		if err != nil {
			return errorspkg.Wrap(err, "decoding envelope")
		}

		if envelope.GetEventType() != events.Envelope_ValueMetric {
			continue
		}

		metric := *envelope.GetValueMetric()
		m.mtx.Lock()
		m.valueMetrics[metric.GetName()] = append(m.valueMetrics[metric.GetName()], metric)
		m.mtx.Unlock()
	}
}

func (m *FakeMetron) Stop() error {
	m.mtx.Lock()
	m.stopped = true
	m.mtx.Unlock()

	return m.conn.Close()
}

func (m *FakeMetron) isStopped() bool {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.stopped
}

func (m *FakeMetron) ValueMetricsFor(name string) []events.ValueMetric {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	return append([]events.ValueMetric{}, m.valueMetrics[name]...)
}

// ValueMetricNames lists every metric name received so far, sorted.
func (m *FakeMetron) ValueMetricNames() []string {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	names := make([]string, 0, len(m.valueMetrics))
	for name := range m.valueMetrics {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
