package sink

import (
	"bytes"

	"github.com/jsphweid/byteserve/model"
)

// Memory is an in-memory Sink for tests. It records the status, header
// order and body bytes, and can simulate a client that disconnects
// mid-stream.
type Memory struct {
	Status  int // 0 until WriteStatus is called
	Headers []model.HeaderLine
	Body    bytes.Buffer
	Flushes int

	// Closed simulates a peer that was never connected. CloseAfterFlushes,
	// when positive, simulates a peer that disconnects after that many
	// flushed chunks.
	Closed            bool
	CloseAfterFlushes int
}

func (m *Memory) WriteStatus(code int) {
	m.Status = code
}

func (m *Memory) WriteHeader(name, value string) {
	m.Headers = append(m.Headers, model.HeaderLine{Name: name, Value: value})
}

func (m *Memory) Write(p []byte) (int, error) {
	return m.Body.Write(p)
}

func (m *Memory) Flush() {
	m.Flushes++
}

func (m *Memory) PeerClosed() bool {
	if m.Closed {
		return true
	}
	return m.CloseAfterFlushes > 0 && m.Flushes >= m.CloseAfterFlushes
}

// Header returns the first recorded value for name, or "".
func (m *Memory) Header(name string) string {
	for _, h := range m.Headers {
		if h.Name == name {
			return h.Value
		}
	}
	return ""
}
