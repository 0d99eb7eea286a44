package sink

import (
	"context"
	"net/http"
	"time"
)

// HTTP adapts an http.ResponseWriter to the Sink interface. The request
// context doubles as the peer-disconnect signal.
type HTTP struct {
	w   http.ResponseWriter
	rc  *http.ResponseController
	ctx context.Context
}

func NewHTTP(w http.ResponseWriter, r *http.Request) *HTTP {
	return &HTTP{w: w, rc: http.NewResponseController(w), ctx: r.Context()}
}

func (h *HTTP) WriteStatus(code int) {
	h.w.WriteHeader(code)
}

func (h *HTTP) WriteHeader(name, value string) {
	h.w.Header().Add(name, value)
}

func (h *HTTP) Write(p []byte) (int, error) {
	return h.w.Write(p)
}

func (h *HTTP) Flush() {
	_ = h.rc.Flush()
}

func (h *HTTP) PeerClosed() bool {
	select {
	case <-h.ctx.Done():
		return true
	default:
		return false
	}
}

// DisableCompression strips any encoding negotiated upstream so the
// advertised Content-Length matches the bytes on the wire.
func (h *HTTP) DisableCompression() error {
	h.w.Header().Del("Content-Encoding")
	return nil
}

// ExtendDeadline lifts the server write timeout so a throttled stream is
// not cut off by wall-clock limits.
func (h *HTTP) ExtendDeadline() error {
	return h.rc.SetWriteDeadline(time.Time{})
}
