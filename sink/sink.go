package sink

// Sink is the destination for one response: an explicit status and
// ordered headers first, then raw body bytes. PeerClosed reports whether
// the client has gone away; the streamer checks it between chunks and
// stops early when it returns true.
type Sink interface {
	// WriteStatus emits an explicit status line. Responses with the
	// implicit 200 never call it.
	WriteStatus(code int)

	// WriteHeader emits one header line. Calls happen in wire order,
	// before any Write.
	WriteHeader(name, value string)

	Write(p []byte) (n int, err error)

	// Flush pushes buffered body bytes toward the peer. Best effort.
	Flush()

	PeerClosed() bool
}

// Transport is implemented by sinks backed by a real HTTP server, where
// output compression and write deadlines can interfere with streaming
// byte-exact bodies. Both calls are best effort; failures are logged and
// never abort the response.
type Transport interface {
	DisableCompression() error
	ExtendDeadline() error
}
