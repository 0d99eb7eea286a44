package stream

import (
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/jsphweid/byteserve/constants"
	"github.com/jsphweid/byteserve/model"
	"github.com/jsphweid/byteserve/sink"
	"github.com/jsphweid/byteserve/util"
)

// ErrPeerClosed reports that the client went away mid-stream. Whatever
// was already written stays written; nothing further is emitted.
var ErrPeerClosed = errors.New("peer closed connection")

// Config is read-only while a request is in flight.
type Config struct {
	// ChunkSize bounds each read/write iteration. Zero means
	// constants.DefaultChunkSize.
	ChunkSize int

	// Throttle is slept after each flushed chunk. Zero disables pacing.
	Throttle time.Duration
}

func (c Config) chunkSize() int {
	if c.ChunkSize > 0 {
		return c.ChunkSize
	}
	return constants.DefaultChunkSize
}

// CopySegment streams the inclusive range r from src to out in bounded
// chunks, flushing each one. The peer check at the top of the loop is
// the only cancellation point in the engine.
func CopySegment(out sink.Sink, src io.ReadSeeker, r model.ByteRange, cfg Config) error {
	if _, err := src.Seek(int64(r.Start), io.SeekStart); err != nil {
		return errors.Wrapf(err, "seek to %d", r.Start)
	}

	buf := make([]byte, cfg.chunkSize())
	remaining := r.Length()
	for remaining > 0 {
		if out.PeerClosed() {
			return ErrPeerClosed
		}

		n, err := src.Read(buf[:util.Min(uint64(len(buf)), remaining)])
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				return errors.Wrap(werr, "write chunk")
			}
			out.Flush()
			remaining -= uint64(n)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "read chunk")
		}

		if cfg.Throttle > 0 && remaining > 0 {
			time.Sleep(cfg.Throttle)
		}
	}
	return nil
}
