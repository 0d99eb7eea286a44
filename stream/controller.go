package stream

import (
	"io"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/jsphweid/byteserve/file"
	"github.com/jsphweid/byteserve/headers"
	"github.com/jsphweid/byteserve/model"
	"github.com/jsphweid/byteserve/multipart"
	"github.com/jsphweid/byteserve/ranges"
	"github.com/jsphweid/byteserve/sink"
)

// Outcome is the terminal status of one request.
type Outcome int

const (
	OutcomeCompleted Outcome = iota
	OutcomeAborted
)

func (o Outcome) String() string {
	if o == OutcomeCompleted {
		return "completed"
	}
	return "aborted"
}

// Request carries everything one response needs. Nothing is read from
// ambient or process-wide state.
type Request struct {
	Path        string
	RangeHeader string
	Disposition model.Disposition
	Filename    string            // defaults to the base of Path
	ContentType string            // explicit override; resolver used when empty
	Resolver    file.TypeResolver // nil means extension-based
}

// Result is the single terminal value for a request. Ranges holds the
// parsed set so callers and tests can verify what was served.
type Result struct {
	Outcome Outcome
	Ranges  model.RangeSet
	Err     error
}

// Serve drives one request end to end: open and lock the file, parse the
// Range header, emit headers, stream the body, close. Fatal errors
// short-circuit with an Aborted result; close and transport-tuning
// failures are logged and do not change the outcome.
func Serve(req Request, out sink.Sink, cfg Config) Result {
	logger := log.WithField("path", req.Path)

	desc, err := file.Open(req.Path, req.Resolver)
	if err != nil {
		return Result{Outcome: OutcomeAborted, Err: err}
	}
	defer func() {
		if cerr := desc.Close(); cerr != nil {
			logger.Warnf("close failed: %v", cerr)
		}
	}()

	if t, ok := out.(sink.Transport); ok {
		if err := t.DisableCompression(); err != nil {
			logger.Warnf("could not disable compression: %v", err)
		}
		if err := t.ExtendDeadline(); err != nil {
			logger.Warnf("could not extend write deadline: %v", err)
		}
	}

	set, err := ranges.Parse(req.RangeHeader, desc.Size)
	if err != nil {
		apply(out, headers.NotSatisfiable())
		return Result{Outcome: OutcomeAborted, Err: err}
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = desc.ContentType
	}
	if contentType == "" {
		contentType = headers.DefaultContentType
	}

	filename := req.Filename
	if filename == "" {
		filename = filepath.Base(req.Path)
	}

	apply(out, headers.Build(headers.Input{
		Disposition: req.Disposition,
		Filename:    filename,
		ContentType: contentType,
		Path:        desc.Path,
		Size:        desc.Size,
		Ranges:      set,
	}))

	switch len(set) {
	case 0:
		if desc.Size > 0 {
			err = CopySegment(out, desc, model.ByteRange{Start: 0, End: desc.Size - 1}, cfg)
		}
	case 1:
		err = CopySegment(out, desc, set[0], cfg)
	default:
		err = copyMultipart(out, desc, set, contentType, desc.Path, desc.Size, cfg)
	}
	if err != nil {
		return Result{Outcome: OutcomeAborted, Ranges: set, Err: err}
	}
	return Result{Outcome: OutcomeCompleted, Ranges: set}
}

// copyMultipart interleaves part header blocks with range payloads and
// terminates with the closing boundary. A disconnect aborts immediately,
// closing boundary included.
func copyMultipart(out sink.Sink, src io.ReadSeeker, set model.RangeSet, contentType string, path string, size uint64, cfg Config) error {
	boundary := multipart.Boundary(path)
	for _, r := range set {
		if out.PeerClosed() {
			return ErrPeerClosed
		}
		if _, err := io.WriteString(out, multipart.PartHeader(boundary, contentType, r, size)); err != nil {
			return errors.Wrap(err, "write part header")
		}
		if err := CopySegment(out, src, r, cfg); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(out, multipart.Closing(boundary)); err != nil {
		return errors.Wrap(err, "write closing boundary")
	}
	return nil
}

func apply(out sink.Sink, spec model.ResponseSpec) {
	for _, h := range spec.Headers {
		out.WriteHeader(h.Name, h.Value)
	}
	if spec.Status != 0 {
		out.WriteStatus(spec.Status)
	}
}
