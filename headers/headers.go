package headers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/jsphweid/byteserve/constants"
	"github.com/jsphweid/byteserve/model"
	"github.com/jsphweid/byteserve/multipart"
)

// DefaultContentType is advertised when no resolver or override supplied
// a type.
const DefaultContentType = "application/octet-stream"

// Input carries everything the header set depends on. Nothing is read
// from ambient state.
type Input struct {
	Disposition model.Disposition
	Filename    string
	ContentType string // "" falls back to DefaultContentType
	Path        string // boundary derivation for multipart responses
	Size        uint64
	Ranges      model.RangeSet
}

// Build derives the full ordered response header set from the range
// count and file metadata. For multipart responses the advertised
// Content-Length is computed by the same multipart functions that later
// emit the body, so the two cannot drift apart.
func Build(in Input) model.ResponseSpec {
	contentType := in.ContentType
	if contentType == "" {
		contentType = DefaultContentType
	}

	var spec model.ResponseSpec
	add := func(name, value string) {
		spec.Headers = append(spec.Headers, model.HeaderLine{Name: name, Value: value})
	}

	add(constants.HeaderCacheControl, "no-cache, must-revalidate")
	add(constants.HeaderPragma, "no-cache")
	add(constants.HeaderExpires, "0")
	add(constants.HeaderAcceptRanges, "bytes")

	switch len(in.Ranges) {
	case 0:
		add(constants.HeaderContentType, contentType)
		add(constants.HeaderContentTransferEncoding, "binary")
		add(constants.HeaderContentDisposition, disposition(in))
		add(constants.HeaderContentLength, strconv.FormatUint(in.Size, 10))
	case 1:
		spec.Status = http.StatusPartialContent
		r := in.Ranges[0]
		add(constants.HeaderContentType, contentType)
		add(constants.HeaderContentTransferEncoding, "binary")
		add(constants.HeaderContentDisposition, disposition(in))
		add(constants.HeaderContentLength, strconv.FormatUint(r.Length(), 10))
		add(constants.HeaderContentRange, fmt.Sprintf("bytes %d-%d/%d", r.Start, r.End, in.Size))
	default:
		spec.Status = http.StatusPartialContent
		boundary := multipart.Boundary(in.Path)
		add(constants.HeaderContentType, "multipart/byteranges; boundary="+boundary)
		add(constants.HeaderContentTransferEncoding, "binary")
		add(constants.HeaderContentDisposition, disposition(in))
		length := multipart.BodyLength(boundary, contentType, in.Ranges, in.Size)
		add(constants.HeaderContentLength, strconv.FormatUint(length, 10))
	}

	return spec
}

// NotSatisfiable is the full response for an invalid Range header: a
// bare status line, no other headers, no body.
func NotSatisfiable() model.ResponseSpec {
	return model.ResponseSpec{Status: http.StatusRequestedRangeNotSatisfiable}
}

func disposition(in Input) string {
	if in.Disposition == model.DispositionInline {
		return string(model.DispositionInline)
	}
	return fmt.Sprintf("%s; filename=%q", model.DispositionAttachment, in.Filename)
}
