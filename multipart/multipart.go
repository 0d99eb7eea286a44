package multipart

import (
	"fmt"
	"hash/fnv"

	"github.com/jsphweid/byteserve/model"
)

// Boundary derives the delimiter token for a multipart/byteranges body.
// The token is a stable hash of the file path, so repeated requests for
// the same file produce identical bodies. It is not a security token.
func Boundary(path string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	return fmt.Sprintf("range_%016x", h.Sum64())
}

// PartHeader is the delimiter plus descriptive header block emitted
// before one range's payload. CRLF endings are a wire-format requirement
// of multipart/byteranges, not a style choice.
func PartHeader(boundary string, contentType string, r model.ByteRange, size uint64) string {
	return fmt.Sprintf("\r\n--%s\r\nContent-Type: %s\r\nContent-range: bytes %d-%d/%d\r\n\r\n",
		boundary, contentType, r.Start, r.End, size)
}

// Closing terminates the body after the final part: the boundary token
// immediately followed by two dashes.
func Closing(boundary string) string {
	return fmt.Sprintf("\r\n--%s--\r\n", boundary)
}

// BodyLength is the exact byte count of the full multipart body, header
// blocks and payloads included. The header builder advertises this as
// Content-Length, so it must match the streamed bytes exactly.
func BodyLength(boundary string, contentType string, set model.RangeSet, size uint64) uint64 {
	var total uint64
	for _, r := range set {
		total += uint64(len(PartHeader(boundary, contentType, r, size)))
		total += r.Length()
	}
	return total + uint64(len(Closing(boundary)))
}
