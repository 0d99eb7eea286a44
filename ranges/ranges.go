package ranges

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/jsphweid/byteserve/model"
	"github.com/jsphweid/byteserve/util"
)

var (
	// ErrUnsupportedUnit means the header asked for a unit other than bytes.
	ErrUnsupportedUnit = errors.New("unsupported range unit")

	// ErrUnsatisfiable means at least one requested range cannot be served
	// from the file. The whole request is rejected, not just the bad range.
	ErrUnsatisfiable = errors.New("requested range not satisfiable")
)

// Parse interprets a raw Range header value against a file of size bytes.
// An empty header yields an empty set. Ranges come back in request order;
// overlaps and out-of-order spans are passed through untouched.
func Parse(header string, size uint64) (model.RangeSet, error) {
	if header == "" {
		return nil, nil
	}

	unit, list, found := strings.Cut(header, "=")
	if !found || unit != "bytes" {
		return nil, errors.Wrapf(ErrUnsupportedUnit, "unit %q", unit)
	}

	last := int64(size) - 1
	var set model.RangeSet
	for _, spec := range strings.Split(list, ",") {
		r, err := parseSpec(strings.TrimSpace(spec), size, last)
		if err != nil {
			return nil, err
		}
		set = append(set, r)
	}
	return set, nil
}

func parseSpec(spec string, size uint64, last int64) (model.ByteRange, error) {
	startText, endText, found := strings.Cut(spec, "-")
	if !found {
		return model.ByteRange{}, errors.Wrapf(ErrUnsatisfiable, "malformed spec %q", spec)
	}

	var start, end int64
	switch {
	case startText == "":
		// Suffix form: the last N bytes of the file.
		n, err := strconv.ParseInt(endText, 10, 64)
		if err != nil {
			return model.ByteRange{}, errors.Wrapf(ErrUnsatisfiable, "suffix length %q", endText)
		}
		start = int64(size) - n
		end = last
	case endText == "":
		// Open form: from start to the end of the file.
		n, err := strconv.ParseInt(startText, 10, 64)
		if err != nil {
			return model.ByteRange{}, errors.Wrapf(ErrUnsatisfiable, "start %q", startText)
		}
		start = n
		end = last
	default:
		var err error
		start, err = strconv.ParseInt(startText, 10, 64)
		if err != nil {
			return model.ByteRange{}, errors.Wrapf(ErrUnsatisfiable, "start %q", startText)
		}
		end, err = strconv.ParseInt(endText, 10, 64)
		if err != nil {
			return model.ByteRange{}, errors.Wrapf(ErrUnsatisfiable, "end %q", endText)
		}
	}

	start = util.Max(start, 0)
	end = util.Min(end, last)
	if start > end {
		return model.ByteRange{}, errors.Wrapf(ErrUnsatisfiable, "range %q against %d bytes", spec, size)
	}
	return model.ByteRange{Start: uint64(start), End: uint64(end)}, nil
}
