package ranges

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsphweid/byteserve/model"
)

func TestParseNoHeader(t *testing.T) {
	set, err := Parse("", 10)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(set, 0)
}

func TestParseExplicitRangePassesThrough(t *testing.T) {
	set, err := Parse("bytes=3-7", 10)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(model.RangeSet{{Start: 3, End: 7}}, set)
}

func TestParseSuffixForm(t *testing.T) {
	set, err := Parse("bytes=-3", 10)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(model.RangeSet{{Start: 7, End: 9}}, set)
}

func TestParseSuffixLongerThanFile(t *testing.T) {
	set, err := Parse("bytes=-25", 10)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(model.RangeSet{{Start: 0, End: 9}}, set)
}

func TestParseOpenForm(t *testing.T) {
	set, err := Parse("bytes=3-", 10)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(model.RangeSet{{Start: 3, End: 9}}, set)
}

func TestParseClampsEndToFileSize(t *testing.T) {
	set, err := Parse("bytes=5-500", 10)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(model.RangeSet{{Start: 5, End: 9}}, set)
}

func TestParseInvertedBounds(t *testing.T) {
	_, err := Parse("bytes=9-7", 10)
	assert.True(t, errors.Is(err, ErrUnsatisfiable))
}

func TestParseStartBeyondFile(t *testing.T) {
	_, err := Parse("bytes=10-", 10)
	assert.True(t, errors.Is(err, ErrUnsatisfiable))
}

func TestParseUnsupportedUnit(t *testing.T) {
	_, err := Parse("chapters=1-2", 10)
	assert.True(t, errors.Is(err, ErrUnsupportedUnit))
}

func TestParseMissingEquals(t *testing.T) {
	_, err := Parse("bytes 1-2", 10)
	assert.True(t, errors.Is(err, ErrUnsupportedUnit))
}

func TestParseMultipleRangesKeepRequestOrder(t *testing.T) {
	set, err := Parse("bytes=5-6,2-3,-1", 10)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(model.RangeSet{
		{Start: 5, End: 6},
		{Start: 2, End: 3},
		{Start: 9, End: 9},
	}, set)
}

func TestParseOverlappingRangesNotMerged(t *testing.T) {
	set, err := Parse("bytes=0-5,3-8", 10)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(model.RangeSet{
		{Start: 0, End: 5},
		{Start: 3, End: 8},
	}, set)
}

func TestParseOneBadRangeRejectsWholeRequest(t *testing.T) {
	set, err := Parse("bytes=0-3,7-5,8-9", 10)

	assert := assert.New(t)
	assert.True(errors.Is(err, ErrUnsatisfiable))
	assert.Nil(set)
}

func TestParseMalformedSpecs(t *testing.T) {
	cases := []string{
		"bytes=abc-def",
		"bytes=5",
		"bytes=",
		"bytes=-",
		"bytes=1-2,",
	}
	for _, header := range cases {
		name := fmt.Sprintf("reject %q", header)
		t.Run(name, func(t *testing.T) {
			_, err := Parse(header, 10)
			assert.True(t, errors.Is(err, ErrUnsatisfiable))
		})
	}
}

func TestParseZeroSuffixUnsatisfiable(t *testing.T) {
	_, err := Parse("bytes=-0", 10)
	assert.True(t, errors.Is(err, ErrUnsatisfiable))
}

func TestParseEmptyFile(t *testing.T) {
	_, err := Parse("bytes=0-", 0)
	assert.True(t, errors.Is(err, ErrUnsatisfiable))
}
