package e2e_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsphweid/byteserve/cmd"
	"github.com/jsphweid/byteserve/config"
	"github.com/jsphweid/byteserve/model"
	"github.com/jsphweid/byteserve/multipart"
)

// newServer stands up the real router over a media dir holding one
// 10-byte file "0123456789".
func newServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	mediaDir := t.TempDir()
	path := filepath.Join(mediaDir, "data.txt")
	if err := os.WriteFile(path, []byte("0123456789"), 0644); err != nil {
		t.Fatalf("write media file: %v", err)
	}

	cfg := config.Default()
	cfg.MediaDir = mediaDir
	cfg.Disposition = model.DispositionAttachment

	server := httptest.NewServer(cmd.NewRouter(cfg))
	t.Cleanup(server.Close)
	return server, path
}

func get(t *testing.T, url, rangeHeader string) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if rangeHeader != "" {
		req.Header.Set("Range", rangeHeader)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

func TestFullFileE2E(t *testing.T) {
	server, _ := newServer(t)
	resp, body := get(t, server.URL+"/files/data.txt", "")

	assert := assert.New(t)
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.Equal("0123456789", body)
	assert.Equal("10", resp.Header.Get("Content-Length"))
	assert.Equal("bytes", resp.Header.Get("Accept-Ranges"))
	assert.Equal("binary", resp.Header.Get("Content-Transfer-Encoding"))
	assert.Equal(`attachment; filename="data.txt"`, resp.Header.Get("Content-Disposition"))
}

func TestSingleRangeE2E(t *testing.T) {
	server, _ := newServer(t)
	resp, body := get(t, server.URL+"/files/data.txt", "bytes=3-7")

	assert := assert.New(t)
	assert.Equal(http.StatusPartialContent, resp.StatusCode)
	assert.Equal("34567", body)
	assert.Equal("5", resp.Header.Get("Content-Length"))
	assert.Equal("bytes 3-7/10", resp.Header.Get("Content-Range"))
}

func TestSuffixRangeE2E(t *testing.T) {
	server, _ := newServer(t)
	resp, body := get(t, server.URL+"/files/data.txt", "bytes=-3")

	assert := assert.New(t)
	assert.Equal(http.StatusPartialContent, resp.StatusCode)
	assert.Equal("789", body)
	assert.Equal("bytes 7-9/10", resp.Header.Get("Content-Range"))
}

func TestOpenRangeE2E(t *testing.T) {
	server, _ := newServer(t)
	resp, body := get(t, server.URL+"/files/data.txt", "bytes=3-")

	assert := assert.New(t)
	assert.Equal(http.StatusPartialContent, resp.StatusCode)
	assert.Equal("3456789", body)
	assert.Equal("bytes 3-9/10", resp.Header.Get("Content-Range"))
}

func TestInvertedRangeE2E(t *testing.T) {
	server, _ := newServer(t)
	resp, body := get(t, server.URL+"/files/data.txt", "bytes=9-7")

	assert := assert.New(t)
	assert.Equal(http.StatusRequestedRangeNotSatisfiable, resp.StatusCode)
	assert.Empty(body)
	assert.Empty(resp.Header.Get("Content-Range"))
	assert.Empty(resp.Header.Get("Accept-Ranges"))
}

func TestMultiRangeE2E(t *testing.T) {
	server, path := newServer(t)
	resp, body := get(t, server.URL+"/files/data.txt", "bytes=2-3,5-6,-1")

	assert := assert.New(t)
	assert.Equal(http.StatusPartialContent, resp.StatusCode)

	boundary := multipart.Boundary(path)
	assert.Equal("multipart/byteranges; boundary="+boundary, resp.Header.Get("Content-Type"))

	var want strings.Builder
	for _, part := range []struct {
		r       model.ByteRange
		payload string
	}{
		{model.ByteRange{Start: 2, End: 3}, "23"},
		{model.ByteRange{Start: 5, End: 6}, "56"},
		{model.ByteRange{Start: 9, End: 9}, "9"},
	} {
		// data.txt resolves to text/plain with a charset parameter.
		want.WriteString(multipart.PartHeader(boundary, "text/plain; charset=utf-8", part.r, 10))
		want.WriteString(part.payload)
	}
	want.WriteString(multipart.Closing(boundary))

	assert.Equal(want.String(), body)
	assert.Equal(strconv.Itoa(len(body)), resp.Header.Get("Content-Length"))
}

func TestMultiRangeBoundaryStableAcrossRequestsE2E(t *testing.T) {
	server, _ := newServer(t)
	first, _ := get(t, server.URL+"/files/data.txt", "bytes=0-1,3-4")
	second, _ := get(t, server.URL+"/files/data.txt", "bytes=0-1,3-4")

	assert.Equal(t, first.Header.Get("Content-Type"), second.Header.Get("Content-Type"))
}

func TestUnknownFileE2E(t *testing.T) {
	server, _ := newServer(t)
	resp, _ := get(t, server.URL+"/files/missing.txt", "")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTraversalRejectedE2E(t *testing.T) {
	server, _ := newServer(t)

	// Encoded traversal must not escape the media dir.
	resp, _ := get(t, server.URL+"/files/..%2Fdata.txt", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
