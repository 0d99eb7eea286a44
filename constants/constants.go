package constants

import "os"

func GetMediaDir() string {
	path := os.Getenv("MEDIA_PATH")
	if path != "" {
		return path
	}
	return "./media"
}

// DefaultChunkSize bounds how many file bytes one read/write iteration
// moves. Small on purpose so disconnects are noticed quickly.
const DefaultChunkSize = 1024

const DefaultListenAddr = ":8080"

const (
	HeaderRange                   = "Range"
	HeaderAcceptRanges            = "Accept-Ranges"
	HeaderContentType             = "Content-Type"
	HeaderContentLength           = "Content-Length"
	HeaderContentRange            = "Content-Range"
	HeaderContentDisposition      = "Content-Disposition"
	HeaderContentTransferEncoding = "Content-Transfer-Encoding"
	HeaderCacheControl            = "Cache-Control"
	HeaderPragma                  = "Pragma"
	HeaderExpires                 = "Expires"
)
