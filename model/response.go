package model

// Disposition controls whether content renders in the client or downloads.
type Disposition string

const (
	DispositionInline     Disposition = "inline"
	DispositionAttachment Disposition = "attachment"
)

// HeaderLine is a single response header. Emission order matters on the
// wire, so headers travel as a slice rather than a map.
type HeaderLine struct {
	Name  string
	Value string
}

// ResponseSpec is the full header plan for one response. Status 0 means
// the implicit 200 (no status line is written).
type ResponseSpec struct {
	Status  int
	Headers []HeaderLine
}

// Header returns the value of the first header with the given name, or ""
// when absent.
func (s ResponseSpec) Header(name string) string {
	for _, h := range s.Headers {
		if h.Name == name {
			return h.Value
		}
	}
	return ""
}
