package docs

import (
	"bytes"
	"errors"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// splitFrontmatter separates YAML frontmatter (`---` delimited) from the Markdown body.
// Without a leading delimiter, fm is nil and body is the full input.
func splitFrontmatter(content []byte) (fm []byte, body []byte, err error) {
	nl := []byte("\n")
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		nl = []byte("\r\n")
	}

	open := append([]byte("---"), nl...)
	if !bytes.HasPrefix(content, open) {
		return nil, content, nil
	}
	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], nil
	}
	if bytes.Equal(rest, []byte("---")) {
		return []byte{}, []byte{}, nil
	}

	closeSeq := append(append(append([]byte{}, nl...), "---"...), nl...)
	if idx := bytes.Index(rest, closeSeq); idx >= 0 {
		return rest[:idx+len(nl)], rest[idx+len(closeSeq):], nil
	}
	// closing delimiter on the last line without a trailing newline
	eof := append(append([]byte{}, nl...), "---"...)
	if bytes.HasSuffix(rest, eof) {
		return rest[:len(rest)-len(eof)+len(nl)], []byte{}, nil
	}
	return nil, nil, ErrMissingClosingDelimiter
}
