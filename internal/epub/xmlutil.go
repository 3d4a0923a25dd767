package epub

import (
	"encoding/xml"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

const (
	nsDublinCore = "http://purl.org/dc/elements/1.1/"
	nsOPS        = "http://www.idpf.org/2007/ops"
)

// newDecoder returns a token decoder for an XML document held in memory.
// HTML named entities are resolved. Content is already UTF-8, so a declared
// encoding is accepted without transcoding again.
func newDecoder(content string) *xml.Decoder {
	d := xml.NewDecoder(strings.NewReader(strings.TrimPrefix(content, "\ufeff")))
	d.Entity = xml.HTMLEntity
	d.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) { return r, nil }
	return d
}

var (
	xmlEncodingDecl = regexp.MustCompile(`^\s*<\?xml[^>]*?\sencoding\s*=\s*["']([^"']+)["']`)
	metaCharset     = regexp.MustCompile(`(?i)<meta[^>]*?\scharset\s*=\s*["']?([a-z0-9_:.-]+)`)
)

// declaredEncoding returns the encoding named by an XML declaration or an
// HTML meta charset in the first kilobyte of data.
func declaredEncoding(data []byte) string {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	if m := xmlEncodingDecl.FindSubmatch(head); m != nil {
		return string(m[1])
	}
	if m := metaCharset.FindSubmatch(head); m != nil {
		return string(m[1])
	}
	return ""
}

// transcode converts data from its declared encoding to UTF-8. ok is false
// when no known non-UTF-8 encoding is declared or the result is not valid
// UTF-8.
func transcode(data []byte) (string, bool) {
	label := declaredEncoding(data)
	if label == "" {
		return "", false
	}
	enc, name := charset.Lookup(label)
	if enc == nil || name == "utf-8" {
		return "", false
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil || !utf8.Valid(out) {
		return "", false
	}
	return string(out), true
}

// attr returns the value of the first attribute with the given local name
// and no namespace.
func attr(e xml.StartElement, local string) (string, bool) {
	for _, a := range e.Attr {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// inNamespace reports whether n is in the namespace uri, accepting an
// undeclared prefix spelled as prefix.
func inNamespace(n xml.Name, uri, prefix string) bool {
	return n.Space == uri || n.Space == prefix
}
