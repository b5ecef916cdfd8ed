package httpclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strings"
)

// MultipartBody is a multipart/form-data request body. Set it as
// Request.Body and the client writes the boundary Content-Type header.
type MultipartBody struct {
	// Fields are plain form fields, written in key order.
	Fields map[string]string
	// Files are file parts, written after the fields in slice order.
	Files []FileField
}

// FileField is one file part.
type FileField struct {
	// FieldName is the form field name, e.g. "audio".
	FieldName string
	// FileName is the filename reported to the server.
	FileName string
	// ContentType of the part. Empty means application/octet-stream.
	ContentType string
	// Data is the file content.
	Data []byte
	// Reader is used when Data is nil. A reader is consumed by the first
	// attempt, so pair it with a nil Retry.
	Reader io.Reader
}

// Field returns the value of a plain form field.
func (m *MultipartBody) Field(name string) string {
	return m.Fields[name]
}

// Size is the payload size of the file parts that are held in memory.
func (m *MultipartBody) Size() int64 {
	var n int64
	for _, f := range m.Files {
		n += int64(len(f.Data))
	}
	return n
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func (m *MultipartBody) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(m.Fields))
	for k := range m.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, m.Fields[k]); err != nil {
			return nil, "", err
		}
	}

	for _, f := range m.Files {
		if f.FieldName == "" {
			return nil, "", fmt.Errorf("multipart: file part without field name")
		}
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(f.FieldName), quoteEscaper.Replace(f.FileName)))
		header.Set("Content-Type", ct)

		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		switch {
		case f.Data != nil:
			_, err = part.Write(f.Data)
		case f.Reader != nil:
			_, err = io.Copy(part, f.Reader)
		}
		if err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
