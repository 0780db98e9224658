package clients

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"sort"
)

// Multipart is a form payload sent as multipart/form-data. The gateway sends
// it as-is and derives the Content-Type, boundary included, from the writer.
type Multipart struct {
	fields map[string][]string
	files  []formFile
}

type formFile struct {
	field    string
	filename string
	content  []byte
}

func NewMultipart() *Multipart {
	return &Multipart{fields: map[string][]string{}}
}

// Field appends a text value. Empty values are still sent, as a browser form would.
func (m *Multipart) Field(name, value string) *Multipart {
	m.fields[name] = append(m.fields[name], value)
	return m
}

// File attaches a file part.
func (m *Multipart) File(field, filename string, content []byte) *Multipart {
	m.files = append(m.files, formFile{field: field, filename: filename, content: content})
	return m
}

// encode renders the form and returns the body plus its content type.
func (m *Multipart) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	names := make([]string, 0, len(m.fields))
	for name := range m.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, v := range m.fields[name] {
			if err := w.WriteField(name, v); err != nil {
				return nil, "", fmt.Errorf("write form field %s: %w", name, err)
			}
		}
	}
	for _, f := range m.files {
		part, err := w.CreateFormFile(f.field, f.filename)
		if err != nil {
			return nil, "", fmt.Errorf("create form file %s: %w", f.field, err)
		}
		if _, err := part.Write(f.content); err != nil {
			return nil, "", fmt.Errorf("write form file %s: %w", f.field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
