package client

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// ContentTypeMultipart — content type multipart-операций до того,
// как транспорт добавит boundary.
const ContentTypeMultipart = "multipart/form-data"

// Form — заранее собранная multipart-форма (аналог FormData).
// Поля и файлы сохраняют порядок добавления.
type Form struct {
	fields []formField
	files  []formFile
}

type formField struct {
	name  string
	value string
}

type formFile struct {
	field    string
	filename string
	r        io.Reader
}

// NewForm создаёт пустую форму.
func NewForm() *Form {
	return &Form{}
}

// SetField добавляет текстовое поле.
func (f *Form) SetField(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// AddFile добавляет файл из reader.
func (f *Form) AddFile(field, filename string, r io.Reader) *Form {
	f.files = append(f.files, formFile{field: field, filename: filename, r: r})
	return f
}

// AddFileFromPath открывает файл с диска и добавляет его в форму.
// Файл читается при кодировании формы и закрывается вызывающим через
// возвращённый io.Closer.
func (f *Form) AddFileFromPath(field, path string) (io.Closer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	f.AddFile(field, filepath.Base(path), file)
	return file, nil
}

// Field возвращает значение поля по имени.
func (f *Form) Field(name string) (string, bool) {
	for _, fld := range f.fields {
		if fld.name == name {
			return fld.value, true
		}
	}
	return "", false
}

// Files возвращает имена файлов в порядке добавления.
func (f *Form) Files() []string {
	names := make([]string, len(f.files))
	for i, file := range f.files {
		names[i] = file.filename
	}
	return names
}

// Encode сериализует форму. Возвращает тело и content type с boundary.
func (f *Form) Encode() (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, fld := range f.fields {
		if err := mw.WriteField(fld.name, fld.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", fld.name, err)
		}
	}

	for _, file := range f.files {
		part, err := mw.CreateFormFile(file.field, file.filename)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", file.filename, err)
		}
		if _, err := io.Copy(part, file.r); err != nil {
			return nil, "", fmt.Errorf("copy %s: %w", file.filename, err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}
