package service

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// pngHeader is a minimal valid PNG signature, enough for content sniffing.
var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func multipartFile(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	assert.NoError(t, err)
	_, err = fw.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	assert.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File[field][0]
}

func uploadSetup(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")
	t.Setenv("SP_UPLOAD_FOLDER", dir)
	return dir
}

func TestUploadSavePng(t *testing.T) {
	dir := uploadSetup(t)

	service := UploadService{}
	header := multipartFile(t, "image", "shirt.png", append(pngHeader, make([]byte, 64)...))

	rel, err := service.Save(header, UploadImage)
	assert.NoError(t, err)
	assert.Equal(t, "uploads", filepath.Dir(rel))
	assert.Equal(t, ".png", filepath.Ext(rel))

	_, err = os.Stat(filepath.Join(dir, filepath.Base(rel)))
	assert.NoError(t, err)
}

func TestUploadRejectsExecutable(t *testing.T) {
	dir := uploadSetup(t)

	service := UploadService{}
	// MZ header sniffs as application/octet-stream.
	header := multipartFile(t, "image", "malware.exe", append([]byte("MZ"), make([]byte, 64)...))

	_, err := service.Save(header, UploadImage)
	assert.Error(t, err)

	upErr, ok := err.(*UploadError)
	assert.True(t, ok)
	assert.Equal(t, UploadInvalidType, upErr.Kind)
	assert.Contains(t, upErr.Message, "Invalid image type")

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries, "no file written for rejected uploads")
}

func TestUploadPdfAllowedOnlyForReceiptsAndPosters(t *testing.T) {
	uploadSetup(t)

	service := UploadService{}
	pdf := append([]byte("%PDF-1.4\n"), make([]byte, 64)...)

	rel, err := service.Save(multipartFile(t, "receipt", "receipt.pdf", pdf), UploadReceipt)
	assert.NoError(t, err)
	assert.Equal(t, ".pdf", filepath.Ext(rel))

	_, err = service.Save(multipartFile(t, "image", "poster.pdf", pdf), UploadImage)
	assert.Error(t, err)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	uploadSetup(t)
	t.Setenv("SP_UPLOAD_MAX_BYTES", "128")

	service := UploadService{}
	header := multipartFile(t, "image", "big.png", append(pngHeader, make([]byte, 1024)...))

	_, err := service.Save(header, UploadImage)
	assert.Error(t, err)

	upErr, ok := err.(*UploadError)
	assert.True(t, ok)
	assert.Equal(t, UploadTooLarge, upErr.Kind)
}

func TestUploadSaveThenRemove(t *testing.T) {
	dir := uploadSetup(t)

	service := UploadService{}
	header := multipartFile(t, "image", "shirt.png", append(pngHeader, make([]byte, 64)...))

	rel, err := service.Save(header, UploadImage)
	assert.NoError(t, err)

	assert.NoError(t, service.Remove(rel))
	_, err = os.Stat(filepath.Join(dir, filepath.Base(rel)))
	assert.True(t, os.IsNotExist(err))

	// Removing twice is fine; escaping the uploads dir is not.
	assert.NoError(t, service.Remove(rel))
	assert.Error(t, service.Remove("../etc/passwd"))
	assert.Error(t, service.Remove("/etc/passwd"))
}
