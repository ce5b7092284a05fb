package services

import (
	"bytes"
	"mime/multipart"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain ascii", input: "My Certificate", want: "my-certificate"},
		{name: "azerbaijani letters", input: "Naxçıvan Dövlət Universiteti", want: "naxcivan-dovlet-universiteti"},
		{name: "schwa", input: "Əli Məmmədov", want: "eli-memmedov"},
		{name: "dotless i", input: "Qızıl medal", want: "qizil-medal"},
		{name: "mixed punctuation", input: "diplom (2024)!", want: "diplom-2024"},
		{name: "digits and underscores kept", input: "report_v2 final", want: "report_v2-final"},
		{name: "nothing usable", input: "???", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func uploadedFile(t *testing.T, name, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	reader := multipart.NewReader(&buf, w.Boundary())
	form, err := reader.ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["file"][0]
}

func TestSaveFile(t *testing.T) {
	dir := t.TempDir()
	storage := NewStorageService(dir)
	require.NoError(t, storage.EnsureUploadDirs())

	file := uploadedFile(t, "Sertifikat Əli.pdf", "%PDF-1.4 fake")

	filename, filePath, err := storage.SaveFile(file, UploadTypeDocuments)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "sertifikat-eli-"))
	assert.True(t, strings.HasSuffix(filename, ".pdf"))

	written, err := os.ReadFile(filePath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(written))
}

func TestSaveFileRejectsWrongExtension(t *testing.T) {
	dir := t.TempDir()
	storage := NewStorageService(dir)
	require.NoError(t, storage.EnsureUploadDirs())

	file := uploadedFile(t, "malware.exe", "MZ")

	_, _, err := storage.SaveFile(file, UploadTypeDocuments)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid file extension")

	_, _, err = storage.SaveFile(file, "unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown upload type")
}

func TestSaveFileUnreadableNameFallsBack(t *testing.T) {
	dir := t.TempDir()
	storage := NewStorageService(dir)
	require.NoError(t, storage.EnsureUploadDirs())

	file := uploadedFile(t, "???.pdf", "content")

	filename, _, err := storage.SaveFile(file, UploadTypeDocuments)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "fayl-"))
}
