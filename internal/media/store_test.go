package media

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sociallink-app/backend/internal/apperr"
)

func fileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="avatar"; filename="%s"`, filename))
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["avatar"][0]
}

func TestSaveValidUpload(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	data := bytes.Repeat([]byte{0x89}, 1<<20)
	path, err := store.Save(7, fileHeader(t, "me.png", "image/png", data))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, PublicPrefix+"/"), path)
	assert.True(t, strings.HasSuffix(path, ".png"), path)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "7_"), path)

	stored, err := os.ReadFile(filepath.Join(store.Dir(), filepath.Base(path)))
	require.NoError(t, err)
	assert.Equal(t, data, stored)
}

func TestSaveRejectsUnsupportedExtension(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"anim.gif", "movie.mp4", "doc.pdf", "noext"} {
		_, err := store.Save(1, fileHeader(t, name, "", []byte("data")))
		require.Error(t, err, name)
		assert.Equal(t, apperr.UnsupportedMedia, apperr.KindOf(err), name)
	}
}

func TestSaveRejectsMismatchedContentType(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(1, fileHeader(t, "sneaky.png", "text/html", []byte("<html>")))
	require.Error(t, err)
	assert.Equal(t, apperr.UnsupportedMedia, apperr.KindOf(err))
}

func TestSaveRejectsOversized(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(1, fileHeader(t, "big.png", "image/png", bytes.Repeat([]byte{0}, MaxUploadBytes+1)))
	require.Error(t, err)
	assert.Equal(t, apperr.PayloadTooLarge, apperr.KindOf(err))

	// Nothing may be left behind on rejection.
	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		path, err := store.Save(3, fileHeader(t, "same.jpg", "image/jpeg", []byte("x")))
		require.NoError(t, err)
		assert.False(t, seen[path], "duplicate name %s", path)
		seen[path] = true
	}
}
