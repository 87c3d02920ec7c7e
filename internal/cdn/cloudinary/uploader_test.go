package cloudinary

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"Hearth/internal/core/media"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploader_UploadImage(t *testing.T) {
	var gotPreset, gotFilename, gotContentType string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1_1/hearth/image/upload", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotPreset = r.FormValue("upload_preset")

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotFilename = header.Filename
		gotContentType = header.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(file)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"secure_url": "https://res.cloudinary.test/hearth/image/upload/v1/abc.png",
			"url":        "http://res.cloudinary.test/hearth/image/upload/v1/abc.png",
			"public_id":  "abc",
			"format":     "png",
			"width":      10,
			"height":     20,
			"bytes":      4,
		})
	}))
	defer server.Close()

	uploader, err := NewUploader(Config{APIURL: server.URL, CloudName: "hearth"})
	require.NoError(t, err)
	defer uploader.Close()

	upload, err := uploader.UploadImage(context.Background(), []byte("\x89PNG"), "cat.png", "image/png")
	require.NoError(t, err)

	assert.Equal(t, DefaultUploadPreset, gotPreset)
	assert.Equal(t, "cat.png", gotFilename)
	assert.Equal(t, "image/png", gotContentType)
	assert.Equal(t, []byte("\x89PNG"), gotBody)

	assert.Equal(t, "https://res.cloudinary.test/hearth/image/upload/v1/abc.png", upload.URL)
	assert.Equal(t, "abc", upload.PublicID)
	assert.Equal(t, 10, upload.Width)
	assert.Equal(t, 20, upload.Height)
}

func TestUploader_ErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Upload preset not found"}}`))
	}))
	defer server.Close()

	uploader, err := NewUploader(Config{APIURL: server.URL, CloudName: "hearth", UploadPreset: "missing"})
	require.NoError(t, err)
	defer uploader.Close()

	_, err = uploader.UploadImage(context.Background(), []byte("data"), "a.jpg", "image/jpeg")
	require.Error(t, err)

	var uploadErr *media.UploadError
	require.True(t, errors.As(err, &uploadErr))
	assert.Equal(t, http.StatusBadRequest, uploadErr.StatusCode)
	assert.Equal(t, "Upload preset not found", uploadErr.Message)
}

func TestNewUploader_RequiresCloudName(t *testing.T) {
	_, err := NewUploader(Config{})
	assert.Error(t, err)
}
