package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/config"
	apperrors "github.com/muynuddinr/dahua-dubai.com-sub001/pkg/util"
)

func newAssetFixture(uploadURL string) *AssetService {
	return NewAssetService(config.AssetsConfig{
		UploadURL: uploadURL,
		APIKey:    "test-key",
		APISecret: "test-secret",
		Folder:    "catalog",
		MaxBytes:  10 << 20,
	}, zap.NewNop())
}

func uploadFile(svc *AssetService, content string) (*AssetUploadResult, error) {
	return svc.Upload(context.Background(), bytes.NewReader([]byte(content)),
		"camera.png", "image/png", int64(len(content)), "")
}

func TestUploadUnconfiguredHost(t *testing.T) {
	svc := NewAssetService(config.AssetsConfig{}, zap.NewNop())

	_, err := uploadFile(svc, "png-bytes")
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, "UPSTREAM_ERROR", domainErr.Code)
}

func TestUploadRejectsOversizeFile(t *testing.T) {
	svc := newAssetFixture("http://example.com/upload")

	_, err := svc.Upload(context.Background(), bytes.NewReader(nil), "big.png", "image/png", (10<<20)+1, "")
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestUploadRejectsNonImage(t *testing.T) {
	svc := newAssetFixture("http://example.com/upload")

	_, err := svc.Upload(context.Background(), bytes.NewReader(nil), "doc.pdf", "application/pdf", 10, "")
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestUploadSignsAndStreamsMultipart(t *testing.T) {
	var (
		gotFields map[string]string
		gotFile   string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		gotFields = map[string]string{
			"api_key":   r.FormValue("api_key"),
			"folder":    r.FormValue("folder"),
			"public_id": r.FormValue("public_id"),
			"timestamp": r.FormValue("timestamp"),
			"signature": r.FormValue("signature"),
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		content, _ := io.ReadAll(file)
		gotFile = string(content)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secure_url":"https://cdn.example.com/` + gotFields["public_id"] + `.png","public_id":"` + gotFields["public_id"] + `"}`))
	}))
	defer server.Close()

	svc := newAssetFixture(server.URL)
	result, err := uploadFile(svc, "png-bytes")
	require.NoError(t, err)

	require.Equal(t, "test-key", gotFields["api_key"])
	require.Equal(t, "catalog", gotFields["folder"])
	require.NotEmpty(t, gotFields["public_id"])
	require.NotEmpty(t, gotFields["timestamp"])

	mac := hmac.New(sha1.New, []byte("test-secret"))
	mac.Write([]byte("folder=" + gotFields["folder"] +
		"&public_id=" + gotFields["public_id"] +
		"&timestamp=" + gotFields["timestamp"]))
	require.Equal(t, hex.EncodeToString(mac.Sum(nil)), gotFields["signature"])

	require.Equal(t, "png-bytes", gotFile)
	require.Equal(t, gotFields["public_id"], result.PublicID)
	require.Equal(t, "https://cdn.example.com/"+gotFields["public_id"]+".png", result.URL)
}

func TestUploadSurfacesAssetHostRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc := newAssetFixture(server.URL)
	_, err := uploadFile(svc, "png-bytes")
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, "UPSTREAM_ERROR", domainErr.Code)
}

func TestUploadMalformedURLDoesNotLeakWriter(t *testing.T) {
	baseline := runtime.NumGoroutine()

	svc := newAssetFixture("://not-a-url")
	for i := 0; i < 5; i++ {
		_, err := uploadFile(svc, "png-bytes")
		var domainErr *apperrors.DomainError
		require.True(t, errors.As(err, &domainErr))
		require.Equal(t, "UPSTREAM_ERROR", domainErr.Code)
	}

	// the multipart writer goroutines must unblock once the pipe is closed
	require.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= baseline
	}, 2*time.Second, 10*time.Millisecond)
}
