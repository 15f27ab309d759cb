package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/config"
	apperrors "github.com/muynuddinr/dahua-dubai.com-sub001/pkg/util"
)

// AssetUploadResult describes a file hosted on the asset service.
type AssetUploadResult struct {
	URL      string
	PublicID string
}

// AssetService proxies admin image uploads to the hosted asset service.
// Requests are authenticated with an HMAC-SHA1 signature over the sorted
// request parameters plus the API secret.
type AssetService struct {
	cfg    config.AssetsConfig
	client *http.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewAssetService builds the service.
func NewAssetService(cfg config.AssetsConfig, logger *zap.Logger) *AssetService {
	return &AssetService{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
		now:    time.Now,
	}
}

// Upload streams the file to the asset host and returns the hosted URL.
func (s *AssetService) Upload(ctx context.Context, file io.Reader, filename, contentType string, size int64, folder string) (*AssetUploadResult, error) {
	if s.cfg.UploadURL == "" || s.cfg.APIKey == "" || s.cfg.APISecret == "" {
		return nil, apperrors.NewUpstreamError(errors.New("asset host not configured"))
	}
	if size > s.cfg.MaxBytes {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("file exceeds the %d byte upload limit", s.cfg.MaxBytes))
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperrors.NewValidationError("only image uploads are accepted")
	}
	if folder == "" {
		folder = s.cfg.Folder
	}

	publicID := uuid.NewString()
	params := map[string]string{
		"public_id": publicID,
		"folder":    folder,
		"timestamp": strconv.FormatInt(s.now().Unix(), 10),
	}
	params["signature"] = s.sign(params)
	params["api_key"] = s.cfg.APIKey

	body, contentTypeHeader, err := buildMultipart(file, filename, params)
	if err != nil {
		return nil, apperrors.NewUpstreamError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.UploadURL, body)
	if err != nil {
		// unread pipe would leave the writer goroutine blocked
		body.Close()
		return nil, apperrors.NewUpstreamError(err)
	}
	req.Header.Set("Content-Type", contentTypeHeader)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("asset upload failed", zap.Error(err))
		return nil, apperrors.NewUpstreamError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		s.logger.Error("asset host rejected upload",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", raw))
		return nil, apperrors.NewUpstreamError(fmt.Errorf("asset host returned %d", resp.StatusCode))
	}

	var parsed struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
		PublicID  string `json:"public_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, apperrors.NewUpstreamError(err)
	}

	url := parsed.SecureURL
	if url == "" {
		url = parsed.URL
	}
	return &AssetUploadResult{URL: url, PublicID: parsed.PublicID}, nil
}

// sign produces the hex HMAC-SHA1 of the sorted key=value parameter string.
func (s *AssetService) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	mac := hmac.New(sha1.New, []byte(s.cfg.APISecret))
	mac.Write([]byte(strings.Join(pairs, "&")))
	return hex.EncodeToString(mac.Sum(nil))
}

func buildMultipart(file io.Reader, filename string, params map[string]string) (*io.PipeReader, string, error) {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		defer pw.Close()
		for key, val := range params {
			if err := writer.WriteField(key, val); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(writer.Close())
	}()

	return pr, writer.FormDataContentType(), nil
}
