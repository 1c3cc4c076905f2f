package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/MKhiriev/go-learning-platform/internal/config"
	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/MKhiriev/go-learning-platform/internal/utils"
)

// imageKitFile is the subset of the ImageKit file object used here.
type imageKitFile struct {
	FileID string `json:"fileId"`
	Name   string `json:"name"`
	URL    string `json:"url"`
}

type imageKitStorage struct {
	client    *utils.HTTPClient
	uploadURL string
	apiURL    string
	folder    string

	logger *logger.Logger
}

// NewImageKitStorage constructs a [FileStorage] backed by the ImageKit REST
// API. Requests authenticate with HTTP basic auth using the private key as
// the user name.
func NewImageKitStorage(cfg config.Adapter, logger *logger.Logger) (FileStorage, error) {
	if cfg.ImageKitPrivateKey == "" || cfg.ImageKitUploadURL == "" || cfg.ImageKitAPIURL == "" {
		return nil, fmt.Errorf("%w: imagekit private key and urls are required", ErrMissingConfig)
	}

	client := utils.NewHTTPClient(cfg.RequestTimeout)
	client.SetBasicAuth(cfg.ImageKitPrivateKey, "")

	return &imageKitStorage{
		client:    client,
		uploadURL: cfg.ImageKitUploadURL,
		apiURL:    strings.TrimRight(cfg.ImageKitAPIURL, "/"),
		folder:    cfg.ImageKitFolder,
		logger:    logger,
	}, nil
}

// Upload implements [FileStorage].
func (s *imageKitStorage) Upload(ctx context.Context, name string, content []byte) (string, error) {
	form := map[string]string{
		"fileName":          name,
		"useUniqueFileName": "false",
	}
	if s.folder != "" {
		form["folder"] = s.folder
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetFileReader("file", name, bytes.NewReader(content)).
		SetFormData(form).
		Post(s.uploadURL)
	if err != nil {
		return "", fmt.Errorf("upload request: %w", err)
	}
	if err = mapHTTPError("imagekit", resp); err != nil {
		return "", err
	}

	var file imageKitFile
	if err = json.Unmarshal(resp.Body(), &file); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if file.URL == "" {
		return "", fmt.Errorf("upload response has no url")
	}

	return file.URL, nil
}

// Delete implements [FileStorage]. ImageKit deletes by file id, so the file
// is first looked up by the name taken from the last URL segment.
func (s *imageKitStorage) Delete(ctx context.Context, fileURL string) error {
	log := logger.FromContext(ctx)

	name := fileNameFromURL(fileURL)
	if name == "" {
		return nil
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("searchQuery", fmt.Sprintf("name=%q", name)).
		Get(s.apiURL + "/files")
	if err != nil {
		return fmt.Errorf("list files request: %w", err)
	}
	if err = mapHTTPError("imagekit", resp); err != nil {
		return err
	}

	var files []imageKitFile
	if err = json.Unmarshal(resp.Body(), &files); err != nil {
		return fmt.Errorf("decode list files response: %w", err)
	}

	var fileID string
	for _, f := range files {
		if f.FileID != "" {
			fileID = f.FileID
			break
		}
	}
	if fileID == "" {
		log.Info().Str("func", "*imageKitStorage.Delete").Str("name", name).Msg("old file not found in storage")
		return nil
	}

	resp, err = s.client.R().
		SetContext(ctx).
		Delete(s.apiURL + "/files/" + url.PathEscape(fileID))
	if err != nil {
		return fmt.Errorf("delete file request: %w", err)
	}
	if err = mapHTTPError("imagekit", resp); err != nil {
		return err
	}

	log.Info().Str("func", "*imageKitStorage.Delete").Str("file_id", fileID).Msg("old file deleted")
	return nil
}

func fileNameFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		raw = u.Path
	}

	name := path.Base(raw)
	if name == "." || name == "/" {
		return ""
	}
	return name
}
