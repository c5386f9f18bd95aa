package imagekit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Client relays admin uploads to the ImageKit upload API. The server
// never stores files locally; it only proxies and returns the hosted
// URL.
type Client struct {
	uploadURL  string
	privateKey string
	folder     string
	http       *http.Client
}

func NewClient(uploadURL, privateKey, folder string) *Client {
	if uploadURL == "" {
		uploadURL = "https://upload.imagekit.io/api/v1/files/upload"
	}

	return &Client{
		uploadURL:  uploadURL,
		privateKey: privateKey,
		folder:     folder,
		http:       &http.Client{Timeout: 30 * time.Second},
	}
}

type UploadOutput struct {
	FileID       string `json:"fileId"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Name         string `json:"name"`
}

func (c *Client) Upload(fileName string, file io.Reader) (*UploadOutput, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("file", fileName)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	form.WriteField("fileName", fileName)
	if c.folder != "" {
		form.WriteField("folder", c.folder)
	}
	form.WriteField("useUniqueFileName", "true")

	if err := form.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", c.uploadURL, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	// ImageKit uses basic auth with the private key as username.
	req.SetBasicAuth(c.privateKey, "")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imagekit request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("imagekit upload failed (status %d): %s", resp.StatusCode, string(raw))
	}

	var output UploadOutput
	if err := json.NewDecoder(resp.Body).Decode(&output); err != nil {
		return nil, fmt.Errorf("imagekit decode: %w", err)
	}

	return &output, nil
}
