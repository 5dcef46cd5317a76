package cloudinary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Client does unsigned uploads against the Cloudinary upload API.
type Client struct {
	HTTP      *http.Client
	CloudName string
	BaseURL   string
}

func NewClient(cloudName string) *Client {
	return &Client{
		HTTP:      &http.Client{Timeout: 30 * time.Second},
		CloudName: cloudName,
		BaseURL:   "https://api.cloudinary.com/v1_1",
	}
}

type UploadResult struct {
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload posts one file with an upload preset and returns the secure URL.
func (c *Client) Upload(filename string, file io.Reader, preset string) (*UploadResult, error) {
	if c.CloudName == "" || preset == "" {
		return nil, fmt.Errorf("cloudinary configuration missing")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := w.WriteField("upload_preset", preset); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/image/upload", c.BaseURL, c.CloudName)
	req, err := http.NewRequest("POST", endpoint, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var apiResp uploadResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upload failed: %d %s", resp.StatusCode, apiResp.Error.Message)
	}

	return &UploadResult{URL: apiResp.SecureURL}, nil
}

// UploadProfilePicture also derives the fixed-size face-crop thumbnail
// URL from the returned path.
func (c *Client) UploadProfilePicture(filename string, file io.Reader, preset string) (*UploadResult, error) {
	res, err := c.Upload(filename, file, preset)
	if err != nil {
		return nil, err
	}
	res.Thumbnail = ThumbnailURL(res.URL)
	return res, nil
}

// ThumbnailURL rewrites a delivery URL to a 150x150 face-crop variant by
// splicing the transformation into the /upload/ path segment. URLs
// without that segment come back unchanged.
func ThumbnailURL(secureURL string) string {
	parts := strings.SplitN(secureURL, "/upload/", 2)
	if len(parts) != 2 {
		return secureURL
	}
	return parts[0] + "/upload/w_150,h_150,c_thumb,g_face/" + parts[1]
}
