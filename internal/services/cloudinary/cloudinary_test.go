package cloudinary

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestThumbnailURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "standard delivery url",
			in:   "https://res.cloudinary.com/demo/image/upload/v123/profile.jpg",
			want: "https://res.cloudinary.com/demo/image/upload/w_150,h_150,c_thumb,g_face/v123/profile.jpg",
		},
		{
			name: "no upload segment returns input",
			in:   "https://example.com/images/profile.jpg",
			want: "https://example.com/images/profile.jpg",
		},
		{
			name: "only first upload segment is spliced",
			in:   "https://res.cloudinary.com/demo/image/upload/v1/upload/x.jpg",
			want: "https://res.cloudinary.com/demo/image/upload/w_150,h_150,c_thumb,g_face/v1/upload/x.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ThumbnailURL(tt.in); got != tt.want {
				t.Errorf("ThumbnailURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/demo/image/upload" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("not a multipart request: %v", err)
		}
		if got := r.FormValue("upload_preset"); got != "preset-1" {
			t.Errorf("upload_preset = %q", got)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("file part missing: %v", err)
		}
		w.Write([]byte(`{"secure_url":"https://res.cloudinary.com/demo/image/upload/v9/pic.png"}`))
	}))
	defer srv.Close()

	c := NewClient("demo")
	c.BaseURL = srv.URL

	res, err := c.Upload("pic.png", strings.NewReader("fake-bytes"), "preset-1")
	if err != nil {
		t.Fatalf("Upload() error: %v", err)
	}
	if res.URL != "https://res.cloudinary.com/demo/image/upload/v9/pic.png" {
		t.Errorf("url = %q", res.URL)
	}
}

func TestUploadProfilePictureDerivesThumbnail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"secure_url":"https://res.cloudinary.com/demo/image/upload/v9/face.png"}`))
	}))
	defer srv.Close()

	c := NewClient("demo")
	c.BaseURL = srv.URL

	res, err := c.UploadProfilePicture("face.png", strings.NewReader("fake"), "preset-1")
	if err != nil {
		t.Fatalf("UploadProfilePicture() error: %v", err)
	}
	want := "https://res.cloudinary.com/demo/image/upload/w_150,h_150,c_thumb,g_face/v9/face.png"
	if res.Thumbnail != want {
		t.Errorf("thumbnail = %q, want %q", res.Thumbnail, want)
	}
}

func TestUploadMissingConfig(t *testing.T) {
	c := NewClient("")
	if _, err := c.Upload("x.png", strings.NewReader("x"), "p"); err == nil {
		t.Error("expected error with empty cloud name")
	}

	c = NewClient("demo")
	if _, err := c.Upload("x.png", strings.NewReader("x"), ""); err == nil {
		t.Error("expected error with empty preset")
	}
}

func TestUploadErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Upload preset not found"}}`))
	}))
	defer srv.Close()

	c := NewClient("demo")
	c.BaseURL = srv.URL

	_, err := c.Upload("x.png", strings.NewReader("x"), "missing")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Upload preset not found") {
		t.Errorf("error should carry the API message, got %v", err)
	}
}
