package media

import "testing"

func TestExtractPublicID(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1234567890/banhchi/banners/abc123.jpg", "banhchi/banners/abc123"},
		{"https://res.cloudinary.com/demo/image/upload/banhchi/gallery/xyz.png", "banhchi/gallery/xyz"},
	}
	for _, c := range cases {
		got, err := extractPublicID(c.url)
		if err != nil {
			t.Fatalf("%s: %v", c.url, err)
		}
		if got != c.want {
			t.Fatalf("%s: got %q, want %q", c.url, got, c.want)
		}
	}
}

func TestExtractPublicID_RejectsGarbage(t *testing.T) {
	if _, err := extractPublicID("https://example.com/not-cloudinary.jpg"); err == nil {
		t.Fatalf("expected error")
	}
}
