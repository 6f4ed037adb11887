package evidence

import (
	"strings"
	"testing"
)

func TestAllowedExtension(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"receipt.pdf", true},
		{"receipt.PDF", true},
		{"scan.png", true},
		{"photo.jpg", true},
		{"photo.JPEG", true},
		{"archive.zip", false},
		{"script.exe", false},
		{"noextension", false},
		{"double.pdf.exe", false},
	}
	for _, c := range cases {
		if got := AllowedExtension(c.in); got != c.want {
			t.Errorf("AllowedExtension(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestObjectKey(t *testing.T) {
	a := ObjectKey(42, "receipt.pdf")
	b := ObjectKey(42, "receipt.pdf")

	if a == b {
		t.Error("keys for the same input must not collide")
	}
	if !strings.HasPrefix(a, "42_") || !strings.HasSuffix(a, "_receipt.pdf") {
		t.Errorf("key %q should carry id prefix and original name suffix", a)
	}

	t.Run("path components are stripped", func(t *testing.T) {
		key := ObjectKey(1, "../../etc/passwd")
		if strings.Contains(key, "/") {
			t.Errorf("key %q must not contain path separators", key)
		}
	})
}

func TestKeyFromURL(t *testing.T) {
	key, err := keyFromURL("https://bucket.s3.us-east-1.amazonaws.com/42_abc_receipt.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if key != "42_abc_receipt.pdf" {
		t.Errorf("key = %q", key)
	}

	if _, err := keyFromURL("https://bucket.s3.us-east-1.amazonaws.com/"); err == nil {
		t.Error("expected error for URL without a key")
	}
}
