package watcher

import "testing"

func TestIsSupported(t *testing.T) {
	cases := map[string]bool{
		"notes.txt":    true,
		"README.md":    true,
		"scan.PNG":     true,
		"slides.pdf":   true,
		"lecture.mp4":  false,
		"archive.zip":  false,
		"no-extension": false,
	}
	for path, want := range cases {
		if got := isSupported(path); got != want {
			t.Errorf("isSupported(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestMimeFor(t *testing.T) {
	if got := mimeFor("a.JPG"); got != "image/jpeg" {
		t.Fatalf("mimeFor = %q", got)
	}
	if got := mimeFor("weird.bin"); got != "application/octet-stream" {
		t.Fatalf("mimeFor = %q", got)
	}
}
