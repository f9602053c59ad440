package validate

import "testing"

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"watch with scheme and www", "https://www.youtube.com/watch?v=abc123", true},
		{"watch without www", "https://youtube.com/watch?v=abc123", true},
		{"watch without scheme", "www.youtube.com/watch?v=abc123", true},
		{"watch bare", "youtube.com/watch?v=abc123", true},
		{"watch http", "http://youtube.com/watch?v=abc123", true},
		{"watch with extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s&list=PL1", true},
		{"watch with hyphen and underscore id", "youtube.com/watch?v=a-b_c", true},
		{"short link", "https://youtu.be/abc123", true},
		{"short link with query", "youtu.be/abc123?t=5", true},
		{"shorts", "https://www.youtube.com/shorts/xyz789", true},
		{"shorts with query", "youtube.com/shorts/xyz789?feature=share", true},
		{"playlist", "https://www.youtube.com/playlist?list=PLabc-123", true},
		{"playlist with extra params", "youtube.com/playlist?list=PLabc&index=2", true},
		{"live", "https://www.youtube.com/live/stream123", true},
		{"live with query", "youtube.com/live/stream123?feature=share", true},

		// Prefix matching is deliberately permissive: trailing text after a
		// valid shape is still accepted.
		{"trailing garbage after valid prefix", "youtu.be/abc123 and some junk", true},

		{"empty string", "", false},
		{"other host", "https://vimeo.com/12345", false},
		{"bare host", "https://www.youtube.com/", false},
		{"watch without id", "https://www.youtube.com/watch?v=", false},
		{"channel page", "https://www.youtube.com/@somechannel", false},
		{"playlist without list param", "youtube.com/playlist?v=abc", false},
		{"garbage before url", "say youtube.com/watch?v=abc123", false},
		{"plain text", "not a url at all", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(tt.url); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestVideoID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch no scheme", "youtube.com/watch?v=abc123&t=10", "abc123"},
		{"short link", "https://youtu.be/abc123", "abc123"},
		{"short link with query", "youtu.be/abc123?t=5", "abc123"},
		{"playlist has no video id", "youtube.com/playlist?list=PLabc", ""},
		{"other host", "https://vimeo.com/12345", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VideoID(tt.url); got != tt.want {
				t.Errorf("VideoID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestDisplayTitle(t *testing.T) {
	if got := DisplayTitle("youtu.be/abc123"); got != "Video ID: abc123" {
		t.Errorf("DisplayTitle = %q, want 'Video ID: abc123'", got)
	}
	// Falls back to the raw URL when no ID can be derived.
	raw := "youtube.com/playlist?list=PLabc"
	if got := DisplayTitle(raw); got != raw {
		t.Errorf("DisplayTitle = %q, want %q", got, raw)
	}
}
