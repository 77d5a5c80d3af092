package commands

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestServiceFor(t *testing.T) {
	tests := []struct {
		name        string
		goos        string
		wantPath    string
		wantContent []string
	}{
		{
			name:        "linux systemd unit",
			goos:        "linux",
			wantPath:    filepath.Join("/home/u", ".config", "systemd", "user", "scrapfolio.service"),
			wantContent: []string{"ExecStart=/usr/local/bin/scrapfolio serve --addr 127.0.0.1:8080", "WantedBy=default.target"},
		},
		{
			name:        "darwin launchd plist",
			goos:        "darwin",
			wantPath:    filepath.Join("/home/u", "Library", "LaunchAgents", "com.scrapfolio.plist"),
			wantContent: []string{"<string>com.scrapfolio</string>", "<string>/usr/local/bin/scrapfolio</string>", "<string>127.0.0.1:8080</string>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := serviceFor(tt.goos, "/home/u", "/usr/local/bin/scrapfolio", "127.0.0.1:8080")
			if err != nil {
				t.Fatalf("serviceFor failed: %v", err)
			}
			if svc.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", svc.Path, tt.wantPath)
			}
			for _, want := range tt.wantContent {
				if !strings.Contains(svc.Content, want) {
					t.Errorf("content missing %q:\n%s", want, svc.Content)
				}
			}
			if len(svc.Enable) == 0 || len(svc.Disable) == 0 {
				t.Error("expected enable and disable commands")
			}
		})
	}
}

func TestServiceForUnsupported(t *testing.T) {
	if _, err := serviceFor("plan9", "/home/u", "/bin/scrapfolio", ":8080"); err == nil {
		t.Error("expected error for unsupported platform")
	}
}
