package commands

import (
	"os"
	"strings"
	"time"
)

// LogStats summarizes the server log for the dashboard
type LogStats struct {
	Lines       []string
	Requests    int
	LastRequest time.Time
}

const logTimeLayout = "2006-01-02 15:04:05"

// ParseLogFile reads the log file, keeps its last maxLines lines and counts
// the requests it records
func ParseLogFile(logPath string, maxLines int) LogStats {
	content, err := os.ReadFile(logPath)
	if err != nil {
		return LogStats{Lines: []string{"Unable to read log file"}}
	}

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		lines = nil
	}

	var stats LogStats
	for _, line := range lines {
		if !strings.Contains(line, "request served") {
			continue
		}
		stats.Requests++
		// Format: 2025-11-27 14:11:57 INFO request served ...
		if len(line) > len(logTimeLayout) {
			if t, err := time.ParseInLocation(logTimeLayout, line[:len(logTimeLayout)], time.Local); err == nil {
				stats.LastRequest = t
			}
		}
	}

	startIdx := 0
	if len(lines) > maxLines {
		startIdx = len(lines) - maxLines
	}
	stats.Lines = lines[startIdx:]

	return stats
}
