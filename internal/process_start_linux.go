package internal

import (
	"os"
	"strconv"
	"strings"
)

// processStartTime returns the start time of pid in clock ticks since boot,
// read from /proc/<pid>/stat, or "" when it cannot be read
func processStartTime(pid int) string {
	if pid <= 0 {
		return ""
	}
	data, err := os.ReadFile("/proc/" + strconv.Itoa(pid) + "/stat")
	if err != nil {
		return ""
	}
	return parseStatStartTime(string(data))
}

// parseStatStartTime extracts field 22 (starttime) of a /proc stat line. The
// command name in field 2 may contain spaces and parentheses, so fields are
// counted from the last ')'.
func parseStatStartTime(stat string) string {
	end := strings.LastIndexByte(stat, ')')
	if end < 0 {
		return ""
	}
	fields := strings.Fields(stat[end+1:])
	// fields[0] is field 3 (state)
	const startTimeIndex = 22 - 3
	if len(fields) <= startTimeIndex {
		return ""
	}
	return fields[startTimeIndex]
}
