//go:build !linux

package internal

// processStartTime is only known on Linux; elsewhere tabs are matched by pid
func processStartTime(pid int) string {
	return ""
}
