//go:build windows

package cmd

// The unix preflight guards a shared TTY and a per-user lock file; on
// Windows the console handling is left to Bubble Tea.

func checkTTY() error { return nil }

func checkTERM() error { return nil }

func acquireLock(path string) (int, error) { return -1, nil }

func releaseLock(fd int) {}
