//go:build !windows

package prompt

const ttyDevice = "/dev/tty"
