//go:build windows

package prompt

const ttyDevice = "CONIN$"
