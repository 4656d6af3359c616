//go:build windows

package injectee

import "golang.org/x/sys/windows"

const (
	protRO = windows.PAGE_READONLY
	protRW = windows.PAGE_READWRITE
)
