//go:build unix

package injectee

import "syscall"

const (
	protRO = syscall.PROT_READ
	protRW = syscall.PROT_READ | syscall.PROT_WRITE
)
