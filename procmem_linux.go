package injectee

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// process_vm_readv and process_vm_writev don't stop the target. They need
// ptrace access to it (same user, and a descendant under Yama scope 1).

func readMemory(pid int, addr uintptr, buf []byte) (int, error) {
	local := []unix.Iovec{{Base: &buf[0]}}
	local[0].SetLen(len(buf))
	remote := []unix.RemoteIovec{{Base: addr, Len: len(buf)}}

	n, err := unix.ProcessVMReadv(pid, local, remote, 0)
	if err != nil {
		return n, fmt.Errorf("process_vm_readv pid=%d addr=0x%x: %w", pid, addr, err)
	}
	return n, nil
}

func writeMemory(pid int, addr uintptr, buf []byte) (int, error) {
	local := []unix.Iovec{{Base: &buf[0]}}
	local[0].SetLen(len(buf))
	remote := []unix.RemoteIovec{{Base: addr, Len: len(buf)}}

	n, err := unix.ProcessVMWritev(pid, local, remote, 0)
	if err != nil {
		return n, fmt.Errorf("process_vm_writev pid=%d addr=0x%x: %w", pid, addr, err)
	}
	return n, nil
}
