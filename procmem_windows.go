package injectee

import (
	"fmt"

	"golang.org/x/sys/windows"
)

func openProcess(pid int, access uint32) (windows.Handle, error) {
	h, err := windows.OpenProcess(access, false, uint32(pid))
	if err != nil {
		return 0, fmt.Errorf("OpenProcess pid=%d: %w", pid, err)
	}
	return h, nil
}

func readMemory(pid int, addr uintptr, buf []byte) (int, error) {
	h, err := openProcess(pid, windows.PROCESS_VM_READ)
	if err != nil {
		return 0, err
	}
	defer windows.CloseHandle(h)

	var n uintptr
	err = windows.ReadProcessMemory(h, addr, &buf[0], uintptr(len(buf)), &n)
	if err != nil {
		return int(n), fmt.Errorf("ReadProcessMemory pid=%d addr=0x%x: %w", pid, addr, err)
	}
	return int(n), nil
}

func writeMemory(pid int, addr uintptr, buf []byte) (int, error) {
	h, err := openProcess(pid, windows.PROCESS_VM_WRITE|windows.PROCESS_VM_OPERATION)
	if err != nil {
		return 0, err
	}
	defer windows.CloseHandle(h)

	var n uintptr
	err = windows.WriteProcessMemory(h, addr, &buf[0], uintptr(len(buf)), &n)
	if err != nil {
		return int(n), fmt.Errorf("WriteProcessMemory pid=%d addr=0x%x: %w", pid, addr, err)
	}
	return int(n), nil
}
