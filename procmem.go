package injectee

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrUnsupported is returned by PeekInt32 and PokeInt32 on platforms without
// a cross-process memory API.
var ErrUnsupported = errors.New("cross-process memory access not supported on this platform")

// PeekInt32 reads the int32 at addr in process pid.
func PeekInt32(pid int, addr uintptr) (int32, error) {
	buf := make([]byte, 4)
	n, err := readMemory(pid, addr, buf)
	if err != nil {
		return 0, err
	}
	if n != len(buf) {
		return 0, fmt.Errorf("short read at 0x%x in pid %d: %d bytes", addr, pid, n)
	}
	return int32(binary.NativeEndian.Uint32(buf)), nil
}

// PokeInt32 writes v at addr in process pid. The write is not synchronized
// with anything the target is doing.
func PokeInt32(pid int, addr uintptr, v int32) error {
	buf := binary.NativeEndian.AppendUint32(nil, uint32(v))
	n, err := writeMemory(pid, addr, buf)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return fmt.Errorf("short write at 0x%x in pid %d: %d bytes", addr, pid, n)
	}
	return nil
}
