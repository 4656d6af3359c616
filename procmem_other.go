//go:build !linux && !windows

package injectee

func readMemory(int, uintptr, []byte) (int, error) {
	return 0, ErrUnsupported
}

func writeMemory(int, uintptr, []byte) (int, error) {
	return 0, ErrUnsupported
}
