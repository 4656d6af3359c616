package injectee

import (
	"debug/elf"
	"errors"
	"fmt"
	"io"
	"os"
)

// maxCodeBytes is how much of each exported function ReadExports keeps.
const maxCodeBytes = 64

// ErrNoExports is returned when a module has no exported functions.
var ErrNoExports = errors.New("no exported functions")

// Arch is the instruction set of a module.
type Arch string

const (
	ArchAMD64 Arch = "amd64"
	Arch386   Arch = "386"
	ArchARM64 Arch = "arm64"
)

// Export is a function a module makes resolvable by name.
type Export struct {
	Name string
	// Addr is the function's address at the module's preferred base.
	Addr uint64
	Arch Arch
	// Code is the start of the function body, if it could be read.
	Code []byte
}

// ReadExports returns the exported functions of the ELF or PE file at path.
func ReadExports(path string) ([]Export, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var magic [4]byte
	if _, err := io.ReadFull(f, magic[:]); err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}

	var exports []Export
	switch {
	case string(magic[:]) == elf.ELFMAG:
		exports, err = readELFExports(f)
	case magic[0] == 'M' && magic[1] == 'Z':
		exports, err = readPEExports(f)
	default:
		return nil, fmt.Errorf("%s: unrecognized file format", path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(exports) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoExports)
	}
	return exports, nil
}

// FindExport returns the export called name.
func FindExport(exports []Export, name string) (Export, bool) {
	for _, e := range exports {
		if e.Name == name {
			return e, true
		}
	}
	return Export{}, false
}

func readELFExports(r io.ReaderAt) ([]Export, error) {
	f, err := elf.NewFile(r)
	if err != nil {
		return nil, err
	}

	var arch Arch
	switch f.Machine {
	case elf.EM_X86_64:
		arch = ArchAMD64
	case elf.EM_386:
		arch = Arch386
	case elf.EM_AARCH64:
		arch = ArchARM64
	}

	// A shared object's exports are its defined dynamic symbols.
	// Executables usually don't have any, so fall back to the full symbol
	// table.
	dynsyms, err := f.DynamicSymbols()
	if err != nil && !errors.Is(err, elf.ErrNoSymbols) {
		return nil, err
	}
	exports := elfFuncs(f, arch, dynsyms)
	if len(exports) > 0 {
		return exports, nil
	}

	syms, err := f.Symbols()
	if errors.Is(err, elf.ErrNoSymbols) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return elfFuncs(f, arch, syms), nil
}

func elfFuncs(f *elf.File, arch Arch, syms []elf.Symbol) []Export {
	var exports []Export
	for _, sym := range syms {
		if elf.ST_TYPE(sym.Info) != elf.STT_FUNC || sym.Section == elf.SHN_UNDEF {
			continue
		}

		exports = append(exports, Export{
			Name: sym.Name,
			Addr: sym.Value,
			Arch: arch,
			Code: elfCode(f, sym),
		})
	}
	return exports
}

func elfCode(f *elf.File, sym elf.Symbol) []byte {
	if int(sym.Section) >= len(f.Sections) {
		return nil
	}
	sec := f.Sections[sym.Section]
	if sec.Type == elf.SHT_NOBITS || sym.Value < sec.Addr || sym.Value >= sec.Addr+sec.Size {
		return nil
	}

	size := uint64(maxCodeBytes)
	if sym.Size > 0 && sym.Size < size {
		size = sym.Size
	}
	if rem := sec.Addr + sec.Size - sym.Value; rem < size {
		size = rem
	}

	buf := make([]byte, size)
	n, err := sec.ReadAt(buf, int64(sym.Value-sec.Addr))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil
	}
	return buf[:n]
}
