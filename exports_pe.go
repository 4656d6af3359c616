package injectee

import (
	"errors"
	"io"

	"github.com/Binject/debug/pe"
)

const (
	peExportDirectory     = 0
	peMachineARM64 uint16 = 0xaa64
)

func readPEExports(r io.ReaderAt) ([]Export, error) {
	f, err := pe.NewFile(r)
	if err != nil {
		return nil, err
	}

	var (
		imageBase uint64
		exportDir pe.DataDirectory
	)
	switch oh := f.OptionalHeader.(type) {
	case *pe.OptionalHeader32:
		imageBase = uint64(oh.ImageBase)
		if oh.NumberOfRvaAndSizes > peExportDirectory {
			exportDir = oh.DataDirectory[peExportDirectory]
		}
	case *pe.OptionalHeader64:
		imageBase = oh.ImageBase
		if oh.NumberOfRvaAndSizes > peExportDirectory {
			exportDir = oh.DataDirectory[peExportDirectory]
		}
	default:
		return nil, errors.New("missing optional header")
	}
	if exportDir.VirtualAddress == 0 {
		return nil, nil
	}

	var arch Arch
	switch f.Machine {
	case pe.IMAGE_FILE_MACHINE_AMD64:
		arch = ArchAMD64
	case pe.IMAGE_FILE_MACHINE_I386:
		arch = Arch386
	case peMachineARM64:
		arch = ArchARM64
	}

	peExports, err := f.Exports()
	if err != nil {
		return nil, err
	}

	exportStart := exportDir.VirtualAddress
	exportEnd := exportStart + exportDir.Size

	exports := make([]Export, 0, len(peExports))
	for _, e := range peExports {
		// Ordinal-only exports can't be resolved by name.
		if e.Name == "" {
			continue
		}
		// An address inside the export directory is a forwarder string,
		// not code.
		if e.VirtualAddress >= exportStart && e.VirtualAddress < exportEnd {
			continue
		}

		exports = append(exports, Export{
			Name: e.Name,
			Addr: imageBase + uint64(e.VirtualAddress),
			Arch: arch,
			Code: peCode(f, e.VirtualAddress),
		})
	}
	return exports, nil
}

// peCode reads the start of the function at rva, stopping at the end of its
// section.
func peCode(f *pe.File, rva uint32) []byte {
	for _, s := range f.Sections {
		size := s.VirtualSize
		if size == 0 {
			size = s.Size
		}
		if rva < s.VirtualAddress || rva >= s.VirtualAddress+size {
			continue
		}

		off := rva - s.VirtualAddress
		if off >= s.Size {
			return nil
		}
		n := min(uint32(maxCodeBytes), s.Size-off)

		buf := make([]byte, n)
		if _, err := s.ReadAt(buf, int64(off)); err != nil {
			return nil
		}
		return buf
	}
	return nil
}
