package injectee

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/arch/arm64/arm64asm"
	"golang.org/x/arch/x86/x86asm"
)

const maxX86InstLen = 15

// Instruction is one decoded instruction.
type Instruction struct {
	Addr  uint64
	Bytes []byte
	Text  string
}

func (i Instruction) String() string {
	return fmt.Sprintf("0x%08x\t%-20s\t%s", i.Addr, hex.EncodeToString(i.Bytes), i.Text)
}

// Disassemble decodes up to n instructions from the start of the function.
// Decoding stops early at the end of the captured code.
func (e Export) Disassemble(n int) ([]Instruction, error) {
	var out []Instruction
	code := e.Code

	for i := 0; i < len(code) && len(out) < n; {
		var (
			length int
			text   string
		)

		switch e.Arch {
		case ArchAMD64, Arch386:
			mode := 64
			if e.Arch == Arch386 {
				mode = 32
			}
			inst, err := x86asm.Decode(code[i:], mode)
			if err != nil && len(code)-i < maxX86InstLen {
				// Probably an instruction cut off by maxCodeBytes.
				return out, nil
			}
			if err != nil {
				return out, fmt.Errorf("decode error at offset %d: %w", i, err)
			}
			length, text = inst.Len, inst.String()
		case ArchARM64:
			if len(code)-i < 4 {
				return out, nil
			}
			inst, err := arm64asm.Decode(code[i : i+4])
			if err != nil {
				return out, fmt.Errorf("decode error at offset %d: %w", i, err)
			}
			length, text = 4, inst.String()
		default:
			return nil, fmt.Errorf("%s: unsupported architecture %q", e.Name, e.Arch)
		}

		out = append(out, Instruction{
			Addr:  e.Addr + uint64(i),
			Bytes: code[i : i+length],
			Text:  text,
		})
		i += length
	}

	return out, nil
}
