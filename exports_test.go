package injectee

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildModule builds a cmd/ package as a shared library and returns its path.
func buildModule(t *testing.T, pkg string) string {
	t.Helper()

	if testing.Short() {
		t.Skip("builds a shared library")
	}
	if runtime.GOOS != "linux" {
		t.Skip("module is only an ELF file on linux")
	}
	goBin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go tool not found")
	}
	out, err := exec.Command(goBin, "env", "CGO_ENABLED").Output()
	if err != nil || strings.TrimSpace(string(out)) != "1" {
		t.Skip("cgo is disabled")
	}

	path := filepath.Join(t.TempDir(), filepath.Base(pkg)+".so")
	cmd := exec.Command(goBin, "build", "-buildmode=c-shared", "-o", path, pkg)
	out, err = cmd.CombinedOutput()
	require.NoError(t, err, "go build %s:\n%s", pkg, out)
	return path
}

func TestReadExports_InjectModule(t *testing.T) {
	exports, err := ReadExports(buildModule(t, "./cmd/inject"))
	require.NoError(t, err)

	for _, name := range []string{"echo", "fibonacci", "add", "plus2"} {
		e, ok := FindExport(exports, name)
		if assert.True(t, ok, "%s not exported", name) {
			assert.NotZero(t, e.Addr, name)
			assert.NotEmpty(t, e.Code, name)
			assert.Equal(t, Arch(runtime.GOARCH), e.Arch, name)
		}
	}

	switch runtime.GOARCH {
	case "amd64", "386", "arm64":
		e, _ := FindExport(exports, "echo")
		insts, err := e.Disassemble(2)
		require.NoError(t, err)
		require.Len(t, insts, 2)
		assert.Equal(t, e.Addr, insts[0].Addr)
	}
}

func TestReadExports_RandomModule(t *testing.T) {
	exports, err := ReadExports(buildModule(t, "./cmd/random"))
	require.NoError(t, err)

	for _, name := range []string{"seed", "seed_random", "random"} {
		_, ok := FindExport(exports, name)
		assert.True(t, ok, "%s not exported", name)
	}
}

func TestReadExports_PE(t *testing.T) {
	// testdata/mkdll.py writes this file.
	exports, err := ReadExports(filepath.Join("testdata", "inject_amd64.dll"))
	require.NoError(t, err)
	require.Len(t, exports, 4)

	want := map[string]uint64{
		"add":       0x180001020,
		"echo":      0x180001000,
		"fibonacci": 0x180001010,
		"plus2":     0x180001030,
	}
	for name, addr := range want {
		e, ok := FindExport(exports, name)
		if assert.True(t, ok, "%s not exported", name) {
			assert.Equal(t, addr, e.Addr, name)
			assert.Equal(t, ArchAMD64, e.Arch, name)
		}
	}

	e, _ := FindExport(exports, "echo")
	assert.Equal(t, []byte{0x89, 0xc8, 0xc3}, e.Code[:3])

	insts, err := e.Disassemble(2)
	require.NoError(t, err)
	require.Len(t, insts, 2)
	assert.Contains(t, insts[0].Text, "MOV")
	assert.Contains(t, insts[1].Text, "RET")

	e, _ = FindExport(exports, "plus2")
	insts, err = e.Disassemble(4)
	require.NoError(t, err)
	require.Len(t, insts, 4)
	assert.Equal(t, uint64(0x18000103a), insts[3].Addr)
	assert.Contains(t, insts[3].Text, "RET")
}

func TestReadExports_NotAModule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(path, []byte("just some text"), 0o644))

	_, err := ReadExports(path)
	assert.ErrorContains(t, err, "unrecognized file format")
}

func TestReadExports_Missing(t *testing.T) {
	_, err := ReadExports(filepath.Join(t.TempDir(), "nope.dll"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindExport(t *testing.T) {
	exports := []Export{{Name: "echo"}, {Name: "fibonacci", Addr: 0x1000}}

	e, ok := FindExport(exports, "fibonacci")
	assert.True(t, ok)
	assert.Equal(t, uint64(0x1000), e.Addr)

	_, ok = FindExport(exports, "random")
	assert.False(t, ok)
}

func TestDisassemble_AMD64(t *testing.T) {
	e := Export{
		Name: "echo",
		Addr: 0x180001000,
		Arch: ArchAMD64,
		// mov eax, ecx; ret
		Code: []byte{0x89, 0xc8, 0xc3},
	}

	insts, err := e.Disassemble(10)
	require.NoError(t, err)
	require.Len(t, insts, 2)

	assert.Equal(t, uint64(0x180001000), insts[0].Addr)
	assert.Equal(t, []byte{0x89, 0xc8}, insts[0].Bytes)
	assert.Contains(t, insts[0].Text, "MOV")
	assert.Equal(t, uint64(0x180001002), insts[1].Addr)
	assert.Contains(t, insts[1].Text, "RET")
	assert.Contains(t, insts[1].String(), "c3")
}

func TestDisassemble_ARM64(t *testing.T) {
	e := Export{
		Name: "echo",
		Arch: ArchARM64,
		// ret
		Code: []byte{0xc0, 0x03, 0x5f, 0xd6},
	}

	insts, err := e.Disassemble(1)
	require.NoError(t, err)
	require.Len(t, insts, 1)
	assert.Contains(t, insts[0].Text, "RET")
}

func TestDisassemble_Limit(t *testing.T) {
	e := Export{Arch: ArchAMD64, Code: []byte{0x90, 0x90, 0x90, 0x90}}
	insts, err := e.Disassemble(2)
	require.NoError(t, err)
	assert.Len(t, insts, 2)
}

func TestDisassemble_UnknownArch(t *testing.T) {
	e := Export{Name: "echo", Arch: "mips", Code: []byte{0, 0, 0, 0}}
	_, err := e.Disassemble(1)
	assert.ErrorContains(t, err, "unsupported architecture")
}
