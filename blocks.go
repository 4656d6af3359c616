package injectee

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/pboyd/malloc"
)

const arenaStartSize = 4096

// BlockArena allocates parameter blocks outside the Go heap. The addresses
// it returns never move and the garbage collector never looks at them, so
// they can be handed to a foreign caller as a plain machine word, the same
// way an injector hands over memory it allocated in the target.
//
// The zero value is ready to use.
type BlockArena struct {
	// startSize overrides arenaStartSize when non-zero.
	startSize uint64

	arena    *malloc.Arena
	protect  func(int) error
	mu       sync.Mutex
	initOnce sync.Once
	initErr  error
	sealed   bool

	// Keep the slices so blocks can be freed by address.
	blocks map[uintptr][]byte
}

func (a *BlockArena) init() error {
	a.initOnce.Do(func() {
		be := malloc.MmapBackend(malloc.MmapProt(protRW))
		if protBE, ok := be.(malloc.ProtectedArenaBackend); ok {
			a.protect = protBE.Protect
		} else {
			a.protect = func(int) error {
				return nil
			}
		}

		size := a.startSize
		if size == 0 {
			size = arenaStartSize
		}
		a.arena = malloc.NewArena(size, malloc.Backend(be))
		if a.arena == nil {
			a.initErr = errors.New("unable to initialize arena")
			return
		}
		a.blocks = map[uintptr][]byte{}
	})
	return a.initErr
}

func (a *BlockArena) allocate(size int) (unsafe.Pointer, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	err := a.init()
	if err != nil {
		return nil, fmt.Errorf("error initializing arena: %w", err)
	}

	if a.sealed {
		panic("allocate called on sealed arena")
	}

	buf, err := malloc.MallocSlice[byte](a.arena, size)
	if err != nil {
		return nil, err
	}
	clear(buf)

	ptr := unsafe.Pointer(unsafe.SliceData(buf))
	a.blocks[uintptr(ptr)] = buf
	return ptr, nil
}

// NewPair allocates a Pair holding x and y.
func (a *BlockArena) NewPair(x, y int32) (*Pair, error) {
	ptr, err := a.allocate(int(unsafe.Sizeof(Pair{})))
	if err != nil {
		return nil, err
	}
	p := (*Pair)(ptr)
	p[0], p[1] = x, y
	return p, nil
}

// NewVec allocates a Vec holding x and y.
func (a *BlockArena) NewVec(x, y int32) (*Vec, error) {
	ptr, err := a.allocate(int(unsafe.Sizeof(Vec{})))
	if err != nil {
		return nil, err
	}
	v := (*Vec)(ptr)
	v.X, v.Y = x, y
	return v, nil
}

// Free releases the block at ptr. Freeing an address the arena didn't hand
// out is a no-op.
func (a *BlockArena) Free(ptr unsafe.Pointer) {
	a.mu.Lock()
	defer a.mu.Unlock()

	buf, ok := a.blocks[uintptr(ptr)]
	if !ok {
		return
	}

	if a.sealed {
		panic("Free called on sealed arena")
	}

	delete(a.blocks, uintptr(ptr))
	malloc.FreeSlice(a.arena, buf)
}

// Len returns the number of live blocks.
func (a *BlockArena) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.blocks)
}

// Seal makes every block read-only. Use it before handing blocks to a
// function that only borrows them; a stray write faults instead of
// corrupting the block.
func (a *BlockArena) Seal() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.protect == nil || a.sealed {
		return nil
	}

	err := a.protect(protRO)
	if err == nil {
		a.sealed = true
	}
	return err
}

// Unseal makes the blocks writable again.
func (a *BlockArena) Unseal() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.sealed {
		return nil
	}

	err := a.protect(protRW)
	if err == nil {
		a.sealed = false
	}
	return err
}
