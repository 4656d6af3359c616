// Targets and payloads for testing process injection
//
// I wanted something small to point an injector at: a process that prints a
// number and where that number lives, and a couple of shared libraries with
// functions that can be started with CreateRemoteThread. This package holds
// the Go side of both. The binaries live under cmd/.
//
// The exported functions follow the shape a remote thread can call: one
// argument that fits in a register (a uint32 or a pointer to a packed block)
// and one result in the return register. Anything bigger is written into the
// target's memory first and passed by address.
//
// Limitations:
//   - The export contract assumes amd64, where there is one calling convention
//   - Nothing is validated. A bad pointer crashes the target.
package injectee
