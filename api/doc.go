// Package api
// Author: momentics <momentics@gmail.com>
//
// Contract layer for the atombuf library.
// Declares the memory ordering vocabulary, the byte-level block allocator
// interface, allocation statistics, and the out-of-memory failure hook.
// Implementations live in internal/rawmem and the alloc and buffer packages.
package api
