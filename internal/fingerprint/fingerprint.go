// Package fingerprint decides whether an upstream body changed since the last accepted one.
//
// The checksum is a heuristic: a collision only costs one skipped redraw, which the next
// real change or any failure reset recovers.
package fingerprint

import (
	"fmt"
	"hash/crc32"
)

// None is the zero fingerprint; it means no body has been accepted yet.
const None uint32 = 0

// Sum returns the IEEE CRC-32 of body.
func Sum(body []byte) uint32 {
	return crc32.ChecksumIEEE(body)
}

// Changed reports whether current differs from previous.
func Changed(current, previous uint32) bool {
	return current != previous
}

// Hex formats a fingerprint the way it is logged.
func Hex(sum uint32) string {
	return fmt.Sprintf("0x%08X", sum)
}
