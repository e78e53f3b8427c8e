// Package memzero wipes derived keys and decrypted session bytes once the
// store is done with them.
package memzero

// Zero overwrites every buffer with zeros. Nil and empty buffers are skipped.
func Zero(bufs ...[]byte) {
	for _, b := range bufs {
		clear(b)
	}
}
