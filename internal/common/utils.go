package common

// WipeByteArray zeroes buf in place. Passwords read from the terminal are wiped
// once they have been handed to the auth layer.
func WipeByteArray(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
