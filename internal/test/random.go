package test

import "math/rand/v2"

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomString returns a pseudo-random alphanumeric string with length in [minLen, maxLen].
func RandomString(minLen, maxLen int) string {
	minLen = max(minLen, 1)
	maxLen = max(maxLen, minLen)
	buf := make([]byte, minLen+rand.IntN(maxLen-minLen+1))
	for i := range buf {
		buf[i] = alphanumeric[rand.IntN(len(alphanumeric))]
	}
	return string(buf)
}

// RandomOwner returns an orderName value no other test uses.
func RandomOwner() string {
	return "user-" + RandomString(6, 12)
}

// RandomIdempotencyKey mimics the keys clients send with a submit.
func RandomIdempotencyKey() string {
	return RandomString(8, 8) + "-" + RandomString(4, 4) + "-" + RandomString(12, 12)
}
