// Package util holds small shared helpers.
package util

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
)

// EncodeMD5 returns the 32 char hex MD5 of str.
func EncodeMD5(str string) string {
	h := md5.New()
	h.Write([]byte(str))
	return hex.EncodeToString(h.Sum(nil))
}

// EncodeHash32 hashes content with the same rolling hash the editor plugins
// use, so title hashes match across clients. Overflow on int32 is intended.
func EncodeHash32(content string) string {
	var hash int32 = 0
	runes := []rune(content)
	for i := 0; i < len(runes); i++ {
		char := int32(runes[i])
		hash = (hash << 5) - hash + char
	}
	return strconv.Itoa(int(hash))
}
