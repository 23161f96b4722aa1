package cmn

import (
	"encoding/hex"

	"github.com/cespare/xxhash"
)

// HashXXH64 hex encoded xxhash of the content
func HashXXH64(content []byte) string {
	h := xxhash.New()
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}
