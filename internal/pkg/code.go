package pkg

import (
	"crypto/rand"
	"math/big"
)

// codeAlphabet keeps emailed codes easy to read back and type.
const codeAlphabet = "0123456789"

// RandCode returns an n-character one-shot verification code drawn uniformly
// from the code alphabet.
func RandCode(n int) (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = codeAlphabet[idx.Int64()]
	}
	return string(out), nil
}
