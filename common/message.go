package common

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Message is a user-facing flash message pushed over the live channel.
// Transition conflicts degrade to a warning here instead of an error.
type Message struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

const (
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelWarning = "warning"
	LevelError   = "error"
)

func Msgf(level, format string, args ...any) Message {
	return Message{Level: level, Text: fmt.Sprintf(format, args...)}
}

const codeLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RandomCode returns n random ASCII letters; ticket numbers and coupon
// codes are this prefix plus the row id.
func RandomCode(n int) string {
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeLetters))))
		if err != nil {
			out[i] = codeLetters[0]
			continue
		}
		out[i] = codeLetters[idx.Int64()]
	}
	return string(out)
}
