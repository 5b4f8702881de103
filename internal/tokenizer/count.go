package tokenizer

import (
	"errors"
)

// CountDocument returns the number of tokens counter assigns to document.
func CountDocument(counter Counter, document string) (int, error) {
	if counter == nil {
		return 0, errors.New("nil tokenizer counter")
	}
	return counter.CountString(document)
}
