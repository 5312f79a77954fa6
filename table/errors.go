package table

import (
	"errors"
	"fmt"
)

var ErrUnknownWord = errors.New("table: word not in vocabulary")

// DegenerateVocabularyError is returned when a table cannot be built
// because the vocabulary of one language is empty.
type DegenerateVocabularyError struct {
	// "target" or "source"
	Side string
}

func (e *DegenerateVocabularyError) Error() string {
	return fmt.Sprintf("table: empty %s vocabulary", e.Side)
}
