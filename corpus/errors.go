package corpus

import "fmt"

// FormatError reports a structurally invalid corpus entry. Index is the
// position of the entry in the corpus array, or -1 when the corpus as a
// whole could not be decoded.
type FormatError struct {
	Index  int
	Lang   string
	Reason string
}

func (e *FormatError) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("corpus: %s", e.Reason)
	case e.Lang == "":
		return fmt.Sprintf("corpus: entry %d: %s", e.Index, e.Reason)
	default:
		return fmt.Sprintf("corpus: entry %d, language %q: %s", e.Index, e.Lang, e.Reason)
	}
}
