package translation

// Entry is the lookup result for a single word.
type Entry struct {
	Word        string `json:"word"`
	Translation string `json:"translation,omitempty"`
	Found       bool   `json:"found"`
}

func (e Entry) String() string {
	if !e.Found {
		return e.Word
	}
	return e.Word + " = " + e.Translation
}

// Lookup reports the translation of every word in words, keeping
// their order.
func (d Dictionary) Lookup(words []string) []Entry {
	entries := make([]Entry, len(words))
	for i, w := range words {
		tr, ok := d[w]
		entries[i] = Entry{Word: w, Translation: tr, Found: ok}
	}
	return entries
}
