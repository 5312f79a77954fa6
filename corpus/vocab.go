package corpus

import (
	"sort"

	log "github.com/golang/glog"
)

// WordNil is returned by IdOf for words outside the vocabulary.
const WordNil = -1

// Vocab is an immutable set of distinct words with dense ids. Ids are
// assigned in lexicographic order of the words.
type Vocab struct {
	id2str []string
	str2id map[string]int
}

// NewVocab builds a Vocab from words, dropping duplicates.
func NewVocab(words []string) *Vocab {
	seen := make(map[string]struct{}, len(words))
	id2str := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		id2str = append(id2str, w)
	}
	sort.Strings(id2str)

	str2id := make(map[string]int, len(id2str))
	for i, w := range id2str {
		str2id[w] = i
	}
	return &Vocab{id2str: id2str, str2id: str2id}
}

// Size returns the number of distinct words.
func (v *Vocab) Size() int { return len(v.id2str) }

// IdOf looks up the id of w, or WordNil if w is unknown.
func (v *Vocab) IdOf(w string) int {
	if id, ok := v.str2id[w]; ok {
		return id
	}
	return WordNil
}

// StringOf returns the word with the given id. id must be valid.
func (v *Vocab) StringOf(id int) string { return v.id2str[id] }

// Words returns the words in id order. The caller must not modify the
// returned slice.
func (v *Vocab) Words() []string { return v.id2str }

// Vocabulary holds the word sets of both languages of a corpus.
type Vocabulary struct {
	Target *Vocab
	Source *Vocab
}

// NewVocabulary collects every distinct word of each language in c.
func NewVocabulary(c *Corpus) *Vocabulary {
	var target, source []string
	for _, p := range c.Pairs {
		target = append(target, p.Target...)
		source = append(source, p.Source...)
	}

	v := &Vocabulary{
		Target: NewVocab(target),
		Source: NewVocab(source),
	}
	log.V(1).Infof("vocabulary size %d (%s), %d (%s)",
		v.Target.Size(), c.TargetKey, v.Source.Size(), c.SourceKey)
	return v
}

// Ids maps words to their ids in v. Unknown words map to WordNil.
func (v *Vocab) Ids(words []string) []int {
	ids := make([]int, len(words))
	for i, w := range words {
		ids[i] = v.IdOf(w)
	}
	return ids
}
