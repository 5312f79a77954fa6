package corpus

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/golang/glog"
	"golang.org/x/text/unicode/norm"
)

const (
	DefaultTargetKey = "A"
	DefaultSourceKey = "B"
)

// SentencePair holds the whitespace tokenized sentences of one corpus
// entry. Repeated tokens are kept.
type SentencePair struct {
	Target []string
	Source []string
}

type Corpus struct {
	TargetKey string
	SourceKey string
	Pairs     []SentencePair
}

// Options controls how a corpus file is turned into sentence pairs.
type Options struct {
	// JSON keys of the target and source language sentences
	TargetKey string
	SourceKey string
	// apply unicode NFC normalization to every token
	Normalize bool
}

func (o Options) withDefaults() Options {
	if o.TargetKey == "" {
		o.TargetKey = DefaultTargetKey
	}
	if o.SourceKey == "" {
		o.SourceKey = DefaultSourceKey
	}
	return o
}

// Load reads a corpus from fn. The special name "-" reads from stdin.
func Load(fn string, opts Options) (*Corpus, error) {
	if fn == "-" {
		return Read(os.Stdin, opts)
	}

	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	return c, nil
}

// Read decodes a corpus of the form
// [{"A": "target sentence", "B": "source sentence"}, ...]
// Every entry must be an object carrying both language keys with a
// non-empty string value, otherwise a *FormatError is returned.
func Read(r io.Reader, opts Options) (*Corpus, error) {
	opts = opts.withDefaults()

	dec := json.NewDecoder(r)
	var entries []json.RawMessage
	if err := dec.Decode(&entries); err != nil {
		return nil, &FormatError{Index: -1, Reason: err.Error()}
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, &FormatError{Index: -1, Reason: "unexpected data after the corpus array"}
	}

	c := &Corpus{
		TargetKey: opts.TargetKey,
		SourceKey: opts.SourceKey,
		Pairs:     make([]SentencePair, 0, len(entries)),
	}
	for idx, raw := range entries {
		var entry map[string]json.RawMessage
		if err := json.Unmarshal(raw, &entry); err != nil || entry == nil {
			return nil, &FormatError{Index: idx, Reason: "entry is not an object"}
		}

		target, err := sentence(entry, idx, opts.TargetKey, opts.Normalize)
		if err != nil {
			return nil, err
		}
		source, err := sentence(entry, idx, opts.SourceKey, opts.Normalize)
		if err != nil {
			return nil, err
		}
		c.Pairs = append(c.Pairs, SentencePair{Target: target, Source: source})
	}

	log.V(1).Infof("number of sentence pairs %d", len(c.Pairs))
	return c, nil
}

func sentence(entry map[string]json.RawMessage, idx int, lang string, normalize bool) ([]string, error) {
	raw, ok := entry[lang]
	if !ok {
		return nil, &FormatError{Index: idx, Lang: lang, Reason: "missing language key"}
	}

	var val interface{}
	if err := json.Unmarshal(raw, &val); err != nil {
		return nil, &FormatError{Index: idx, Lang: lang, Reason: err.Error()}
	}
	text, ok := val.(string)
	if !ok {
		return nil, &FormatError{Index: idx, Lang: lang, Reason: "sentence is not a string"}
	}

	words := Tokenize(text, normalize)
	if len(words) == 0 {
		return nil, &FormatError{Index: idx, Lang: lang, Reason: "empty sentence"}
	}
	return words, nil
}

// Tokenize splits text on whitespace, optionally normalizing each token
// to unicode NFC.
func Tokenize(text string, normalize bool) []string {
	words := strings.Fields(text)
	if normalize {
		for i, w := range words {
			words[i] = norm.NFC.String(w)
		}
	}
	return words
}
