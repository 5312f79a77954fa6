package translation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Dictionary maps every target word to its most probable source word.
type Dictionary map[string]string

// Encode returns the JSON form of d. Non-ASCII words are kept as is.
func (d Dictionary) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]string(d)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d Dictionary) Write(w io.Writer) error {
	data, err := d.Encode()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Save writes d to fn. The file is only created once encoding succeeded.
func (d Dictionary) Save(fn string) error {
	data, err := d.Encode()
	if err != nil {
		return err
	}
	return os.WriteFile(fn, data, 0o644)
}

func Read(r io.Reader) (Dictionary, error) {
	var d Dictionary
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode dictionary: %w", err)
	}
	if d == nil {
		d = Dictionary{}
	}
	return d, nil
}

func Load(fn string) (Dictionary, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	return d, nil
}
