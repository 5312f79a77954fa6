package sstable

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	log "github.com/golang/glog"

	"github.com/bobonovski/gosmt/corpus"
	"github.com/bobonovski/gosmt/table"
)

// upper bound on the vocabulary size of either language in a dump
const maxWords = 1 << 24

// Serialize writes t to fn. The format is
//
//	rows,cols
//	<rows target words, one per line>
//	<cols source words, one per line>
//	ridx,cidx,value
//	...
//
// where only nonzero values are written.
func Serialize(t *table.Table, fn string) error {
	out, err := os.OpenFile(fn, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	if err := Write(t, out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func Write(t *table.Table, w io.Writer) error {
	out := bufio.NewWriter(w)

	r, c := t.Matrix().Shape()
	// write the matrix shape
	fmt.Fprintf(out, "%d,%d\n", r, c)

	for _, word := range t.Target().Words() {
		fmt.Fprintln(out, word)
	}
	for _, word := range t.Source().Words() {
		fmt.Fprintln(out, word)
	}

	var val float64
	for ridx := 0; ridx < r; ridx += 1 {
		for cidx := 0; cidx < c; cidx += 1 {
			val = t.At(ridx, cidx)
			if val > 0 { // only write out nonzero value
				fmt.Fprintf(out, "%d,%d,%s\n", ridx, cidx,
					strconv.FormatFloat(val, 'e', -1, 64))
			}
		}
	}
	return out.Flush()
}

// Deserialize reads a table written by Serialize.
func Deserialize(fn string) (*table.Table, error) {
	file, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	t, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	return t, nil
}

func Read(r io.Reader) (*table.Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("model corrupted, shape not found")
	}
	shape := strings.Split(scanner.Text(), ",")
	if len(shape) != 2 {
		return nil, fmt.Errorf("model corrupted, shape not found: %s", scanner.Text())
	}
	row, err := strconv.Atoi(shape[0])
	if err != nil {
		return nil, err
	}
	col, err := strconv.Atoi(shape[1])
	if err != nil {
		return nil, err
	}
	if row < 0 || col < 0 || row > maxWords || col > maxWords {
		return nil, fmt.Errorf("model corrupted, bad shape: %s", scanner.Text())
	}

	target, err := readVocab(scanner, row)
	if err != nil {
		return nil, err
	}
	source, err := readVocab(scanner, col)
	if err != nil {
		return nil, err
	}
	tmp, err := table.New(target, source)
	if err != nil {
		return nil, err
	}

	lineIdx := 1 + row + col
	for scanner.Scan() {
		lineIdx += 1
		txt := scanner.Text()

		value := strings.Split(txt, ",")
		if len(value) != 3 {
			log.Infof("data corrupted, row %d, data %s",
				lineIdx, txt)
			continue
		}
		ridx, err := strconv.Atoi(value[0])
		if err != nil {
			return nil, err
		}
		cidx, err := strconv.Atoi(value[1])
		if err != nil {
			return nil, err
		}
		val, err := strconv.ParseFloat(value[2], 64)
		if err != nil {
			return nil, err
		}
		if ridx < 0 || ridx >= row || cidx < 0 || cidx >= col {
			return nil, fmt.Errorf("model corrupted, index out of range at row %d: %s", lineIdx, txt)
		}
		tmp.SetAt(ridx, cidx, val)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return tmp, nil
}

// read n words which must be distinct and sorted so that the rebuilt
// vocabulary assigns the same ids
func readVocab(scanner *bufio.Scanner, n int) (*corpus.Vocab, error) {
	var words []string
	for len(words) < n && scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) != n {
		return nil, fmt.Errorf("model corrupted, expected %d words, found %d", n, len(words))
	}

	v := corpus.NewVocab(words)
	for i, w := range words {
		if v.IdOf(w) != i {
			return nil, fmt.Errorf("model corrupted, word %q out of order", w)
		}
	}
	return v, nil
}
