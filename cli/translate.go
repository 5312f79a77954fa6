package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bobonovski/gosmt/corpus"
	"github.com/bobonovski/gosmt/sstable"
	"github.com/bobonovski/gosmt/translation"
)

type TranslateOptions struct {
	// test corpus path, "-" reads stdin
	Input string
	// dictionary written by train
	Model string
	// full table written by train --table-out, used instead of Model
	Table  string
	Corpus corpus.Options
	// print a JSON array instead of text lines
	JSON bool
}

// Translate looks up every target language word of the test corpus in
// the trained model.
func Translate(opts TranslateOptions, stdin io.Reader, stdout io.Writer) ([]translation.Entry, error) {
	dict, err := loadDictionary(opts)
	if err != nil {
		return nil, err
	}

	var c *corpus.Corpus
	if opts.Input == "-" {
		c, err = corpus.Read(stdin, opts.Corpus)
	} else {
		c, err = corpus.Load(opts.Input, opts.Corpus)
	}
	if err != nil {
		return nil, fmt.Errorf("load test corpus: %w", err)
	}

	entries := dict.Lookup(corpus.NewVocabulary(c).Target.Words())
	if opts.JSON {
		enc := json.NewEncoder(stdout)
		enc.SetEscapeHTML(false)
		return entries, enc.Encode(entries)
	}
	for _, e := range entries {
		if _, err := fmt.Fprintln(stdout, e); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func loadDictionary(opts TranslateOptions) (translation.Dictionary, error) {
	switch {
	case opts.Model != "" && opts.Table != "":
		return nil, errors.New("only one of model and table may be given")
	case opts.Model != "":
		return translation.Load(opts.Model)
	case opts.Table != "":
		t, err := sstable.Deserialize(opts.Table)
		if err != nil {
			return nil, err
		}
		return translation.Dictionary(t.Best()), nil
	}
	return nil, errors.New("a model or a table is required")
}

func createTranslateCommand(v *viper.Viper) *cobra.Command {
	var opts TranslateOptions

	cmd := &cobra.Command{
		Use:   "translate <test-corpus>",
		Short: "Look up the words of a test corpus in a trained model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			opts.Corpus = corpusOptions(v)

			_, err := Translate(opts, cmd.InOrStdin(), cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.Model, "model", "m", "", "dictionary written by train")
	cmd.Flags().StringVar(&opts.Table, "table", "", "probability table written by train --table-out")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "print results as JSON")

	return cmd
}
