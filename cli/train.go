package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bobonovski/gosmt/corpus"
	"github.com/bobonovski/gosmt/matrix"
	"github.com/bobonovski/gosmt/model"
	"github.com/bobonovski/gosmt/sstable"
	"github.com/bobonovski/gosmt/translation"
)

type TrainOptions struct {
	// corpus path, "-" reads stdin
	Input string
	// dictionary path, empty writes to stdout
	Output string
	// optional path of the full probability table dump
	TableOutput string
	// registered model name
	Model    string
	Corpus   corpus.Options
	Training model.Options
}

// Train runs a full training session and writes the resulting
// dictionary. Nothing is written unless training succeeded.
func Train(ctx context.Context, opts TrainOptions, stdin io.Reader, stdout io.Writer) (*model.Result, error) {
	var (
		c   *corpus.Corpus
		err error
	)
	if opts.Input == "-" {
		c, err = corpus.Read(stdin, opts.Corpus)
	} else {
		c, err = corpus.Load(opts.Input, opts.Corpus)
	}
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	ctor, err := model.GetModel(opts.Model)
	if err != nil {
		return nil, err
	}
	m, err := ctor(c, opts.Training)
	if err != nil {
		return nil, err
	}
	res, err := m.Train(ctx)
	if err != nil {
		return nil, fmt.Errorf("train: %w", err)
	}

	dict := translation.Dictionary(res.Table.Best())

	// outputs are staged next to their destination and only renamed
	// into place once every one of them has been written
	var staged []stagedFile
	defer func() {
		for _, f := range staged {
			os.Remove(f.tmp)
		}
	}()

	if opts.TableOutput != "" {
		f, err := stage(opts.TableOutput, func(fn string) error {
			return sstable.Serialize(res.Table, fn)
		})
		if err != nil {
			return nil, fmt.Errorf("save table: %w", err)
		}
		staged = append(staged, f)
	}
	if opts.Output != "" {
		f, err := stage(opts.Output, dict.Save)
		if err != nil {
			return nil, fmt.Errorf("save model: %w", err)
		}
		staged = append(staged, f)
	} else if err := dict.Write(stdout); err != nil {
		return nil, fmt.Errorf("save model: %w", err)
	}

	for _, f := range staged {
		if err := os.Rename(f.tmp, f.dst); err != nil {
			return nil, err
		}
	}
	staged = nil
	return res, nil
}

type stagedFile struct {
	tmp string
	dst string
}

// stage runs save on a temporary file in the directory of dst.
func stage(dst string, save func(fn string) error) (stagedFile, error) {
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return stagedFile{}, err
	}
	tmp.Close()

	if err := save(tmp.Name()); err != nil {
		os.Remove(tmp.Name())
		return stagedFile{}, err
	}
	// CreateTemp makes the file private
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return stagedFile{}, err
	}
	return stagedFile{tmp: tmp.Name(), dst: dst}, nil
}

func createTrainCommand(v *viper.Viper) *cobra.Command {
	var opts TrainOptions

	cmd := &cobra.Command{
		Use:   "train <corpus>",
		Short: "Train a translation model on a parallel corpus",
		Long: `Train a translation model on a parallel corpus and write the most
probable source word of every target word as a JSON object.
Use "-" as corpus to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			opts.Model = v.GetString(keyModel)
			opts.Corpus = corpusOptions(v)
			training, err := trainingOptions(v)
			if err != nil {
				return err
			}
			opts.Training = training

			res, err := Train(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if !res.Converged {
				log.Warningf("model did not converge within %d iterations", res.Iterations)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default is stdout)")
	cmd.Flags().StringVar(&opts.TableOutput, "table-out", "", "also dump the full probability table to this file")
	cmd.Flags().Float64P("epsilon", "e", model.DefaultEpsilon, "acceptable euclidean distance between consecutive tables")
	cmd.Flags().Int("max-iter", 0, "stop after this many iterations even without convergence (0 is unbounded)")
	cmd.Flags().String("model", "ibm1", "model type, one of: "+strings.Join(model.Registered(), ", "))
	cmd.Flags().String("distance", "euclidean", "distance between consecutive tables, one of: "+strings.Join(matrix.DistanceNames(), ", "))

	mustBindPFlag(v, keyEpsilon, cmd.Flags(), "epsilon")
	mustBindPFlag(v, keyMaxIterations, cmd.Flags(), "max-iter")
	mustBindPFlag(v, keyModel, cmd.Flags(), "model")
	mustBindPFlag(v, keyDistance, cmd.Flags(), "distance")

	return cmd
}
