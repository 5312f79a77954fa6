package cli

import (
	"flag"
	"fmt"
	"strings"

	log "github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/bobonovski/gosmt/corpus"
	"github.com/bobonovski/gosmt/matrix"
	"github.com/bobonovski/gosmt/model"
)

const Version = "0.1.0"

// CreateRootCommand creates the gosmt command tree. Every call gets its
// own viper instance so commands can be built repeatedly in tests.
func CreateRootCommand() *cobra.Command {
	v := viper.New()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "gosmt",
		Short: "IBM Model 1 word translation trainer",
		Long: `gosmt estimates word translation probabilities from a parallel corpus
with IBM Model 1 trained by expectation maximization.

The corpus is a JSON array of sentence pairs:
  [{"A": "the house", "B": "das haus"}, ...]

Examples:
  gosmt train data/train.json -o data/model.json -v
  gosmt translate data/test.json --model data/model.json`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// glog reads its settings from the go flag set
			if err := flag.CommandLine.Parse(nil); err != nil {
				return err
			}
			if err := initConfig(v, cfgFile); err != nil {
				return err
			}
			if v.GetBool(keyVerbose) {
				// --verbose also enables glog's V(1) progress logs
				if err := flag.CommandLine.Set("v", "1"); err != nil {
					return err
				}
			}
			if used := v.ConfigFileUsed(); used != "" {
				log.V(1).Infof("using config file %s", used)
			}
			return nil
		},
	}

	// glog logs to files by default, keep diagnostics on stderr instead
	if f := flag.CommandLine.Lookup("logtostderr"); f != nil {
		f.DefValue = "true"
		if err := f.Value.Set("true"); err != nil {
			panic(err)
		}
	}
	flag.CommandLine.VisitAll(func(f *flag.Flag) {
		// -v is taken by --verbose, and test binaries register their own flags
		if f.Name == "v" || strings.HasPrefix(f.Name, "test.") {
			return
		}
		rootCmd.PersistentFlags().AddFlag(pflag.PFlagFromGoFlag(f))
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gosmt.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log the distance of every iteration and the iteration count")
	rootCmd.PersistentFlags().String("target-key", corpus.DefaultTargetKey, "JSON key of the target language sentences")
	rootCmd.PersistentFlags().String("source-key", corpus.DefaultSourceKey, "JSON key of the source language sentences")
	rootCmd.PersistentFlags().Bool("nfc", false, "normalize tokens to unicode NFC")

	mustBindPFlag(v, keyVerbose, rootCmd.PersistentFlags(), "verbose")
	mustBindPFlag(v, keyTargetKey, rootCmd.PersistentFlags(), "target-key")
	mustBindPFlag(v, keySourceKey, rootCmd.PersistentFlags(), "source-key")
	mustBindPFlag(v, keyNormalize, rootCmd.PersistentFlags(), "nfc")

	rootCmd.AddCommand(createTrainCommand(v), createTranslateCommand(v))
	return rootCmd
}

func corpusOptions(v *viper.Viper) corpus.Options {
	return corpus.Options{
		TargetKey: v.GetString(keyTargetKey),
		SourceKey: v.GetString(keySourceKey),
		Normalize: v.GetBool(keyNormalize),
	}
}

func trainingOptions(v *viper.Viper) (model.Options, error) {
	distance, err := matrix.DistanceByName(v.GetString(keyDistance))
	if err != nil {
		return model.Options{}, &model.ConfigError{
			Field:  "distance",
			Value:  v.GetString(keyDistance),
			Reason: "must be one of " + strings.Join(matrix.DistanceNames(), ", "),
		}
	}
	return model.Options{
		Epsilon:       v.GetFloat64(keyEpsilon),
		MaxIterations: v.GetInt(keyMaxIterations),
		Verbose:       v.GetBool(keyVerbose),
		Distance:      distance,
	}, nil
}

// mustBindPFlag binds the flag called name to key. A missing flag is a
// programming error and panics.
func mustBindPFlag(v *viper.Viper, key string, flags *pflag.FlagSet, name string) {
	if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", name, err))
	}
}
