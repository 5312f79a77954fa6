package cli

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	keyModel         = "train.model"
	keyEpsilon       = "train.epsilon"
	keyMaxIterations = "train.max_iterations"
	keyDistance      = "train.distance"
	keyTargetKey     = "corpus.target_key"
	keySourceKey     = "corpus.source_key"
	keyNormalize     = "corpus.nfc"
	keyVerbose       = "verbose"
)

var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// initConfig reads the optional config file and GOSMT_* environment
// variables into v. Without cfgFile, .gosmt.yaml is searched in the
// home and working directories.
func initConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".gosmt")
	}

	v.SetEnvPrefix("GOSMT")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			return nil
		}
		return err
	}
	return nil
}
