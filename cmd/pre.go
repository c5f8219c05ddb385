package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func chainPreRunEs(preRunEs ...func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		for i := 0; i < len(preRunEs) && err == nil; i++ {
			err = preRunEs[i](cmd, args)
		}
		return
	}
}

// validateFilenames validates that only Markdown doc sources are provided.
func validateFilenames(cmd *cobra.Command, args []string) error {
	for _, fileName := range args {
		if strings.HasPrefix(fileName, "http") || strings.HasPrefix(fileName, "ws") {
			continue
		}

		ext := filepath.Ext(fileName)
		if ext != ".md" && ext != ".markdown" {
			return fmt.Errorf("gqldoc: invalid file extension: %s", fileName)
		}
	}

	return nil
}

// validateTypes validates the supplemental sources given by the --types flag.
func validateTypes(cmd *cobra.Command, args []string) error {
	types, err := cmd.Flags().GetStringSlice("types")
	if err != nil {
		return err
	}
	return validateFilenames(cmd, types)
}

// installLogger installs the global logger, leveled by the verbose flag.
func installLogger(cmd *cobra.Command, args []string) error {
	v, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if v {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	log, err := cfg.Build()
	if err != nil {
		return err
	}

	zap.ReplaceGlobals(log)
	return nil
}

// initGenDirs initializes each directory each generator will be outputting to.
func initGenDirs(fs afero.Fs, dirs *[]string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		for _, dir := range *dirs {
			zap.S().Info("creating directory:", dir)
			err = fs.MkdirAll(dir, 0755)
			if err != nil {
				break
			}
		}
		return
	}
}
