package gen

import (
	"os"
	"path/filepath"
)

var (
	// FeatureOrderManifest writes the creation order, the generation id and
	// the backend next to the entity descriptors.
	FeatureOrderManifest = Feature{
		Name:        "manifest",
		Stage:       Stable,
		Default:     true,
		Description: "Writes the entity creation order to order.<format> in the target directory",
		cleanup: func(c *Config) error {
			for _, f := range []Format{FormatJSON, FormatYAML, FormatMsgpack} {
				if err := remove(c.Target, manifestName(f)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	// FeatureValidator adds a Validate method to the generated Go models,
	// checking the validations declared in the model.
	FeatureValidator = Feature{
		Name:        "validator",
		Stage:       Experimental,
		Default:     false,
		Description: "Generates Validate methods on Go models from the model validations (required, min, max, ...)",
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureOrderManifest,
		FeatureValidator,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development and may change or go away.
	Experimental

	// Alpha features are complete but their output may still change.
	Alpha

	// Beta features are documented and their output is not expected to change.
	Beta

	// Stable features have been in use for a while.
	Stable
)

// A Feature of the generator.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string

	// cleanup removes the output of the feature when it is disabled,
	// e.g. files of previous runs.
	cleanup func(*Config) error
}

func defaultFeatures() []Feature {
	var fs []Feature
	for _, f := range AllFeatures {
		if f.Default {
			fs = append(fs, f)
		}
	}
	return fs
}

// cleanupFeatures runs the cleanup of every disabled feature.
func cleanupFeatures(c *Config) error {
	for _, f := range AllFeatures {
		if f.cleanup == nil || c.HasFeature(f.Name) {
			continue
		}
		if err := f.cleanup(c); err != nil {
			return err
		}
	}
	return nil
}

// remove file (if exists) and its dir if it's empty.
func remove(dir, file string) error {
	if err := os.Remove(filepath.Join(dir, file)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	infos, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		return os.Remove(dir)
	}
	return nil
}
