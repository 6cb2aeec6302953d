// Package yamlutil is the single place that decodes YAML, so config loading
// shares one set of decoding options.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
)

// UnmarshalStrict decodes data into v, rejecting keys v has no field for.
// Error messages carry the line and column of the offending key.
func UnmarshalStrict(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if v == nil {
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %s", yaml.FormatError(err, false, true))
	}
	return nil
}
