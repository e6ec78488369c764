package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/msto63/taxwise/internal/tax"
	"github.com/msto63/taxwise/pkg/core/apperror"
	"gopkg.in/yaml.v3"
)

// TableFile is the on-disk form of a bracket table
type TableFile struct {
	Name     string         `toml:"name" yaml:"name"`
	Brackets []BracketEntry `toml:"brackets" yaml:"brackets"`
}

// BracketEntry is one bracket row. Limit and rate may be written as
// numbers or strings ("8_000_000", "inf", "7%").
type BracketEntry struct {
	Limit Scalar `toml:"limit" yaml:"limit"`
	Rate  Scalar `toml:"rate" yaml:"rate"`
	Label string `toml:"label" yaml:"label"`
}

// Scalar accepts any TOML or YAML scalar and keeps its text
type Scalar string

// UnmarshalTOML implements toml.Unmarshaler
func (s *Scalar) UnmarshalTOML(v interface{}) error {
	switch x := v.(type) {
	case string:
		*s = Scalar(x)
	case int64:
		*s = Scalar(strconv.FormatInt(x, 10))
	case float64:
		*s = Scalar(strconv.FormatFloat(x, 'f', -1, 64))
	default:
		return fmt.Errorf("unsupported value %v (%T)", v, v)
	}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (s *Scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar", node.Line)
	}
	if node.ShortTag() == "!!null" {
		*s = ""
		return nil
	}
	*s = Scalar(node.Value)
	return nil
}

// LoadTable reads a bracket table from a .toml, .yaml or .yml file and
// validates it
func LoadTable(path string) (tax.Table, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return tax.Table{}, apperror.Wrap(err, apperror.CodeNotFound, "bracket table file not found").
				WithDetail("path", path)
		}
		return tax.Table{}, apperror.Wrap(err, apperror.CodeInternal, "failed to read bracket table").
			WithDetail("path", path)
	}

	var file TableFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &file)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	default:
		return tax.Table{}, apperror.New(apperror.CodeInvalidInput, "unsupported bracket table format").
			WithDetail("path", path).
			WithDetail("extension", ext)
	}
	if err != nil {
		return tax.Table{}, apperror.Wrap(err, apperror.CodeConfigInvariant, "failed to parse bracket table").
			WithDetail("path", path)
	}

	if file.Name == "" {
		file.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return file.Table()
}

// Table converts the file into a validated tax table
func (f TableFile) Table() (tax.Table, error) {
	table := tax.Table{Name: f.Name, Brackets: make([]tax.Bracket, 0, len(f.Brackets))}
	for i, e := range f.Brackets {
		b, err := tax.ParseBracket(string(e.Limit), string(e.Rate), e.Label)
		if err != nil {
			var ae *apperror.Error
			if errors.As(err, &ae) {
				return tax.Table{}, ae.WithDetail("index", i).WithDetail("table", f.Name)
			}
			return tax.Table{}, err
		}
		table.Brackets = append(table.Brackets, b)
	}
	if err := table.Validate(); err != nil {
		return tax.Table{}, err
	}
	return table, nil
}

// ResolveTable returns the configured table, or the built-in table when
// no file is set
func (c *Config) ResolveTable() (tax.Table, error) {
	if c.Tax.TableFile == "" {
		return tax.DefaultTable(), nil
	}
	return LoadTable(c.Tax.TableFile)
}
