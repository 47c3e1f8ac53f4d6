package lookup

//go:generate go tool stringer --linecomment --type Format --output format_string.go

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/goccy/go-yaml"
	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// Format identifies the on-disk encoding of a data file.
type Format int

const (
	// FormatTabular is comma-separated rows whose first cell is the key.
	FormatTabular Format = iota // tabular

	// FormatStructured is a YAML document whose top level maps keys to values.
	FormatStructured // structured
)

// File name extensions probed for each format, in order of preference.
const (
	ExtStructured = ".yaml"
	ExtTabular    = ".csv"
)

// FormatOf infers the format of the file at p from its extension.
func FormatOf(p string) Format {
	switch strings.ToLower(path.Ext(p)) {
	case ExtStructured, ".yml":
		return FormatStructured

	default:
		return FormatTabular
	}
}

// DataFile is the parsed content of a single data file.
type DataFile struct {
	Path     string
	Format   Format
	Checksum uint64
	// Keys lists the keys defined in the file, in file order.
	Keys []string
	data map[string]Value
}

// Get returns the raw value for key, already shaped for the file's format.
func (f *DataFile) Get(key string) (Value, bool) {
	v, ok := f.data[key]

	return v, ok
}

// Len returns the number of keys defined in the file.
func (f *DataFile) Len() int { return len(f.Keys) }

// Load reads and parses the data file at p from fsys.
func Load(fsys billy.Filesystem, p string, format Format) (*DataFile, error) {
	data, err := readFile(fsys, p)
	if err != nil {
		return nil, ErrReadDataFile.Wrap(err).With(slog.String("path", p))
	}

	return Parse(p, format, data)
}

// Parse parses data as the content of the file at p.
func Parse(p string, format Format, data []byte) (*DataFile, error) {
	file := &DataFile{
		Path:     p,
		Format:   format,
		Checksum: xxh3.Hash(data),
		data:     make(map[string]Value),
	}

	var err error

	switch format {
	case FormatTabular:
		err = file.parseTabular(data)

	case FormatStructured:
		err = file.parseStructured(data)

	default:
		err = fmt.Errorf("unsupported format %d", format)
	}

	if err != nil {
		return nil, ErrParseDataFile.Wrap(err).With(
			slog.String("path", p),
			slog.String("format", format.String()),
		)
	}

	return file, nil
}

func readFile(fsys billy.Filesystem, p string) ([]byte, error) {
	f, err := fsys.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ra := readahead.NewReader(f)
	defer ra.Close()

	return io.ReadAll(ra)
}

func (f *DataFile) define(key string, v Value) {
	if _, ok := f.data[key]; ok {
		return
	}

	f.data[key] = v
	f.Keys = append(f.Keys, key)
}

// parseTabular keeps the first row for each key. A row of exactly two cells
// is a scalar; any other row becomes a list of the cells following the key.
func (f *DataFile) parseTabular(data []byte) error {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}

		if len(row) == 0 {
			continue
		}

		if len(row) == 2 {
			f.define(row[0], Scalar(row[1]))

			continue
		}

		f.define(row[0], List(row[1:]...))
	}
}

// parseStructured requires the document to be a mapping. An empty document
// defines no keys.
func (f *DataFile) parseStructured(data []byte) error {
	var doc any

	err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap())
	if err != nil {
		return err
	}

	switch top := doc.(type) {
	case nil:
		return nil

	case yaml.MapSlice:
		for _, item := range top {
			f.define(keyString(item.Key), valueOf(item.Value))
		}

		return nil

	default:
		return fmt.Errorf("top level is %T, expected a mapping", doc)
	}
}

func keyString(k any) string {
	switch x := k.(type) {
	case string:
		return x

	case nil:
		return ""

	case bool:
		return strconv.FormatBool(x)

	default:
		return fmt.Sprint(x)
	}
}
