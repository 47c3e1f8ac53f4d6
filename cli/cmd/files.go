package cmd

import (
	"context"
	"fmt"
	"strconv"
)

// Files lists the data files a lookup would search, highest priority first.
type Files struct {
	ExtraFile string `arg:"" help:"Data file searched before the precedence files" name:"file" optional:""`
	Verbose   bool   `help:"Include format, key count and checksum"        short:"v"`
}

// fileInfo describes one data file in structured output.
type fileInfo struct {
	Path     string `json:"path"     yaml:"path"`
	Format   string `json:"format"   yaml:"format"`
	Keys     int    `json:"keys"     yaml:"keys"`
	Checksum string `json:"checksum" yaml:"checksum"`
}

// Run executes the files command.
func (f *Files) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	t, err := targetFrom(ctx)
	if err != nil {
		return err
	}

	files, err := t.Engine.Files(ctx, t.Request, f.ExtraFile)
	if err != nil {
		return ErrListFiles.Wrap(err)
	}

	info := make([]fileInfo, len(files))

	for i, c := range files {
		info[i] = fileInfo{Path: c.Path, Format: c.Format.String()}

		if !f.Verbose && t.Output == OutputText {
			continue
		}

		file, err := t.Engine.DataFile(ctx, t.Request, c)
		if err != nil {
			return ErrListFiles.Wrap(err)
		}

		info[i].Keys = file.Len()
		info[i].Checksum = fmt.Sprintf("%016x", file.Checksum)
	}

	if t.Output != OutputText {
		return t.Output.encode(t.Stdout, info)
	}

	lines := make([]string, len(info))

	for i, fi := range info {
		lines[i] = pathStyle.Render(fi.Path)

		if f.Verbose {
			lines[i] += formatStyle.Render(
				" " + fi.Format + " " + strconv.Itoa(fi.Keys) + " " + fi.Checksum,
			)
		}
	}

	return writeLines(t.Stdout, lines...)
}
