package lookup

import (
	"slices"

	"github.com/go-git/go-billy/v5"
)

// Candidate is an existing data file selected for a lookup.
type Candidate struct {
	Path   string
	Format Format
}

// Candidates expands the precedence templates into the ordered list of data
// files to search.
//
// Each template is interpolated with r and joined to datadir. The structured
// variant of the resulting base path is preferred over the tabular one, and a
// base path with neither is skipped. If extraFile names an existing file, it
// is used verbatim and searched first. The templates slice is not modified.
func Candidates(
	fsys billy.Filesystem,
	datadir string,
	templates []string,
	r VariableResolver,
	extraFile string,
	limit int,
) ([]Candidate, error) {
	templates = slices.Clone(templates)
	result := make([]Candidate, 0, len(templates)+1)

	if extraFile != "" && isFile(fsys, extraFile) {
		result = append(result, Candidate{
			Path:   extraFile,
			Format: FormatOf(extraFile),
		})
	}

	for _, tmpl := range templates {
		segment, err := Interpolate(tmpl, r, limit)
		if err != nil {
			return nil, err
		}

		base := fsys.Join(datadir, segment)

		switch {
		case isFile(fsys, base+ExtStructured):
			result = append(result, Candidate{
				Path:   base + ExtStructured,
				Format: FormatStructured,
			})

		case isFile(fsys, base+ExtTabular):
			result = append(result, Candidate{
				Path:   base + ExtTabular,
				Format: FormatTabular,
			})
		}
	}

	return result, nil
}

func isFile(fsys billy.Filesystem, p string) bool {
	info, err := fsys.Stat(p)

	return err == nil && !info.IsDir()
}
