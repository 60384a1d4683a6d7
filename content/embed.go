package content

import (
	"bufio"
	"embed"
	"io"
	"os"
	"strings"

	cerr "github.com/saeidalz13/mech-backend/internal/error"
	"github.com/saeidalz13/mech-backend/models/mech"
)

//go:embed catalog.txt
var FS embed.FS

const passagePrefix = "::"

// ReadSources splits a passage file into key -> definition text. Lines
// starting with '#' before the first passage are comments.
func ReadSources(r io.Reader) (map[string]string, error) {
	sources := make(map[string]string, 32)

	var (
		key  string
		body []string
	)
	flush := func() {
		if key != "" {
			sources[key] = strings.Trim(strings.Join(body, "\n"), "\n")
		}
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, passagePrefix) {
			flush()
			key = strings.TrimSpace(strings.TrimPrefix(line, passagePrefix))
			if key == "" {
				return nil, cerr.ErrDefinitionKey(line)
			}
			if _, prs := sources[key]; prs {
				return nil, cerr.ErrDuplicateDefinition(key)
			}
			body = body[:0]
			continue
		}
		if key == "" {
			continue
		}
		body = append(body, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return sources, nil
}

// Sources reads the catalog at path, or the embedded one when path is
// empty.
func Sources(path string) (map[string]string, error) {
	var (
		f   io.ReadCloser
		err error
	)
	if path == "" {
		f, err = FS.Open("catalog.txt")
	} else {
		f, err = os.Open(path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadSources(f)
}

func LoadCatalog(costs mech.Costs, path string) (*mech.Catalog, error) {
	sources, err := Sources(path)
	if err != nil {
		return nil, err
	}
	catalog := mech.NewCatalog(costs)
	if err := catalog.Load(sources); err != nil {
		return nil, err
	}
	return catalog, nil
}

// MustLoadCatalog panics on any content error.
func MustLoadCatalog(costs mech.Costs, path string) *mech.Catalog {
	catalog, err := LoadCatalog(costs, path)
	if err != nil {
		panic(err)
	}
	return catalog
}
