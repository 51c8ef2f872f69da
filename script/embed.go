package script

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/milk9111/convolve/signal"
)

//go:embed functions/*.tengo
var FunctionsFS embed.FS

// Source loads user functions from Dir on disk, falling back to the
// embedded examples.
type Source struct {
	Dir string
}

// Load returns the source of the script called name.
func (s Source) Load(name string) ([]byte, error) {
	clean := cleanScriptName(name)
	if s.Dir != "" {
		if data, err := os.ReadFile(filepath.Join(s.Dir, clean)); err == nil {
			return data, nil
		}
	}
	data, err := FunctionsFS.ReadFile("functions/" + clean)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	return data, nil
}

// Names lists the scripts available on disk and embedded, without extension.
func (s Source) Names() []string {
	seen := map[string]bool{}
	collect := func(fsys fs.FS, dir string) {
		entries, err := fs.ReadDir(fsys, dir)
		if err != nil {
			return
		}
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != ".tengo" {
				continue
			}
			seen[strings.TrimSuffix(e.Name(), ".tengo")] = true
		}
	}
	collect(FunctionsFS, "functions")
	if s.Dir != "" {
		collect(os.DirFS(s.Dir), ".")
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Resolve turns a function reference into a signal.Func. Builtin names win
// over scripts unless the reference is marked as a script with "script:" or
// a .tengo suffix.
func (s Source) Resolve(ref string) (signal.Func, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("script: empty function reference")
	}
	if !IsScriptRef(ref) {
		if fn, ok := signal.Builtin(ref); ok {
			return fn, nil
		}
	}

	src, err := s.Load(ref)
	if err != nil {
		return nil, fmt.Errorf("script: unknown function %q (builtins: %s): %w",
			ref, strings.Join(signal.BuiltinNames(), ", "), err)
	}
	return Compile(strings.TrimSuffix(cleanScriptName(ref), ".tengo"), string(src))
}

func cleanScriptName(name string) string {
	s := filepath.ToSlash(strings.TrimSpace(name))
	if after, ok := strings.CutPrefix(s, "script:"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "functions/"); ok {
		s = after
	}
	if !strings.HasSuffix(s, ".tengo") {
		s += ".tengo"
	}
	return s
}
