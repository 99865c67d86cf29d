package core_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulePath = "github.com/leapstack-labs/lintpreset"

// packageImports returns the imports of every non-test Go file in dir, keyed by file name.
func packageImports(t *testing.T, dir string) map[string][]string {
	t.Helper()
	fset := token.NewFileSet()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", dir, err)
	}

	imports := make(map[string][]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") {
			continue
		}
		// Skip test files
		if strings.HasSuffix(entry.Name(), "_test.go") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", path, err)
			continue
		}
		for _, imp := range f.Imports {
			imports[entry.Name()] = append(imports[entry.Name()], strings.Trim(imp.Path.Value, `"`))
		}
	}
	return imports
}

// TestCoreImportsOnlyStdlib verifies pkg/core only imports the standard library.
// The Golden Rule: all other packages depend on core, not the reverse.
func TestCoreImportsOnlyStdlib(t *testing.T) {
	for file, imports := range packageImports(t, ".") {
		for _, importPath := range imports {
			// Stdlib paths have no dot in their first element
			if strings.Contains(strings.Split(importPath, "/")[0], ".") {
				t.Errorf("%s imports forbidden package: %s", file, importPath)
			}
		}
	}
}

// TestLibraryLayering verifies the public packages never reach into internal
// packages and only depend on the packages below them.
func TestLibraryLayering(t *testing.T) {
	allowed := map[string][]string{
		"resolve":  {"pkg/core"},
		"document": {"pkg/core", "pkg/resolve"},
		"preset":   {"pkg/core", "pkg/resolve", "pkg/document"},
	}

	for pkg, deps := range allowed {
		t.Run(pkg, func(t *testing.T) {
			for file, imports := range packageImports(t, filepath.Join("..", pkg)) {
				for _, importPath := range imports {
					if !strings.HasPrefix(importPath, modulePath+"/") {
						continue
					}
					rel := strings.TrimPrefix(importPath, modulePath+"/")
					if strings.HasPrefix(rel, "internal/") {
						t.Errorf("pkg/%s/%s imports internal package: %s", pkg, file, importPath)
						continue
					}
					ok := false
					for _, dep := range deps {
						if rel == dep {
							ok = true
						}
					}
					if !ok {
						t.Errorf("pkg/%s/%s imports %s (allowed: %v)", pkg, file, rel, deps)
					}
				}
			}
		})
	}
}
