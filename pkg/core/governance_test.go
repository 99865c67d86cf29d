//go:build governance

package core_test

import (
	"go/types"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// =============================================================================
// COHESION TEST - Core types must be shared by multiple packages
// =============================================================================

// TestGovernance_CoreCohesion verifies that types in pkg/core are genuinely
// shared across multiple packages. Single-use types belong to their sole consumer.
func TestGovernance_CoreCohesion(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedImports | packages.NeedTypes |
			packages.NeedTypesInfo | packages.NeedDeps,
	}
	pkgs, err := packages.Load(cfg, modulePath+"/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}

	// Find pkg/core and collect exported types
	coreTypes := make(map[types.Object]string)
	var corePkg *packages.Package
	for _, p := range pkgs {
		if p.PkgPath != modulePath+"/pkg/core" {
			continue
		}
		corePkg = p
		scope := p.Types.Scope()
		for _, name := range scope.Names() {
			obj := scope.Lookup(name)
			if _, ok := obj.(*types.TypeName); ok && obj.Exported() {
				coreTypes[obj] = name
			}
		}
		break
	}
	if corePkg == nil {
		t.Fatal("Could not find pkg/core")
	}

	// CoreTypeName -> set of importing packages
	usage := make(map[string]map[string]bool)
	for _, name := range coreTypes {
		usage[name] = make(map[string]bool)
	}

	for _, p := range pkgs {
		if p.PkgPath == corePkg.PkgPath || strings.HasSuffix(p.PkgPath, "_test") || p.TypesInfo == nil {
			continue
		}
		for _, obj := range p.TypesInfo.Uses {
			if name, ok := coreTypes[obj]; ok {
				usage[name][strings.TrimPrefix(p.PkgPath, modulePath+"/")] = true
			}
		}
	}

	for typeName, importers := range usage {
		switch len(importers) {
		case 0:
			t.Logf("WARNING: Unused Core Type: %s (consider deleting)", typeName)
		case 1:
			for user := range importers {
				t.Errorf("COHESION VIOLATION: 'core.%s' is used ONLY by '%s'.\n"+
					"   Fix: Move type from pkg/core to %s.", typeName, user, user)
			}
		}
	}
}

// =============================================================================
// PURITY TEST - No type alias re-exports from library packages
// =============================================================================

// TestGovernance_NoTypeAliasReexports ensures library packages don't re-export
// core types as aliases. Consumers use core.RuleMap directly.
func TestGovernance_NoTypeAliasReexports(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedImports | packages.NeedTypes,
	}
	pkgs, err := packages.Load(cfg, modulePath+"/pkg/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}

	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 || pkg.PkgPath == modulePath+"/pkg/core" {
			continue
		}

		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			typeName, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || !typeName.Exported() || !typeName.IsAlias() {
				continue
			}
			named, ok := types.Unalias(typeName.Type()).(*types.Named)
			if !ok || named.Obj().Pkg() == nil {
				continue
			}
			if named.Obj().Pkg().Path() == modulePath+"/pkg/core" {
				t.Errorf("PURITY VIOLATION: Package '%s' re-exports core type '%s' as alias '%s'.\n"+
					"   Fix: Remove the alias. Consumers should use core.%s directly.",
					strings.TrimPrefix(pkg.PkgPath, modulePath+"/"), named.Obj().Name(), name, named.Obj().Name())
			}
		}
	}
}
