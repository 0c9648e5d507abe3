package commands

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

const registryFile = "models_registry.go"

func RegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register [path]",
		Short: "Generates model registry file",
		Long:  `Scans the given path for Go files containing GORM models (structs embedding gorm.Model) and generates a models_registry.go file. If no path is provided, it defaults to the 'models' directory.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "models"
			if len(args) > 0 {
				dir = args[0]
			}

			path, err := writeModelRegistry(filepath.Clean(dir))
			if err != nil {
				return fmt.Errorf("failed to create model registry file: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Successfully generated model registry: %s\n", path)
			return nil
		},
	}
}

func writeModelRegistry(dir string) (string, error) {
	names, err := findModels(dir)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by gorm-bookings register; DO NOT EDIT.\n\npackage %s\n\n", filepath.Base(dir))
	buf.WriteString("// ModelTypeRegistry maps model names to zero values for schema inspection.\n")
	buf.WriteString("var ModelTypeRegistry = map[string]interface{}{\n")
	for _, name := range names {
		fmt.Fprintf(&buf, "\t%q: %s{},\n", name, name)
	}
	buf.WriteString("}\n")

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, registryFile)
	if err := os.WriteFile(path, src, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// findModels returns the sorted names of structs embedding gorm.Model.
func findModels(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var names []string
	fset := token.NewFileSet()
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") || name == registryFile {
			continue
		}

		file, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}

		ast.Inspect(file, func(n ast.Node) bool {
			spec, ok := n.(*ast.TypeSpec)
			if !ok {
				return true
			}
			st, ok := spec.Type.(*ast.StructType)
			if ok && embedsGormModel(st) {
				names = append(names, spec.Name.Name)
			}
			return false
		})
	}

	sort.Strings(names)
	return names, nil
}

func embedsGormModel(st *ast.StructType) bool {
	for _, field := range st.Fields.List {
		if len(field.Names) != 0 {
			continue
		}
		sel, ok := field.Type.(*ast.SelectorExpr)
		if !ok {
			continue
		}
		if pkg, ok := sel.X.(*ast.Ident); ok && pkg.Name == "gorm" && sel.Sel.Name == "Model" {
			return true
		}
	}
	return false
}
