// Strain catalog documentation generator.
//
// Usage: go run ./cmd/straindoc [-catalog path] [-out docs/strains.md]
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/canopy/strains"
)

func main() {
	catalogPath := flag.String("catalog", "", "Strain catalog YAML (empty = built-in)")
	out := flag.String("out", "docs/strains.md", "Output markdown file")
	flag.Parse()

	catalog := strains.Default()
	if *catalogPath != "" {
		var err error
		if catalog, err = strains.LoadFile(*catalogPath); err != nil {
			slog.Error("failed to load catalog", "error", err)
			os.Exit(1)
		}
	}

	var buf bytes.Buffer
	render(&buf, catalog)

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, buf.Bytes(), 0644); err != nil {
		slog.Error("failed to write docs", "error", err)
		os.Exit(1)
	}
	slog.Info("wrote strain docs", "path", *out, "strains", catalog.Len())
}

func render(w io.Writer, c *strains.Catalog) {
	fmt.Fprintf(w, "# Strains\n\n%d strains, %d starters.\n\n", c.Len(), len(c.Starters()))

	fmt.Fprintln(w, "| Strain | Colour | Rarity | Difficulty | Potency | $/g | Flowering days | Parents | Requirement |")
	fmt.Fprintln(w, "|---|---|---|---|---|---|---|---|---|")
	for _, name := range c.AllNames() {
		d, _ := c.Get(name)
		parents := "starter"
		if d.Parents != nil {
			parents = d.Parents[0] + " × " + d.Parents[1]
		}
		fmt.Fprintf(w, "| %s | `%s` | %s | %s | %d | %.0f | %d | %s | %s |\n",
			d.Name, hex(d.Color), d.Rarity, d.Difficulty, d.Potency, d.Price, d.FloweringDays, parents, d.Requirement)
	}

	fmt.Fprintln(w, "\n## Breeding tree")
	seen := make(map[string]bool)
	for _, name := range c.Starters() {
		fmt.Fprintln(w)
		tree(w, c, name, 0, seen)
	}

	fmt.Fprintln(w, "\n## Hints")
	fmt.Fprintln(w)
	for _, name := range c.AllNames() {
		if hint := c.Hint(name); hint != "" {
			fmt.Fprintf(w, "- **%s**: %s\n", name, hint)
		}
	}
}

// tree prints name and its descendants. A strain reached again through
// another parent is listed once more but not expanded.
func tree(w io.Writer, c *strains.Catalog, name string, depth int, seen map[string]bool) {
	indent := strings.Repeat("  ", depth)
	if seen[name] {
		fmt.Fprintf(w, "%s- %s (see above)\n", indent, name)
		return
	}
	seen[name] = true
	fmt.Fprintf(w, "%s- %s\n", indent, name)
	for _, child := range c.Children(name) {
		if child == name {
			continue
		}
		tree(w, c, child, depth+1, seen)
	}
}

func hex(rgb strains.RGB) string {
	return colorful.Color{R: float64(rgb.R) / 255, G: float64(rgb.G) / 255, B: float64(rgb.B) / 255}.Hex()
}
