// Package catalog builds the JSON inventory of original and UI-ready art.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/noisebox/artforge/internal/assets"
	imageio "github.com/noisebox/artforge/internal/image"
	"github.com/noisebox/artforge/internal/layout"
	"github.com/noisebox/artforge/internal/util/table"
)

// Entry is the inventory of one category.
type Entry struct {
	OriginalFiles int      `json:"original_files"`
	UIReadyFiles  int      `json:"ui_ready_files"`
	Variants      []string `json:"variants"`
}

// Statistics aggregates the category entries.
type Statistics struct {
	TotalOriginal   int `json:"total_original"`
	TotalUIReady    int `json:"total_ui_ready"`
	CategoriesCount int `json:"categories_count"`
}

// Catalog is the document written to catalog/ui_elements.json.
type Catalog struct {
	Categories map[assets.Category]Entry `json:"categories"`
	Statistics Statistics                `json:"statistics"`
}

// Scan counts the PNG art on disk for every catalog category, in both the
// originals and the ui-ready tree. Missing directories count as empty.
func Scan(l layout.Layout) (Catalog, error) {
	c := Catalog{Categories: make(map[assets.Category]Entry)}

	for _, cat := range assets.Categories() {
		element, _ := assets.LookupElement(cat)

		original, err := countFiles(l.OriginalDir(cat), imageio.IsPNG)
		if err != nil {
			return Catalog{}, err
		}
		uiReady, err := countFiles(l.UIReadyDir(cat), imageio.IsPNG)
		if err != nil {
			return Catalog{}, err
		}

		c.Categories[cat] = Entry{
			OriginalFiles: original,
			UIReadyFiles:  uiReady,
			Variants:      element.Variants,
		}

		c.Statistics.TotalOriginal += original
		c.Statistics.TotalUIReady += uiReady
		if original > 0 || uiReady > 0 {
			c.Statistics.CategoriesCount++
		}
	}

	return c, nil
}

func countFiles(dir string, match func(string) bool) (int, error) {
	files, err := imageio.ScanDirectory(dir, match)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	return len(files), nil
}

// Marshal encodes the catalog with two-space indentation.
func (c Catalog) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	return append(data, '\n'), nil
}

// Write saves the catalog to the layout's catalog path.
func Write(l layout.Layout, c Catalog) (string, error) {
	data, err := c.Marshal()
	if err != nil {
		return "", err
	}

	path := l.CatalogPath()
	if err := imageio.WriteFile(path, data); err != nil {
		return "", fmt.Errorf("failed to write catalog: %w", err)
	}
	return path, nil
}

// Load reads a previously written catalog.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path) // #nosec G304 - catalog path comes from the project layout
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read catalog: %w", err)
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return c, nil
}

// RenderStatus writes a per-category table followed by totals.
func RenderStatus(w io.Writer, c Catalog) error {
	t := table.New("Category", "Original", "UI-Ready", "Variants")
	t.SetAlign(1, table.AlignRight)
	t.SetAlign(2, table.AlignRight)
	t.SetMaxWidth(3, 40)

	for _, cat := range assets.Categories() {
		entry, ok := c.Categories[cat]
		if !ok {
			continue
		}
		t.AddRow(
			string(cat),
			strconv.Itoa(entry.OriginalFiles),
			strconv.Itoa(entry.UIReadyFiles),
			strings.Join(entry.Variants, ", "),
		)
	}

	t.SetFooter(
		fmt.Sprintf("%d categories", c.Statistics.CategoriesCount),
		strconv.Itoa(c.Statistics.TotalOriginal),
		strconv.Itoa(c.Statistics.TotalUIReady),
		"",
	)

	_, err := io.WriteString(w, t.Render())
	return err
}
