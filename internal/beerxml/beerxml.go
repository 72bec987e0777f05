// Package beerxml reads and writes BeerXML documents holding hop records.
package beerxml

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/beevik/etree"

	"brewkit/internal/hop"
	applog "brewkit/internal/log"
)

// ListTag is the BeerXML element that groups HOP records.
const ListTag = "HOPS"

// ReadHops parses a BeerXML document from r and returns every HOP record in
// document order. The root may be a HOPS list, a single HOP, or any document
// with HOP elements below it (for example RECIPES/RECIPE/HOPS).
func ReadHops(ctx context.Context, r io.Reader, logger *slog.Logger) ([]*hop.Hop, error) {
	if logger == nil {
		logger = applog.Logger()
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parse beerxml: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("parse beerxml: document has no root element")
	}

	var elements []*etree.Element
	if root.Tag == hop.ElementTag {
		elements = []*etree.Element{root}
	} else {
		elements = root.FindElements(".//" + hop.ElementTag)
	}

	hops := make([]*hop.Hop, 0, len(elements))
	for idx, el := range elements {
		h, err := hop.FromXML(ctx, el, logger)
		if err != nil {
			return nil, fmt.Errorf("hop %d (%s): %w", idx+1, h.Name(), err)
		}
		hops = append(hops, h)
	}

	logger.DebugContext(ctx, "read beerxml hops", "count", len(hops))
	return hops, nil
}

// WriteHops writes hops as an indented HOPS document.
func WriteHops(w io.Writer, hops []*hop.Hop) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	list := doc.CreateElement(ListTag)
	for _, h := range hops {
		h.ToXML(list)
	}
	doc.Indent(2)

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write beerxml: %w", err)
	}
	return nil
}

// LoadFile reads the hops stored in the BeerXML file at path.
func LoadFile(ctx context.Context, path string, logger *slog.Logger) ([]*hop.Hop, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	return ReadHops(ctx, file, logger)
}

// SaveFile writes hops to path, replacing any existing file.
func SaveFile(path string, hops []*hop.Hop) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".hops-*.xml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteHops(tmp, hops); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
