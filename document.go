package main

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"image/draw"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

var (
	errEmptyDocument = errors.New("document has no size")
	errNotSVG        = errors.New("root element is not svg")
)

// unitsPerPixel converts absolute SVG lengths to pixels at 96dpi.
var unitsPerPixel = map[string]float64{
	"":   1,
	"px": 1,
	"pt": 96.0 / 72,
	"pc": 16,
	"mm": 96 / 25.4,
	"cm": 96 / 2.54,
	"in": 96,
}

// Document is a parsed SVG file ready for rendering.
type Document struct {
	icon *oksvg.SvgIcon
	w, h float64 // intrinsic size
}

// LoadDocument reads and parses the SVG file at path.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	geom, err := readGeometry(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load: %s: %w", path, err)
	}
	w, h, ok := geom.size()
	if !ok {
		return nil, fmt.Errorf("load: %s: %w", path, errEmptyDocument)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("load: parse %s: %w", path, err)
	}

	// oksvg stops reading the svg attributes at the first one it cannot
	// parse, so the view box is set from our own reading.
	icon.ViewBox.X, icon.ViewBox.Y, icon.ViewBox.W, icon.ViewBox.H = 0, 0, w, h
	if geom.hasViewBox {
		icon.ViewBox.X, icon.ViewBox.Y = geom.viewBox[0], geom.viewBox[1]
		icon.ViewBox.W, icon.ViewBox.H = geom.viewBox[2], geom.viewBox[3]
	}
	return &Document{icon: icon, w: w, h: h}, nil
}

// Size returns the intrinsic size of the document.
func (d *Document) Size() (w, h float64) {
	return d.w, d.h
}

// Render draws the document on dst with the transform t. The document is
// drawn in the region Offset + Scale*(0, 0, w, h) of dst.
func (d *Document) Render(dst draw.Image, t Transform) {
	d.icon.SetTarget(t.Target(d.w, d.h))

	b := dst.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
	raster := rasterx.NewDasher(b.Dx(), b.Dy(), scanner)
	d.icon.Draw(raster, 1.0)
}

// geometry holds the sizing attributes of the root svg element.
type geometry struct {
	width, height string
	viewBox       [4]float64
	hasViewBox    bool
}

// readGeometry reads the attributes of the root element of an SVG document.
func readGeometry(r io.Reader) (geometry, error) {
	var g geometry
	dec := xml.NewDecoder(r)
	dec.Strict = false
	for {
		tok, err := dec.Token()
		if err != nil {
			return g, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != "svg" {
			return g, errNotSVG
		}
		for _, attr := range se.Attr {
			switch attr.Name.Local {
			case "width":
				g.width = attr.Value
			case "height":
				g.height = attr.Value
			case "viewBox":
				g.viewBox, g.hasViewBox = parseViewBox(attr.Value)
			}
		}
		return g, nil
	}
}

// size returns the intrinsic size. An absolute width or height wins;
// otherwise the view box dimension is used, scaled by a percentage
// if one is given.
func (g geometry) size() (w, h float64, ok bool) {
	w = resolveLength(g.width, g.viewBox[2], g.hasViewBox)
	h = resolveLength(g.height, g.viewBox[3], g.hasViewBox)
	return w, h, w > 0 && h > 0
}

// resolveLength returns the pixel length of an svg width or height
// attribute, falling back to the view box dimension vb.
func resolveLength(s string, vb float64, hasViewBox bool) float64 {
	s = strings.TrimSpace(s)
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		if !hasViewBox {
			return 0
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(pct), 64)
		if err != nil {
			return vb
		}
		return vb * v / 100
	}
	if s != "" {
		num := strings.TrimRight(s, "abcdefghijklmnopqrstuvwxyz")
		if k, ok := unitsPerPixel[s[len(num):]]; ok {
			if v, err := strconv.ParseFloat(strings.TrimSpace(num), 64); err == nil && v > 0 {
				return v * k
			}
		}
	}
	if hasViewBox {
		return vb
	}
	return 0
}

// parseViewBox parses "minx miny width height", separated by spaces or commas.
func parseViewBox(s string) ([4]float64, bool) {
	var vb [4]float64
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) != 4 {
		return vb, false
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return vb, false
		}
		vb[i] = v
	}
	return vb, vb[2] > 0 && vb[3] > 0
}
