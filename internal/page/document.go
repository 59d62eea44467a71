// Package page holds the laid-out page document: styled text blocks flowed
// top to bottom, queried and measured through the dom interfaces.
package page

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4/v4"

	"scrollgl/internal/dom"
	"scrollgl/internal/textlayout"
	"scrollgl/internal/utils"
)

// Document is the JSON page description.
type Document struct {
	Title      string            `json:"title"`
	Background string            `json:"background"`
	Padding    float64           `json:"padding"`
	Gap        float64           `json:"gap"`
	Style      map[string]string `json:"style"`
	Blocks     []*Block          `json:"blocks"`
}

// Block is one element. Text blocks carry Text; group blocks carry Children.
type Block struct {
	Name       string            `json:"id"`
	Text       string            `json:"text"`
	Attributes map[string]string `json:"attributes"`
	Style      map[string]string `json:"style"`
	Children   []*Block          `json:"children"`

	parent   *Block
	inline   map[string]string
	computed dom.Style
	rect     dom.Rect
	fixed    bool
	laidOut  bool
	seq      int
	text     textlayout.Layout
	font     string
}

func (b *Block) ID() string {
	if b.Name != "" {
		return b.Name
	}
	return fmt.Sprintf("block-%d", b.seq)
}

// Attr returns an attribute value.
func (b *Block) Attr(name string) string { return b.Attributes[name] }

// Parent is the enclosing group block, nil at the top level.
func (b *Block) Parent() *Block { return b.parent }

// Computed is the style resolved by the last layout.
func (b *Block) Computed() dom.Style { return b.computed }

// Rect is the layout box: document space for flowed blocks, viewport space
// for fixed ones.
func (b *Block) Rect() dom.Rect { return b.rect }

// TextLayout is the block's own text, typeset by the last layout, with line
// positions relative to the block box.
func (b *Block) TextLayout() textlayout.Layout { return b.text }

// Font is the font resource the block's text was measured with.
func (b *Block) Font() string { return b.font }

// Load reads a page from disk. Files ending in .lz4 are lz4-framed JSON.
func Load(path string) (*Document, error) {
	data, resolved, err := utils.ReadAsset(path)
	if err != nil {
		return nil, fmt.Errorf("reading page %s: %w", resolved, err)
	}

	if strings.EqualFold(filepath.Ext(resolved), ".lz4") {
		data, err = io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("decompressing page %s: %w", resolved, err)
		}
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", resolved, err)
	}
	utils.Info("Page: loaded %q from %s", doc.Title, resolved)
	return doc, nil
}

// Parse decodes page JSON and links the block tree.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding page: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	doc.link()
	return &doc, nil
}

// Validate rejects duplicate ids and negative spacing.
func (d *Document) Validate() error {
	if d.Padding < 0 || d.Gap < 0 {
		return fmt.Errorf("padding and gap must not be negative")
	}
	seen := map[string]bool{}
	var walk func([]*Block) error
	walk = func(blocks []*Block) error {
		for _, b := range blocks {
			if b == nil {
				return fmt.Errorf("null block")
			}
			if b.Name != "" {
				if seen[b.Name] {
					return fmt.Errorf("duplicate block id %q", b.Name)
				}
				seen[b.Name] = true
			}
			if err := walk(b.Children); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(d.Blocks)
}

func (d *Document) link() {
	seq := 0
	var walk func(parent *Block, blocks []*Block)
	walk = func(parent *Block, blocks []*Block) {
		for _, b := range blocks {
			b.parent = parent
			b.seq = seq
			seq++
			walk(b, b.Children)
		}
	}
	walk(nil, d.Blocks)
}

// SaveBundle writes doc as lz4-framed JSON.
func SaveBundle(doc *Document, path string) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding page: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := lz4.NewWriter(f)
	if _, err := zw.Write(data); err != nil {
		return fmt.Errorf("compressing page: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compressing page: %w", err)
	}
	return f.Close()
}
