// Package fontdb is a small in-memory font database: it loads TrueType and
// OpenType fonts (including .ttc collections), looks faces up by family
// name, and extracts glyph outlines as vector segments.
//
// Parsing and outline extraction use golang.org/x/image/font/sfnt.
package fontdb

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Errors returned by the database.
var (
	// ErrNoFaces is returned by Query when the database is empty.
	ErrNoFaces = errors.New("fontdb: no faces loaded")

	// ErrGlyphNotFound is returned when a face has no glyph for a rune.
	ErrGlyphNotFound = errors.New("fontdb: glyph not found")
)

// DB is a collection of parsed font faces.
// It is safe for concurrent use. The zero value is an empty database.
type DB struct {
	mu       sync.RWMutex
	faces    []*Face
	byFamily map[string][]*Face
}

// New creates an empty database.
func New() *DB {
	return &DB{byFamily: make(map[string][]*Face)}
}

// Len returns the number of loaded faces.
func (db *DB) Len() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.faces)
}

// Faces returns a snapshot of all loaded faces in load order.
func (db *DB) Faces() []*Face {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return append([]*Face(nil), db.faces...)
}

// LoadFontData parses a font file (or collection) held in memory and adds
// every face it contains. source is recorded for diagnostics.
func (db *DB) LoadFontData(data []byte, source string) error {
	var fonts []*sfnt.Font
	if bytes.HasPrefix(data, []byte("ttcf")) {
		c, err := sfnt.ParseCollection(data)
		if err != nil {
			return fmt.Errorf("fontdb: parse collection %s: %w", source, err)
		}
		for i := 0; i < c.NumFonts(); i++ {
			f, err := c.Font(i)
			if err != nil {
				return fmt.Errorf("fontdb: parse collection %s[%d]: %w", source, i, err)
			}
			fonts = append(fonts, f)
		}
	} else {
		f, err := opentype.Parse(data)
		if err != nil {
			return fmt.Errorf("fontdb: parse %s: %w", source, err)
		}
		fonts = append(fonts, f)
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	if db.byFamily == nil {
		db.byFamily = make(map[string][]*Face)
	}
	for _, f := range fonts {
		face := newFace(f, source)
		db.faces = append(db.faces, face)
		key := strings.ToLower(face.Family)
		db.byFamily[key] = append(db.byFamily[key], face)
	}
	return nil
}

// LoadFontFile reads and loads a single font file.
func (db *DB) LoadFontFile(path string) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("fontdb: read font: %w", err)
	}
	return db.LoadFontData(data, path)
}

// LoadFontsDir walks dir recursively and loads every .ttf, .otf, .ttc and
// .otc file. Files that fail to parse are skipped; their errors are joined
// into the returned error. The first result is the number of files loaded.
func (db *DB) LoadFontsDir(dir string) (int, error) {
	var (
		loaded int
		errs   []error
	)
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if d.IsDir() || !isFontFile(path) {
			return nil
		}
		if err := db.LoadFontFile(path); err != nil {
			errs = append(errs, err)
			return nil
		}
		loaded++
		return nil
	})
	if walkErr != nil {
		errs = append(errs, walkErr)
	}
	return loaded, errors.Join(errs...)
}

func isFontFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf", ".otf", ".ttc", ".otc":
		return true
	default:
		return false
	}
}

// Query returns the first face whose family matches one of families
// (case-insensitively), trying them in order. When none match it falls back
// to the first loaded face. It returns ErrNoFaces for an empty database.
func (db *DB) Query(families ...string) (*Face, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, fam := range families {
		if faces := db.byFamily[strings.ToLower(strings.TrimSpace(fam))]; len(faces) > 0 {
			return faces[0], nil
		}
	}
	if len(db.faces) == 0 {
		return nil, ErrNoFaces
	}
	return db.faces[0], nil
}
