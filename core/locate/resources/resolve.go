package resources

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/tyll/core"
	"github.com/npillmayer/tyll/core/font"
	"github.com/npillmayer/tyll/core/font/fntload"
	"github.com/npillmayer/tyll/core/font/fontregistry"
	xfont "golang.org/x/image/font"
)

// NotFound returns an application error for a missing font resource.
func NotFound(res string) error {
	e := fmt.Errorf("resource missing: %v", res)
	return core.WrapError(e, core.EMISSING, "font not found: %s", res)
}

// suffixes of font files we are able to load, in order of preference
var fontSuffixes = []string{".fnt", ".otf", ".ttf"}

// ResolveFontLocation finds the file for a font name. name may be a path to
// an existing file. Otherwise the directories of configuration key
// "font-path" are searched for a file matching name, style and weight,
// then the fonts installed on the system.
//
// If no file can be found, an error with code core.EMISSING is returned.
func ResolveFontLocation(name string, style xfont.Style, weight xfont.Weight) (string, error) {
	if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		return name, nil
	}
	for _, dir := range filepath.SplitList(gconf.GetString("font-path")) {
		if dir == "" {
			continue
		}
		if fpath := findInDirectory(dir, name, style, weight); fpath != "" {
			tracer().Debugf("found font %s in font path as %s", name, fpath)
			return fpath, nil
		}
	}
	if fpath, err := findfont.Find(name); err == nil && fpath != "" {
		tracer().Debugf("%s is a system font", name)
		return fpath, nil
	}
	return "", NotFound(name)
}

func findInDirectory(dir, name string, style xfont.Style, weight xfont.Weight) string {
	for _, suffix := range fontSuffixes {
		fpath := filepath.Join(dir, name+suffix)
		if _, err := os.Stat(fpath); err == nil {
			return fpath
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		tracer().Debugf("cannot read font directory %s: %v", dir, err)
		return ""
	}
	for _, suffix := range fontSuffixes {
		for _, entry := range entries {
			if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), suffix) {
				continue
			}
			if fontregistry.Matches(entry.Name(), name, style, weight) {
				return filepath.Join(dir, entry.Name())
			}
		}
	}
	return ""
}

// LoadFace loads a font face from a file. Font descriptions are loaded with
// package fntload, scalable fonts are baked at size.
func LoadFace(fpath string, size float32, textures font.TextureFactory) (*font.Face, error) {
	switch strings.ToLower(filepath.Ext(fpath)) {
	case ".otf", ".ttf":
		sf, err := font.LoadOpenTypeFont(fpath)
		if err != nil {
			return nil, err
		}
		return sf.Bake(size, nil, textures)
	}
	return fntload.Loader{Textures: textures}.Load(fpath)
}

// --- Promises --------------------------------------------------------------

type facePlusErr struct {
	face *font.Face
	err  error
}

// FacePromise is returned by ResolveFontFace. A promise may be awaited any
// number of times and always delivers the same face and error.
type FacePromise interface {
	Face() (*font.Face, error)
	FaceWithContext(ctx context.Context) (*font.Face, error)
}

type faceLoader struct {
	done   chan struct{} // closed when result is set
	result facePlusErr
}

func (loader *faceLoader) Face() (*font.Face, error) {
	return loader.FaceWithContext(context.Background())
}

func (loader *faceLoader) FaceWithContext(ctx context.Context) (*font.Face, error) {
	select {
	case <-loader.done:
		return loader.result.face, loader.result.err
	default:
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-loader.done:
		return loader.result.face, loader.result.err
	}
}

// ResolveFontFace resolves a font face with a given style and weight.
// Faces already present in the global font registry are returned from
// there. Otherwise the font's file is located (see ResolveFontLocation),
// loaded and stored in the registry. Scalable fonts are baked at size.
//
// If no face can be loaded, the promise will return the fallback face,
// together with an error.
func ResolveFontFace(name string, style xfont.Style, weight xfont.Weight, size float32,
	textures font.TextureFactory) FacePromise {
	//
	loader := &faceLoader{done: make(chan struct{})}
	go func(loader *faceLoader) {
		defer close(loader.done)
		result := &loader.result
		registry := fontregistry.GlobalRegistry()
		normalized := fontregistry.NormalizeFontname(filepath.Base(name), style, weight)
		if registry.Contains(normalized) {
			result.face, result.err = registry.Face(normalized)
			return
		}
		var f *font.Face
		fpath, err := ResolveFontLocation(name, style, weight)
		if err == nil {
			f, err = LoadFace(fpath, size, textures)
		}
		if f != nil {
			registry.StoreFace(normalized, f)
			result.face, result.err = registry.Face(normalized)
		} else {
			tracer().Errorf("cannot load font %s: %v", name, err)
			result.face, _ = registry.Face(fontregistry.FallbackName)
			result.err = err
		}
	}(loader)
	return loader
}
