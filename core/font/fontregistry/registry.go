package fontregistry

import (
	"path"
	"strings"
	"sync"

	"github.com/derekparker/trie"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tyll/core"
	"github.com/npillmayer/tyll/core/font"
	xfont "golang.org/x/image/font"
)

// FallbackName is the name the fallback face is registered under.
const FallbackName = "fallback"

// Registry is a type for holding information about loaded font faces.
type Registry struct {
	sync.Mutex
	faces *trie.Trie // normalized name -> *font.Face
}

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is an application-wide singleton to hold information about
// loaded font faces.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry()
	})
	return globalFontRegistry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		faces: trie.New(),
	}
}

// StoreFace pushes a face into the registry if it isn't contained yet.
//
// The face will be stored using the normalized font name as a key. If this
// key is already associated with a face, that face will not be overridden.
func (fr *Registry) StoreFace(normalizedName string, f *font.Face) {
	if f == nil {
		tracer().Errorf("registry cannot store null face")
		return
	}
	fr.Lock()
	defer fr.Unlock()
	if _, ok := fr.faces.Find(normalizedName); !ok {
		tracer().Debugf("registry stores face %s as %s", f.Name, normalizedName)
		fr.faces.Add(normalizedName, f)
	}
}

// Face returns the face stored under a normalized name.
//
// If no face has been stored under this name, Face will return the fallback
// face (see font.FallbackFace), together with an error.
func (fr *Registry) Face(normalizedName string) (*font.Face, error) {
	tracer().Debugf("registry searches for face %s", normalizedName)
	fr.Lock()
	defer fr.Unlock()
	if node, ok := fr.faces.Find(normalizedName); ok {
		return node.Meta().(*font.Face), nil
	}
	tracer().Infof("registry does not contain face %s", normalizedName)
	err := core.Error(core.EMISSING, "font %s not found in registry", normalizedName)
	if node, ok := fr.faces.Find(FallbackName); ok {
		return node.Meta().(*font.Face), err
	}
	f := font.FallbackFace()
	tracer().Infof("font registry caches fallback face")
	fr.faces.Add(FallbackName, f)
	return f, err
}

// Contains is true if a face has been stored under normalizedName.
func (fr *Registry) Contains(normalizedName string) bool {
	fr.Lock()
	defer fr.Unlock()
	_, ok := fr.faces.Find(normalizedName)
	return ok
}

// FacesWithPrefix returns the normalized names of all faces starting with
// prefix, e.g. all variants of a font family.
func (fr *Registry) FacesWithPrefix(prefix string) []string {
	fr.Lock()
	defer fr.Unlock()
	return fr.faces.PrefixSearch(prefix)
}

// LogFontList is a helper function to dump the list of known faces
// in a registry to the trace-file (log-level Info).
func (fr *Registry) LogFontList() {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- registered fonts ---")
	fr.Lock()
	for _, k := range fr.faces.Keys() {
		if node, ok := fr.faces.Find(k); ok {
			tracer().Infof("face [%s] = %v", k, node.Meta())
		}
	}
	fr.Unlock()
	tracer().Infof("------------------------")
	tracer().SetTraceLevel(level)
}

// NormalizeFontname normalizes a font's name, appending indicators for style
// and weight.
func NormalizeFontname(fname string, style xfont.Style, weight xfont.Weight) string {
	fname = strings.TrimSpace(fname)
	fname = strings.ReplaceAll(fname, " ", "_")
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	fname = strings.ToLower(fname)
	switch style {
	case xfont.StyleItalic, xfont.StyleOblique:
		fname += "-italic"
	}
	switch weight {
	case xfont.WeightLight, xfont.WeightExtraLight:
		fname += "-light"
	case xfont.WeightBold, xfont.WeightExtraBold, xfont.WeightSemiBold:
		fname += "-bold"
	}
	return fname
}

// GuessStyleAndWeight trys to guess a font's style and weight from the
// font's file name.
func GuessStyleAndWeight(fontfilename string) (xfont.Style, xfont.Weight) {
	fontfilename = path.Base(fontfilename)
	ext := path.Ext(fontfilename)
	fontfilename = strings.ToLower(fontfilename[:len(fontfilename)-len(ext)])
	s := strings.Split(fontfilename, "-")
	if len(s) > 1 {
		switch s[len(s)-1] {
		case "light", "xlight":
			return xfont.StyleNormal, xfont.WeightLight
		case "normal", "medium", "regular", "r":
			return xfont.StyleNormal, xfont.WeightNormal
		case "bold", "b":
			return xfont.StyleNormal, xfont.WeightBold
		case "xbold", "black":
			return xfont.StyleNormal, xfont.WeightExtraBold
		}
	}
	style, weight := xfont.StyleNormal, xfont.WeightNormal
	if strings.Contains(fontfilename, "italic") {
		style = xfont.StyleItalic
	}
	if strings.Contains(fontfilename, "light") {
		weight = xfont.WeightLight
	}
	if strings.Contains(fontfilename, "bold") {
		weight = xfont.WeightBold
	}
	return style, weight
}

// Matches returns true if a font's filename contains pattern and indicators
// for a given style and weight.
func Matches(fontfilename, pattern string, style xfont.Style, weight xfont.Weight) bool {
	basename := path.Base(fontfilename)
	basename = basename[:len(basename)-len(path.Ext(basename))]
	basename = strings.ToLower(basename)
	tracer().Debugf("basename of font = %s", basename)
	if !strings.Contains(basename, strings.ToLower(pattern)) {
		return false
	}
	s, w := GuessStyleAndWeight(basename)
	return s == style && w == weight
}
