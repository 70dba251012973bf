package emit

import (
	"sort"
	"strings"
	"sync"

	"git.home.luguber.info/inful/docsitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/docsitecfg/internal/gitinfo"
	"git.home.luguber.info/inful/docsitecfg/internal/site"
)

// Document is everything an output format may render.
type Document struct {
	Site *site.Config
	// Pages holds git metadata keyed by document path; nil when the git plugin is off.
	Pages map[string]gitinfo.PageInfo
}

// Format renders a Document into one output file.
type Format interface {
	Name() string
	FileName() string
	Render(doc Document) ([]byte, error)
}

var (
	regMu sync.RWMutex
	reg   = map[string]Format{}
)

// Register adds a format. The first registration of a name wins.
func Register(f Format) {
	if f == nil {
		return
	}
	regMu.Lock()
	defer regMu.Unlock()
	if _, ok := reg[f.Name()]; !ok {
		reg[f.Name()] = f
	}
}

// Get looks up a format by (case-insensitive) name.
func Get(name string) (Format, error) {
	regMu.RLock()
	defer regMu.RUnlock()
	f, ok := reg[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errors.ConfigError("unknown output format").
			WithContext("format", name).
			WithContext("known", strings.Join(namesLocked(), ",")).
			Build()
	}
	return f, nil
}

// Names lists the registered format names, sorted.
func Names() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	return namesLocked()
}

func namesLocked() []string {
	names := make([]string, 0, len(reg))
	for n := range reg {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
