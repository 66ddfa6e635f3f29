// Package i18n implements messages.Lookup over YAML message bundles, one per
// locale, formatted with golang.org/x/text/message.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"

	"github.com/vsinha/ptconfig/pkg/domain/messages"
)

//go:embed locales/*.yaml
var bundles embed.FS

// DefaultLocale is used when no bundle matches the requested locale
var DefaultLocale = language.English

// Translator renders message keys for one locale
type Translator struct {
	tag     language.Tag
	printer *message.Printer
	known   map[string]bool
}

// Verify interface compliance
var _ messages.Lookup = (*Translator)(nil)

// New creates a translator for the bundle best matching locale, for example
// "de-AT" or "en"
func New(locale string) (*Translator, error) {
	builder := catalog.NewBuilder(catalog.Fallback(DefaultLocale))

	known := make(map[string]bool)
	tags, err := loadBundles(builder, known)
	if err != nil {
		return nil, err
	}

	requested := DefaultLocale
	if locale != "" {
		parsed, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
		}
		requested = parsed
	}

	_, index, _ := language.NewMatcher(tags).Match(requested)
	tag := tags[index]

	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(builder)),
		known:   known,
	}, nil
}

// Locale returns the matched bundle's language tag
func (t *Translator) Locale() language.Tag {
	return t.tag
}

// Message renders key with args. Keys missing from every bundle render the
// way messages.KeyLookup does.
func (t *Translator) Message(key messages.Key, args ...any) string {
	if !t.known[string(key)] {
		return messages.KeyLookup{}.Message(key, args...)
	}
	return t.printer.Sprintf(string(key), args...)
}

// loadBundles registers every embedded bundle, records each key in known and
// returns the bundle tags with the default locale first
func loadBundles(builder *catalog.Builder, known map[string]bool) ([]language.Tag, error) {
	entries, err := fs.ReadDir(bundles, "locales")
	if err != nil {
		return nil, fmt.Errorf("failed to list message bundles: %w", err)
	}

	tags := make([]language.Tag, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		data, err := bundles.ReadFile(path.Join("locales", name))
		if err != nil {
			return nil, fmt.Errorf("failed to read bundle %s: %w", name, err)
		}

		var bundle map[string]string
		if err := yaml.Unmarshal(data, &bundle); err != nil {
			return nil, fmt.Errorf("failed to parse bundle %s: %w", name, err)
		}

		tag, err := language.Parse(strings.TrimSuffix(name, ".yaml"))
		if err != nil {
			return nil, fmt.Errorf("bundle %s has no valid locale name: %w", name, err)
		}

		for key, msg := range bundle {
			if err := builder.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("bundle %s key %s: %w", name, key, err)
			}
			known[key] = true
		}
		tags = append(tags, tag)
	}

	if len(tags) == 0 {
		return nil, fmt.Errorf("no message bundles found")
	}

	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i] == DefaultLocale && tags[j] != DefaultLocale
	})
	return tags, nil
}
