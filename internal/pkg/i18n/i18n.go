package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

const DefaultLocale = "en"

type Translations map[string]string

var (
	locales = make(map[string]Translations)
	mu      sync.RWMutex
	once    sync.Once
	loadErr error

	reportOnce sync.Once
)

// Load parses the embedded locale files. It is safe to call repeatedly.
func Load() error {
	once.Do(func() {
		loadErr = loadFrom(localeFS, "locales")
	})
	return loadErr
}

// ensureLoaded loads the catalog on first use. A broken catalog is reported
// once; lookups then fall back to returning the key.
func ensureLoaded() {
	if err := Load(); err != nil {
		reportLoadError(err)
	}
}

func reportLoadError(err error) {
	reportOnce.Do(func() {
		slog.Error("message catalog failed to load, messages will render as keys", "error", err)
	})
}

func loadFrom(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}

	loaded := make(map[string]Translations)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		locale := strings.TrimSuffix(entry.Name(), ".yaml")
		filePath := path.Join(dir, entry.Name())

		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			return err
		}

		var sections map[string]Translations
		if err := yaml.Unmarshal(data, &sections); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filePath, err)
		}

		flat := make(Translations)
		for section, entries := range sections {
			for key, val := range entries {
				flat[strings.ToLower(section)+"."+key] = val
			}
		}
		loaded[locale] = flat
	}

	mu.Lock()
	defer mu.Unlock()
	for locale, trans := range loaded {
		locales[locale] = trans
	}
	return nil
}

// Translate looks key up in locale, then in the default locale, and finally
// returns the key itself.
func Translate(locale, key string) string {
	ensureLoaded()

	mu.RLock()
	defer mu.RUnlock()

	if trans, ok := locales[locale]; ok {
		if val, ok := trans[key]; ok {
			return val
		}
	}

	if locale != DefaultLocale {
		if trans, ok := locales[DefaultLocale]; ok {
			if val, ok := trans[key]; ok {
				return val
			}
		}
	}

	return key
}

// Format translates key and substitutes {{name}} placeholders from vars.
func Format(locale, key string, vars map[string]string) string {
	msg := Translate(locale, key)
	if len(vars) == 0 {
		return msg
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}
