package previewcard

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
)

// builtinVariants are the visual styles shipped with the service. A TOML
// variants file can add to or override them at startup.
func builtinVariants() map[string]Variant {
	return map[string]Variant{
		"normal": {
			Background: "backgrounds/normal.png",
			Font:       "fonts/display-bold.ttf",
			FontFamily: "Noto Sans JP",
			FontWeight: "700",
			TextColor:  "#333333",
			TextShadow: "",
		},
		"dark": {
			Background: "backgrounds/dark.png",
			Font:       "fonts/display-bold.ttf",
			FontFamily: "Noto Sans JP",
			FontWeight: "700",
			TextColor:  "#f5f5f5",
			TextShadow: "2 2 #000000",
		},
		"classic": {
			Background: "backgrounds/classic.png",
			Font:       "fonts/serif-bold.ttf",
			FontFamily: "Noto Serif JP",
			FontWeight: "600",
			TextColor:  "#2b2117",
			TextShadow: "1 1 #d8cbb8",
		},
	}
}

// Registry is the static mapping of variant names to visual parameters.
// It is built once at startup and read-only afterwards.
type Registry struct {
	variants map[string]Variant
}

// NewRegistry returns a registry holding the built-in variants.
func NewRegistry() *Registry {
	return &Registry{variants: builtinVariants()}
}

// LoadRegistry builds a registry from the built-ins merged with the TOML
// file at path. File entries win over built-ins of the same name.
//
// The file maps variant names to tables:
//
//	[halloween]
//	background = "backgrounds/halloween.png"
//	font = "fonts/display-bold.ttf"
//	font_family = "Noto Sans JP"
//	font_weight = "700"
//	text_color = "#ff7518"
func LoadRegistry(path string) (*Registry, error) {
	variants := builtinVariants()
	var loaded map[string]Variant
	if _, err := toml.DecodeFile(path, &loaded); err != nil {
		return nil, fmt.Errorf("load variants %s: %w", path, err)
	}
	for name, v := range loaded {
		if v.Font == "" || v.Background == "" {
			return nil, fmt.Errorf("load variants %s: variant %q needs font and background", path, name)
		}
		variants[name] = v
	}
	return &Registry{variants: variants}, nil
}

// Get returns the variant registered under name.
func (r *Registry) Get(name string) (Variant, error) {
	v, ok := r.variants[name]
	if !ok {
		return Variant{}, NewError(ErrCodeUnknownVariant, "unknown variant %q", name)
	}
	return v, nil
}

// Names returns all registered variant names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.variants))
	for name := range r.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
