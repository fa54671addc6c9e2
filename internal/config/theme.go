package config

import (
	"embed"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed skins/slate.yaml skins/dracula.yaml
var defaultSkin embed.FS

// Color is a hex color string.
type Color string

// TableColors defines colors for the connection table.
type TableColors struct {
	Fg             Color `yaml:"fg"`
	CursorFg       Color `yaml:"cursorFg"`
	CursorBg       Color `yaml:"cursorBg"`
	HeaderFg       Color `yaml:"headerFg"`
	SortIndicator  Color `yaml:"sortIndicator"`
	SelectedColumn Color `yaml:"selectedColumn"`
	AddedFg        Color `yaml:"addedFg"`   // new connections
	ClosedFg       Color `yaml:"closedFg"`  // closed/retained connections
	InactiveFg     Color `yaml:"inactiveFg"` // inactive row text
}

// HeaderColors defines colors for the header bar.
type HeaderColors struct {
	TitleFg Color `yaml:"titleFg"`
	LiveFg  Color `yaml:"liveFg"`  // live indicator
	WarnFg  Color `yaml:"warnFg"`  // fetch errors, attention
	StatsFg Color `yaml:"statsFg"` // muted totals
}

// FooterColors defines colors for the keybinding footer.
type FooterColors struct {
	KeyFg  Color `yaml:"keyFg"`
	DescFg Color `yaml:"descFg"`
}

// ChipColors defines colors for metadata chips (type, chain, rates).
type ChipColors struct {
	TypeFg  Color `yaml:"typeFg"`
	ChainFg Color `yaml:"chainFg"`
	UpFg    Color `yaml:"upFg"`
	DownFg  Color `yaml:"downFg"`
}

// ModalColors defines colors for modal overlays.
type ModalColors struct {
	BorderFg Color `yaml:"borderFg"`
	AccentFg Color `yaml:"accentFg"`
	DimmedFg Color `yaml:"dimmedFg"`
}

// Palette groups all themable colors.
type Palette struct {
	Table  TableColors  `yaml:"table"`
	Header HeaderColors `yaml:"header"`
	Footer FooterColors `yaml:"footer"`
	Chip   ChipColors   `yaml:"chip"`
	Modal  ModalColors  `yaml:"modal"`
	Border Color        `yaml:"border"`
	Status Color        `yaml:"status"`
}

// Theme is the top-level skin configuration.
type Theme struct {
	Name    string  `yaml:"name"`
	Palette Palette `yaml:"palette"`
}

// DefaultTheme returns the built-in slate theme.
func DefaultTheme() *Theme {
	return &Theme{
		Name: "slate",
		Palette: Palette{
			Table: TableColors{
				Fg:             "#e6edf3",
				CursorFg:       "#ffffff",
				CursorBg:       "#58a6ff",
				HeaderFg:       "#58a6ff",
				SortIndicator:  "#3fb950",
				SelectedColumn: "#e6edf3",
				AddedFg:        "#3fb950",
				ClosedFg:       "#f85149",
				InactiveFg:     "#7d8590",
			},
			Header: HeaderColors{
				TitleFg: "#58a6ff",
				LiveFg:  "#3fb950",
				WarnFg:  "#d29922",
				StatsFg: "#7d8590",
			},
			Footer: FooterColors{
				KeyFg:  "#58a6ff",
				DescFg: "#7d8590",
			},
			Chip: ChipColors{
				TypeFg:  "#d2a8ff",
				ChainFg: "#79c0ff",
				UpFg:    "#d29922",
				DownFg:  "#3fb950",
			},
			Modal: ModalColors{
				BorderFg: "#30363d",
				AccentFg: "#58a6ff",
				DimmedFg: "#7d8590",
			},
			Border: "#30363d",
			Status: "#7d8590",
		},
	}
}

// LoadTheme loads the user skin if present, then the embedded default.
func LoadTheme() (*Theme, error) {
	configDir, err := os.UserConfigDir()
	if err == nil {
		userSkinPath := filepath.Join(configDir, "proxymon", "skin.yaml")
		// #nosec G304 - path is constructed from trusted sources
		if data, err := os.ReadFile(userSkinPath); err == nil {
			var theme Theme
			if err := yaml.Unmarshal(data, &theme); err == nil {
				return &theme, nil
			}
		}
	}

	data, err := defaultSkin.ReadFile("skins/slate.yaml")
	if err != nil {
		return DefaultTheme(), nil
	}

	var theme Theme
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return DefaultTheme(), nil
	}

	return &theme, nil
}

// CurrentTheme holds the loaded theme (singleton).
var CurrentTheme *Theme

// InitTheme initializes the global theme.
func InitTheme() error {
	theme, err := LoadTheme()
	if err != nil {
		return err
	}
	CurrentTheme = theme
	return nil
}

func init() {
	CurrentTheme = DefaultTheme()
}
