package tui

import (
	"errors"
	"strings"

	"github.com/theirongolddev/benchavg/internal/config"
	"github.com/theirongolddev/benchavg/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues binds the first-run form fields.
type SetupValues struct {
	DataFile string
	Debug    bool
	Addr     string
	Legacy   bool
	Theme    string
}

// SetupValuesFrom seeds the form from an existing configuration.
func SetupValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		DataFile: cfg.General.DataFile,
		Debug:    cfg.General.Debug,
		Addr:     cfg.Server.Addr,
		Legacy:   cfg.Server.LegacyResponses,
		Theme:    cfg.Appearance.Theme,
	}
}

// ApplySetup copies completed form values into cfg.
func ApplySetup(cfg *config.Config, vals SetupValues) {
	cfg.General.DataFile = strings.TrimSpace(vals.DataFile)
	cfg.General.Debug = vals.Debug
	cfg.Server.Addr = strings.TrimSpace(vals.Addr)
	cfg.Server.LegacyResponses = vals.Legacy
	if theme.Known(vals.Theme) {
		cfg.Appearance.Theme = vals.Theme
	}
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

// NewSetupForm builds the setup wizard. Both `benchavg setup` and the
// dashboard's first run use it.
func NewSetupForm(vals *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to benchavg").
				Description("Averages of LLM benchmarking records.\nSettings are saved to "+config.ConfigPath()),
			huh.NewInput().
				Title("Data file").
				Description("JSON document with a benchmarking_results array, or a .db from `benchavg import`").
				Value(&vals.DataFile).
				Validate(notBlank("data file")),
			huh.NewConfirm().
				Title("Enable dev mode?").
				Description("Records are only loaded in dev mode").
				Value(&vals.Debug),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Listen address").
				Description("Used by `benchavg serve` and `benchavg query`").
				Value(&vals.Addr).
				Validate(notBlank("listen address")),
			huh.NewConfirm().
				Title("Legacy error responses?").
				Description("Answer bad ranges and a missing data file with 200 plain text").
				Value(&vals.Legacy),
			huh.NewSelect[string]().
				Title("Theme").
				Options(themeOpts...).
				Value(&vals.Theme),
		),
	).WithTheme(huh.ThemeCharm())
}
