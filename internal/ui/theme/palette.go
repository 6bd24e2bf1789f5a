package theme

import "github.com/charmbracelet/lipgloss"

// Palette is a Theme backed by a fixed set of colours.
type Palette struct {
	primary, secondary, accent  lipgloss.AdaptiveColor
	err, warning, success, info lipgloss.AdaptiveColor

	text, textMuted, textEmphasized lipgloss.AdaptiveColor

	background, backgroundSecondary, backgroundDarker lipgloss.AdaptiveColor

	borderNormal, borderFocused, borderDim lipgloss.AdaptiveColor
}

func c(dark, light string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: dark, Light: light}
}

func (p Palette) Primary() lipgloss.AdaptiveColor             { return p.primary }
func (p Palette) Secondary() lipgloss.AdaptiveColor           { return p.secondary }
func (p Palette) Accent() lipgloss.AdaptiveColor              { return p.accent }
func (p Palette) Error() lipgloss.AdaptiveColor               { return p.err }
func (p Palette) Warning() lipgloss.AdaptiveColor             { return p.warning }
func (p Palette) Success() lipgloss.AdaptiveColor             { return p.success }
func (p Palette) Info() lipgloss.AdaptiveColor                { return p.info }
func (p Palette) Text() lipgloss.AdaptiveColor                { return p.text }
func (p Palette) TextMuted() lipgloss.AdaptiveColor           { return p.textMuted }
func (p Palette) TextEmphasized() lipgloss.AdaptiveColor      { return p.textEmphasized }
func (p Palette) Background() lipgloss.AdaptiveColor          { return p.background }
func (p Palette) BackgroundSecondary() lipgloss.AdaptiveColor { return p.backgroundSecondary }
func (p Palette) BackgroundDarker() lipgloss.AdaptiveColor    { return p.backgroundDarker }
func (p Palette) BorderNormal() lipgloss.AdaptiveColor        { return p.borderNormal }
func (p Palette) BorderFocused() lipgloss.AdaptiveColor       { return p.borderFocused }
func (p Palette) BorderDim() lipgloss.AdaptiveColor           { return p.borderDim }

var (
	// TokyoNight is the default theme.
	TokyoNight = Palette{
		primary:             c("#82aaff", "#2e7de9"),
		secondary:           c("#c099ff", "#9854f1"),
		accent:              c("#ff966c", "#b15c00"),
		err:                 c("#ff757f", "#f52a65"),
		warning:             c("#ff966c", "#b15c00"),
		success:             c("#c3e88d", "#587539"),
		info:                c("#7dcfff", "#0db9d7"),
		text:                c("#c8d3f5", "#3760bf"),
		textMuted:           c("#636da6", "#848cb5"),
		textEmphasized:      c("#ffc777", "#8c6c3e"),
		background:          c("#222436", "#e1e2e7"),
		backgroundSecondary: c("#2f334d", "#c8c9ce"),
		backgroundDarker:    c("#1e2030", "#d5d6db"),
		borderNormal:        c("#3b4261", "#a8aecb"),
		borderFocused:       c("#82aaff", "#2e7de9"),
		borderDim:           c("#292e42", "#c8c9ce"),
	}

	// Gruvbox, Catppuccin and Dracula are the alternatives offered by theme cycling.
	Gruvbox = Palette{
		primary:             c("#83a598", "#076678"),
		secondary:           c("#d3869b", "#8f3f71"),
		accent:              c("#fabd2f", "#b57614"),
		err:                 c("#fb4934", "#9d0006"),
		warning:             c("#fe8019", "#af3a03"),
		success:             c("#b8bb26", "#79740e"),
		info:                c("#83a598", "#076678"),
		text:                c("#ebdbb2", "#3c3836"),
		textMuted:           c("#a89984", "#7c6f64"),
		textEmphasized:      c("#fabd2f", "#b57614"),
		background:          c("#282828", "#fbf1c7"),
		backgroundSecondary: c("#504945", "#ebdbb2"),
		backgroundDarker:    c("#1d2021", "#d5c4a1"),
		borderNormal:        c("#504945", "#bdae93"),
		borderFocused:       c("#83a598", "#076678"),
		borderDim:           c("#3c3836", "#d5c4a1"),
	}

	Catppuccin = Palette{
		primary:             c("#89b4fa", "#1e66f5"),
		secondary:           c("#cba6f7", "#8839ef"),
		accent:              c("#fab387", "#fe640b"),
		err:                 c("#f38ba8", "#d20f39"),
		warning:             c("#fab387", "#fe640b"),
		success:             c("#a6e3a1", "#40a02b"),
		info:                c("#89b4fa", "#1e66f5"),
		text:                c("#cdd6f4", "#4c4f69"),
		textMuted:           c("#6c7086", "#9ca0b0"),
		textEmphasized:      c("#f5e0dc", "#dc8a78"),
		background:          c("#1e1e2e", "#eff1f5"),
		backgroundSecondary: c("#313244", "#e6e9ef"),
		backgroundDarker:    c("#181825", "#dce0e8"),
		borderNormal:        c("#6c7086", "#9ca0b0"),
		borderFocused:       c("#89b4fa", "#1e66f5"),
		borderDim:           c("#45475a", "#ccd0da"),
	}

	Dracula = Palette{
		primary:             c("#bd93f9", "#7e57c2"),
		secondary:           c("#8be9fd", "#0097a7"),
		accent:              c("#f1fa8c", "#f9a825"),
		err:                 c("#ff5555", "#d32f2f"),
		warning:             c("#ffb86c", "#ef6c00"),
		success:             c("#50fa7b", "#388e3c"),
		info:                c("#8be9fd", "#1976d2"),
		text:                c("#f8f8f2", "#212121"),
		textMuted:           c("#6272a4", "#757575"),
		textEmphasized:      c("#f8f8f2", "#000000"),
		background:          c("#282a36", "#ffffff"),
		backgroundSecondary: c("#44475a", "#e0e0e0"),
		backgroundDarker:    c("#1e1f29", "#bdbdbd"),
		borderNormal:        c("#6272a4", "#bdbdbd"),
		borderFocused:       c("#bd93f9", "#7e57c2"),
		borderDim:           c("#44475a", "#e0e0e0"),
	}
)

func init() {
	RegisterTheme("tokyonight", TokyoNight)
	RegisterTheme("gruvbox", Gruvbox)
	RegisterTheme("catppuccin", Catppuccin)
	RegisterTheme("dracula", Dracula)
}
