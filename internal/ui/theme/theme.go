package theme

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/weblearn/weblearn/internal/store"
)

// Name identifies a palette.
type Name string

const (
	Light Name = "light"
	Dark  Name = "dark"
)

// ErrUnknownTheme is returned for names other than light and dark.
var ErrUnknownTheme = errors.New("unknown theme")

// ParseName validates a theme name.
func ParseName(s string) (Name, error) {
	switch Name(s) {
	case Light, Dark:
		return Name(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTheme, s)
}

// Toggle returns the other theme.
func Toggle(n Name) Name {
	if n == Dark {
		return Light
	}
	return Dark
}

// Palette is the set of colors a theme is built from.
type Palette struct {
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	Bg        color.Color
	BgCard    color.Color
	Border    color.Color
}

var palettes = map[Name]Palette{
	Light: {
		Primary:   lipgloss.Color("#2563EB"), // Blue
		Secondary: lipgloss.Color("#0D9488"), // Teal
		Accent:    lipgloss.Color("#EA580C"), // Orange
		Success:   lipgloss.Color("#16A34A"),
		Error:     lipgloss.Color("#DC2626"),
		Text:      lipgloss.Color("#1E293B"),
		TextDim:   lipgloss.Color("#64748B"),
		Bg:        lipgloss.Color("#FFFFFF"),
		BgCard:    lipgloss.Color("#F1F5F9"),
		Border:    lipgloss.Color("#CBD5E1"),
	},
	Dark: {
		Primary:   lipgloss.Color("#60A5FA"),
		Secondary: lipgloss.Color("#14B8A6"),
		Accent:    lipgloss.Color("#F97316"),
		Success:   lipgloss.Color("#22C55E"),
		Error:     lipgloss.Color("#F43F5E"),
		Text:      lipgloss.Color("#F8FAFC"),
		TextDim:   lipgloss.Color("#94A3B8"),
		Bg:        lipgloss.Color("#0F172A"), // Deep Navy
		BgCard:    lipgloss.Color("#1E293B"),
		Border:    lipgloss.Color("#334155"),
	},
}

// Colors of the active palette.
var (
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	Bg        color.Color
	BgCard    color.Color
	Border    color.Color
)

// Styles derived from the active palette. Apply rebuilds them.
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style

	Header lipgloss.Style
	Footer lipgloss.Style
	Card   lipgloss.Style

	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Correct    lipgloss.Style
	Incorrect  lipgloss.Style

	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
	ButtonActive   lipgloss.Style
	ButtonInactive lipgloss.Style
)

var current Name

func init() {
	build(Light, palettes[Light])
}

// Current returns the active theme.
func Current() Name { return current }

// PaletteOf returns the colors of n.
func PaletteOf(n Name) (Palette, bool) {
	p, ok := palettes[n]
	return p, ok
}

// Apply switches every style to the palette of n.
func Apply(n Name) error {
	p, ok := palettes[n]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, n)
	}
	build(n, p)
	return nil
}

func build(n Name, p Palette) {
	current = n
	Primary, Secondary, Accent = p.Primary, p.Secondary, p.Accent
	Success, Error = p.Success, p.Error
	Text, TextDim = p.Text, p.TextDim
	Bg, BgCard, Border = p.Bg, p.BgCard, p.Border

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)
	Subtitle = lipgloss.NewStyle().
		Foreground(TextDim).
		Align(lipgloss.Center)
	Body = lipgloss.NewStyle().
		Foreground(Text)
	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)
	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)
	Unselected = lipgloss.NewStyle().
		Foreground(Text)
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)
	Incorrect = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	ProgressFilled = lipgloss.NewStyle().
		Background(Secondary)
	ProgressEmpty = lipgloss.NewStyle().
		Background(Border)
	ButtonActive = lipgloss.NewStyle().
		Background(Primary).
		Foreground(Bg).
		Bold(true).
		Padding(0, 2)
	ButtonInactive = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
}

// Load returns the persisted theme, defaulting to light when none is saved
// or the saved value is unreadable. Both a JSON string and a bare name are
// accepted.
func Load(ctx context.Context, kv store.KV, log *zap.Logger) (Name, error) {
	raw, err := kv.Get(ctx, store.KeyTheme)
	if err != nil {
		return Light, err
	}
	if len(raw) == 0 {
		return Light, nil
	}
	n, err := ParseName(strings.Trim(strings.TrimSpace(string(raw)), `"`))
	if err != nil {
		if log != nil {
			log.Warn("ignoring saved theme", zap.ByteString("value", raw))
		}
		return Light, nil
	}
	return n, nil
}

// Save persists n as the theme preference.
func Save(ctx context.Context, kv store.KV, n Name) error {
	if _, err := ParseName(string(n)); err != nil {
		return err
	}
	return store.WriteJSON(ctx, kv, store.KeyTheme, string(n))
}
