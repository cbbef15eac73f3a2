package util

import (
	"github.com/fatih/color"
	"github.com/vasylcode/monobar/internal/model"
)

// ColorMap maps color names to terminal color attributes
var ColorMap = map[string]color.Attribute{
	"black":         color.FgBlack,
	"red":           color.FgRed,
	"green":         color.FgGreen,
	"yellow":        color.FgYellow,
	"blue":          color.FgBlue,
	"magenta":       color.FgMagenta,
	"cyan":          color.FgCyan,
	"white":         color.FgWhite,
	"gray":          color.FgHiBlack,
	"brightred":     color.FgHiRed,
	"brightgreen":   color.FgHiGreen,
	"brightyellow":  color.FgHiYellow,
	"brightblue":    color.FgHiBlue,
	"brightmagenta": color.FgHiMagenta,
	"brightcyan":    color.FgHiCyan,
	"brightwhite":   color.FgHiWhite,
}

// tviewColors maps the same color names to tview color tags
var tviewColors = map[string]string{
	"black":         "#000000",
	"red":           "#FF0000",
	"green":         "#00FF00",
	"yellow":        "#FFFF00",
	"blue":          "#0000FF",
	"magenta":       "#FF00FF",
	"cyan":          "#00FFFF",
	"white":         "#FFFFFF",
	"gray":          "#888888",
	"brightred":     "#FF5555",
	"brightgreen":   "#55FF55",
	"brightyellow":  "#FFFF55",
	"brightblue":    "#5555FF",
	"brightmagenta": "#FF55FF",
	"brightcyan":    "#55FFFF",
	"brightwhite":   "#FFFFFF",
}

// accountTypeColors is the tag color of each account type
var accountTypeColors = map[model.AccountType]string{
	model.AccountTypeBlack:         "gray",
	model.AccountTypeWhite:         "brightwhite",
	model.AccountTypePlatinum:      "cyan",
	model.AccountTypeIron:          "blue",
	model.AccountTypeYellow:        "yellow",
	model.AccountTypeEAid:          "green",
	model.AccountTypeMadeInUkraine: "brightblue",
	model.AccountTypeFOP:           "magenta",
}

// GetTerminalColor returns a terminal color based on a color name
func GetTerminalColor(colorName string, defaultColor color.Attribute) *color.Color {
	if attr, ok := ColorMap[colorName]; ok {
		return color.New(attr)
	}
	return color.New(defaultColor)
}

// TviewColor converts a color name to a tview color code
func TviewColor(colorName string) string {
	if c, ok := tviewColors[colorName]; ok {
		return c
	}
	return "#FFFFFF"
}

// AccountTypeColor returns the color name used to tag an account type
func AccountTypeColor(t model.AccountType) string {
	if c, ok := accountTypeColors[t]; ok {
		return c
	}
	return "white"
}
