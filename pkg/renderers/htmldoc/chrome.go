package htmldoc

import (
	theme "github.com/goliatone/go-theme"
)

// ChromeClasses are the CSS class hooks emitted around the rendered form
// and document. Themes can override individual entries through their token
// map; anything unset falls back to the bundled stylesheet's defaults.
type ChromeClasses struct {
	Shell         string
	Tabs          string
	Tab           string
	TabActive     string
	Card          string
	FieldGroup    string
	Label         string
	Input         string
	Error         string
	ItemsSection  string
	ItemRow       string
	Actions       string
	Button        string
	ButtonPrimary string
	ButtonDanger  string
	Preview       string
}

func defaultChrome() ChromeClasses {
	return ChromeClasses{
		Shell:         "actagen-shell",
		Tabs:          "actagen-tabs",
		Tab:           "actagen-tab",
		TabActive:     "actagen-tab--active",
		Card:          "actagen-card",
		FieldGroup:    "actagen-field",
		Label:         "actagen-label",
		Input:         "actagen-input",
		Error:         "actagen-error",
		ItemsSection:  "actagen-items",
		ItemRow:       "actagen-item-row",
		Actions:       "actagen-actions",
		Button:        "actagen-button",
		ButtonPrimary: "actagen-button--primary",
		ButtonDanger:  "actagen-button--danger",
		Preview:       "actagen-preview",
	}
}

// chromeFromTheme overlays theme tokens (keys "chrome.<name>") onto the
// default class set.
func chromeFromTheme(cfg *theme.RendererConfig) ChromeClasses {
	chrome := defaultChrome()
	if cfg == nil || len(cfg.Tokens) == 0 {
		return chrome
	}

	override := func(dst *string, key string) {
		if value, ok := cfg.Tokens["chrome."+key]; ok && value != "" {
			*dst = value
		}
	}
	override(&chrome.Shell, "shell")
	override(&chrome.Tabs, "tabs")
	override(&chrome.Tab, "tab")
	override(&chrome.TabActive, "tabActive")
	override(&chrome.Card, "card")
	override(&chrome.FieldGroup, "field")
	override(&chrome.Label, "label")
	override(&chrome.Input, "input")
	override(&chrome.Error, "error")
	override(&chrome.ItemsSection, "items")
	override(&chrome.ItemRow, "itemRow")
	override(&chrome.Actions, "actions")
	override(&chrome.Button, "button")
	override(&chrome.ButtonPrimary, "buttonPrimary")
	override(&chrome.ButtonDanger, "buttonDanger")
	override(&chrome.Preview, "preview")
	return chrome
}
