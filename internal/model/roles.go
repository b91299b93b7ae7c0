package model

import "strings"

// ControlType is the accessibility control-type tag of an element, as
// reported by the provider (e.g. "Button", "Edit", "Pane").
type ControlType string

const (
	ControlAppBar       ControlType = "AppBar"
	ControlButton       ControlType = "Button"
	ControlCalendar     ControlType = "Calendar"
	ControlCheckBox     ControlType = "CheckBox"
	ControlComboBox     ControlType = "ComboBox"
	ControlCustom       ControlType = "Custom"
	ControlDataGrid     ControlType = "DataGrid"
	ControlDataItem     ControlType = "DataItem"
	ControlDocument     ControlType = "Document"
	ControlEdit         ControlType = "Edit"
	ControlGroup        ControlType = "Group"
	ControlHeader       ControlType = "Header"
	ControlHeaderItem   ControlType = "HeaderItem"
	ControlHyperlink    ControlType = "Hyperlink"
	ControlImage        ControlType = "Image"
	ControlList         ControlType = "List"
	ControlListItem     ControlType = "ListItem"
	ControlMenu         ControlType = "Menu"
	ControlMenuBar      ControlType = "MenuBar"
	ControlMenuItem     ControlType = "MenuItem"
	ControlPane         ControlType = "Pane"
	ControlProgressBar  ControlType = "ProgressBar"
	ControlRadioButton  ControlType = "RadioButton"
	ControlScrollBar    ControlType = "ScrollBar"
	ControlSemanticZoom ControlType = "SemanticZoom"
	ControlSeparator    ControlType = "Separator"
	ControlSlider       ControlType = "Slider"
	ControlSpinner      ControlType = "Spinner"
	ControlSplitButton  ControlType = "SplitButton"
	ControlStatusBar    ControlType = "StatusBar"
	ControlTab          ControlType = "Tab"
	ControlTabItem      ControlType = "TabItem"
	ControlTable        ControlType = "Table"
	ControlText         ControlType = "Text"
	ControlThumb        ControlType = "Thumb"
	ControlTitleBar     ControlType = "TitleBar"
	ControlToolBar      ControlType = "ToolBar"
	ControlToolTip      ControlType = "ToolTip"
	ControlTree         ControlType = "Tree"
	ControlTreeItem     ControlType = "TreeItem"
	ControlWindow       ControlType = "Window"
)

// KnownControlTypes lists every tag ParseControlType accepts.
var KnownControlTypes = []ControlType{
	ControlAppBar, ControlButton, ControlCalendar, ControlCheckBox, ControlComboBox,
	ControlCustom, ControlDataGrid, ControlDataItem, ControlDocument, ControlEdit,
	ControlGroup, ControlHeader, ControlHeaderItem, ControlHyperlink, ControlImage,
	ControlList, ControlListItem, ControlMenu, ControlMenuBar, ControlMenuItem,
	ControlPane, ControlProgressBar, ControlRadioButton, ControlScrollBar,
	ControlSemanticZoom, ControlSeparator, ControlSlider, ControlSpinner,
	ControlSplitButton, ControlStatusBar, ControlTab, ControlTabItem, ControlTable,
	ControlText, ControlThumb, ControlTitleBar, ControlToolBar, ControlToolTip,
	ControlTree, ControlTreeItem, ControlWindow,
}

// controlTypeAliases maps friendly names agents tend to use onto real tags.
// Dialogs are windows as far as the accessibility tree is concerned.
var controlTypeAliases = map[string]ControlType{
	"dialog":     ControlWindow,
	"textbox":    ControlEdit,
	"label":      ControlText,
	"statictext": ControlText,
	"radio":      ControlRadioButton,
	"link":       ControlHyperlink,
	"dropdown":   ControlComboBox,
}

var controlTypeIndex = func() map[string]ControlType {
	m := make(map[string]ControlType, len(KnownControlTypes)+len(controlTypeAliases))
	for _, ct := range KnownControlTypes {
		m[strings.ToLower(string(ct))] = ct
	}
	for alias, ct := range controlTypeAliases {
		m[alias] = ct
	}
	return m
}()

// ParseControlType resolves s (case-insensitive, aliases allowed) to a known
// control type.
func ParseControlType(s string) (ControlType, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, " ", "")
	if key == "" {
		return "", false
	}
	ct, ok := controlTypeIndex[key]
	return ct, ok
}

// EditableTypes are the data-entry controls that take precedence over labels
// sharing the same visible name.
var EditableTypes = []ControlType{ControlEdit, ControlComboBox, ControlDocument}

// InteractiveTypes bounds the substring name search to controls an agent is
// likely to target.
var InteractiveTypes = []ControlType{
	ControlButton, ControlEdit, ControlText, ControlDocument,
	ControlMenuItem, ControlTreeItem, ControlListItem, ControlCheckBox,
}

// ContainsType reports whether ct is in set.
func ContainsType(set []ControlType, ct ControlType) bool {
	for _, c := range set {
		if c == ct {
			return true
		}
	}
	return false
}
