// Package keys translates human key combos such as "ctrl+shift+s" or
// "Page Down" into the token syntax accepted by platform.Inputter.SendKeys.
package keys

import (
	"fmt"
	"strings"
	"unicode"
)

// Combo is a parsed key combination.
type Combo struct {
	Shift bool
	Ctrl  bool
	Alt   bool
	// Key is the remaining key token after modifiers were stripped, as typed.
	Key string
}

const (
	shiftToken = "+"
	ctrlToken  = "^"
	altToken   = "%"
)

var modifierNames = map[string]func(*Combo){
	"ctrl":    func(c *Combo) { c.Ctrl = true },
	"control": func(c *Combo) { c.Ctrl = true },
	"alt":     func(c *Combo) { c.Alt = true },
	"shift":   func(c *Combo) { c.Shift = true },
}

var keyNames = map[string]string{
	"enter":     "{ENTER}",
	"return":    "{ENTER}",
	"tab":       "{TAB}",
	"backspace": "{BACKSPACE}",
	"delete":    "{DELETE}",
	"del":       "{DELETE}",
	"escape":    "{ESC}",
	"esc":       "{ESC}",
	"up":        "{UP}",
	"down":      "{DOWN}",
	"left":      "{LEFT}",
	"right":     "{RIGHT}",
	"home":      "{HOME}",
	"end":       "{END}",
	"pageup":    "{PGUP}",
	"page up":   "{PGUP}",
	"pgup":      "{PGUP}",
	"pagedown":  "{PGDN}",
	"page down": "{PGDN}",
	"pgdn":      "{PGDN}",
	"insert":    "{INSERT}",
	"space":     " ",
}

// reserved characters carry meaning in the token syntax and must be braced.
const reserved = "+^%~(){}[]"

func init() {
	for i := 1; i <= 12; i++ {
		keyNames[fmt.Sprintf("f%d", i)] = fmt.Sprintf("{F%d}", i)
	}
}

// Parse strips leading modifier prefixes (ctrl/control, alt, shift; any
// case, "+" separated, any order) and returns the remainder as Key.
func Parse(combo string) Combo {
	var c Combo
	rest := strings.TrimSpace(combo)
	for {
		i := strings.Index(rest, "+")
		if i <= 0 {
			break
		}
		set, ok := modifierNames[strings.ToLower(strings.TrimSpace(rest[:i]))]
		if !ok {
			break
		}
		set(&c)
		rest = rest[i+1:]
	}
	c.Key = strings.TrimSpace(rest)
	return c
}

// Token maps the key part of the combo to injection syntax.
func (c Combo) Token() string {
	key := c.Key
	if mapped, ok := keyNames[strings.ToLower(key)]; ok {
		return mapped
	}
	if len([]rune(key)) == 1 {
		r := []rune(key)[0]
		if strings.ContainsRune(reserved, r) {
			return "{" + key + "}"
		}
		if unicode.IsLetter(r) {
			if c.Shift {
				return string(unicode.ToUpper(r))
			}
			return string(unicode.ToLower(r))
		}
	}
	return key
}

// String renders the combo as shift, ctrl and alt markers followed by the
// key token.
func (c Combo) String() string {
	var b strings.Builder
	if c.Shift {
		b.WriteString(shiftToken)
	}
	if c.Ctrl {
		b.WriteString(ctrlToken)
	}
	if c.Alt {
		b.WriteString(altToken)
	}
	b.WriteString(c.Token())
	return b.String()
}

// Translate converts a symbolic combo into injection tokens.
//
//	Translate("CTRL+v")   == "^v"
//	Translate("SHIFT+a")  == "+A"
//	Translate("ENTER")    == "{ENTER}"
//	Translate("xyz")      == "xyz"
func Translate(combo string) string {
	return Parse(combo).String()
}
