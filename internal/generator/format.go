package generator

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/ini.v1"
)

// Format names the syntax of a generated file so verify knows how to parse it
type Format string

const (
	FormatKeyValue Format = "keyvalue" // kitty: "key value" lines
	FormatTOML     Format = "toml"
	FormatTmux     Format = "tmux"
	FormatBtop     Format = "btop"
	FormatHyprland Format = "hyprland"
	FormatCSS      Format = "css"
	FormatINI      Format = "ini"
	FormatRasi     Format = "rasi"
	FormatJSON     Format = "json"
	FormatLua      Format = "lua"
	FormatElisp    Format = "elisp"
	FormatShell    Format = "shell"
)

var btopLine = regexp.MustCompile(`^theme\[[a-z0-9_]+\]="[^"]*"$`)

// Check parses data according to format and returns the first syntax problem
func Check(format Format, data []byte) error {
	switch format {
	case FormatJSON:
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("invalid JSON: %w", err)
		}
		return nil
	case FormatTOML:
		var v map[string]any
		if err := toml.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("invalid TOML: %w", err)
		}
		return nil
	case FormatINI:
		if _, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, data); err != nil {
			return fmt.Errorf("invalid INI: %w", err)
		}
		return nil
	case FormatKeyValue:
		return checkLines(data, func(line string) bool {
			return len(strings.Fields(line)) >= 2
		})
	case FormatBtop:
		return checkLines(data, btopLine.MatchString)
	case FormatTmux, FormatHyprland, FormatCSS, FormatRasi, FormatLua, FormatElisp, FormatShell:
		return checkBalanced(data)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// checkLines applies ok to every line that is neither blank nor a # comment
func checkLines(data []byte, ok func(string) bool) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !ok(line) {
			return fmt.Errorf("line %d: malformed entry %q", n, line)
		}
	}
	return scanner.Err()
}

var closers = map[byte]byte{')': '(', ']': '[', '}': '{'}

// checkBalanced verifies that brackets pair up outside double-quoted strings
func checkBalanced(data []byte) error {
	type open struct {
		ch   byte
		line int
	}
	var stack []open
	line := 1
	inString := false

	for i := 0; i < len(data); i++ {
		c := data[i]
		if c == '\n' {
			line++
		}
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '(', '[', '{':
			stack = append(stack, open{ch: c, line: line})
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1].ch != closers[c] {
				return fmt.Errorf("line %d: unexpected %q", line, c)
			}
			stack = stack[:len(stack)-1]
		}
	}

	if inString {
		return fmt.Errorf("unterminated string")
	}
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return fmt.Errorf("line %d: unclosed %q", top.line, top.ch)
	}
	return nil
}
