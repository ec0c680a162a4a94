package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/poiesic/snipstash/core"
)

const rulerWidth = 60

// printSnippet renders one snippet with its metadata and, optionally, its
// syntax-highlighted body. Highlighting failures fall back to plain code;
// they never abort the command.
func printSnippet(w io.Writer, snippet *core.Snippet, showCode bool, theme string) {
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", rulerWidth))
	fmt.Fprintf(w, "%s\n", snippet.Title)
	fmt.Fprintf(w, "   ID: %s\n", snippet.Id)
	fmt.Fprintf(w, "   Language: %s\n", snippet.Language)
	fmt.Fprintf(w, "   Tags: %s\n", joinOrNone(snippet.Tags))
	if snippet.Description != "" {
		fmt.Fprintf(w, "   Description: %s\n", snippet.Description)
	}
	fmt.Fprintf(w, "   Created: %s\n", snippet.CreatedAt.Format("2006-01-02"))
	fmt.Fprintf(w, "   Used: %d times\n", snippet.UsageCount)

	if !showCode || snippet.Code == "" {
		return
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("-", rulerWidth))
	body := snippet.Code
	if stdoutIsTerminal() {
		if highlighted, err := highlight(snippet.Code, snippet.Language, theme); err == nil {
			body = highlighted
		}
	}
	fmt.Fprintln(w, strings.TrimRight(body, "\n"))
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", rulerWidth))
}

// highlight renders code with ANSI colors. A snippet tagged with the
// default language gets its lexer guessed from the content.
func highlight(code, language, theme string) (string, error) {
	var lexer chroma.Lexer
	if language != core.DefaultLanguage {
		lexer = lexers.Get(language)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(themeStyle(theme))
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// themeStyle maps the config theme to a chroma style name.
func themeStyle(theme string) string {
	if theme == "" || theme == "default" {
		return "monokai"
	}
	return theme
}

func stdoutIsTerminal() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
