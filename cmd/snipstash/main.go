// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/poiesic/snipstash"
	"github.com/poiesic/snipstash/core"
	"github.com/poiesic/snipstash/search"
	"github.com/poiesic/snipstash/storage"
	badgerstore "github.com/poiesic/snipstash/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "snipstash",
		Usage: "Save, tag, and retrieve code snippets with fuzzy search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: "Directory holding the snippet and config documents",
				Value: defaultDataDir(),
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "Storage backend (file or badger)",
				Value: "file",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"L"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a new snippet",
				ArgsUsage: "TITLE",
				Action:    addCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "code", Aliases: []string{"c"}, Usage: "Code content"},
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Read code from file"},
					&cli.StringFlag{Name: "language", Aliases: []string{"l"}, Usage: "Programming language"},
					&cli.StringFlag{Name: "tags", Aliases: []string{"t"}, Usage: "Comma-separated tags"},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Description"},
				},
			},
			{
				Name:      "get",
				Usage:     "Get snippet by ID",
				ArgsUsage: "ID",
				Action:    getCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "no-code", Aliases: []string{"n"}, Usage: "Show metadata only"},
					&cli.BoolFlag{Name: "copy", Aliases: []string{"c"}, Usage: "Copy code to clipboard"},
				},
			},
			{
				Name:      "search",
				Usage:     "Search snippets",
				ArgsUsage: "[QUERY]",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "language", Aliases: []string{"l"}, Usage: "Filter by language"},
					&cli.StringFlag{Name: "tags", Aliases: []string{"t"}, Usage: "Filter by tags (comma-separated)"},
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "Max results", Value: search.DefaultLimit},
					&cli.BoolFlag{Name: "show-preview", Aliases: []string{"p"}, Usage: "Show code preview"},
					&cli.BoolFlag{Name: "interactive", Aliases: []string{"i"}, Usage: "Interactive selection"},
				},
			},
			{
				Name:   "list",
				Usage:  "List all snippets, most used first",
				Action: listCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "language", Aliases: []string{"l"}, Usage: "Filter by language"},
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "Max results", Value: 50},
				},
			},
			{
				Name:      "edit",
				Usage:     "Edit a snippet",
				ArgsUsage: "ID",
				Action:    editCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"T"}, Usage: "New title"},
					&cli.StringFlag{Name: "code", Aliases: []string{"c"}, Usage: "New code"},
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Read new code from file"},
					&cli.StringFlag{Name: "language", Aliases: []string{"l"}, Usage: "New language"},
					&cli.StringFlag{Name: "tags", Aliases: []string{"t"}, Usage: "New tags (comma-separated)"},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "New description"},
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a snippet",
				ArgsUsage: "ID",
				Action:    deleteCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "Delete without confirmation"},
				},
			},
			{
				Name:   "tags",
				Usage:  "List all tags with counts",
				Action: tagsCommand,
			},
			{
				Name:   "languages",
				Usage:  "List all languages with counts",
				Action: languagesCommand,
			},
			{
				Name:   "stats",
				Usage:  "Show collection statistics",
				Action: statsCommand,
			},
			{
				Name:      "import",
				Usage:     "Import snippets from a JSON file",
				ArgsUsage: "FILE",
				Action:    importCommand,
			},
			{
				Name:      "export",
				Usage:     "Export snippets to a JSON file",
				ArgsUsage: "FILE",
				Action:    exportCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// openManager builds the Manager from the global flags.
func openManager(c *cli.Context) (*snipstash.Manager, error) {
	dataDir := c.String("data-dir")

	switch c.String("backend") {
	case "file":
		return snipstash.NewManager(dataDir)
	case "badger":
		backend, err := badgerstore.Open(filepath.Join(dataDir, "badger"), false)
		if err != nil {
			return nil, fmt.Errorf("failed to open badger backend: %w", err)
		}
		return snipstash.NewManager(dataDir, snipstash.WithBackend(backend))
	default:
		return nil, fmt.Errorf("unknown backend %q: must be file or badger", c.String("backend"))
	}
}

func addCommand(c *cli.Context) error {
	title := c.Args().First()
	if title == "" {
		return fmt.Errorf("usage: snipstash add TITLE")
	}

	code, err := readCode(c.String("code"), c.String("file"), true)
	if err != nil {
		return err
	}
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("code cannot be empty")
	}

	mgr, err := openManager(c)
	if err != nil {
		return err
	}
	defer mgr.Close()

	ctx := context.Background()

	language := c.String("language")
	if language == "" {
		language = mgr.Store().Config(ctx).DefaultLanguage
	}

	id, err := mgr.Store().Add(ctx, title, code, language, splitTags(c.String("tags")), c.String("description"))
	if err != nil {
		return err
	}

	fmt.Printf("Snippet added with ID: %s\n", id)
	return nil
}

func getCommand(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("usage: snipstash get ID")
	}

	mgr, err := openManager(c)
	if err != nil {
		return err
	}
	defer mgr.Close()

	ctx := context.Background()
	snippet, err := mgr.Store().Get(ctx, id)
	if err != nil {
		return describeStoreError(err, id)
	}

	theme := mgr.Store().Config(ctx).Theme
	printSnippet(os.Stdout, snippet, !c.Bool("no-code"), theme)

	if c.Bool("copy") {
		if err := copyToClipboard(snippet.Code); err != nil {
			fmt.Println("\nCould not copy to clipboard.")
		} else {
			fmt.Println("\nCode copied to clipboard.")
		}
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	mgr, err := openManager(c)
	if err != nil {
		return err
	}
	defer mgr.Close()

	ctx := context.Background()
	query := search.Query{
		Text:     c.Args().First(),
		Language: c.String("language"),
		Tags:     splitTags(c.String("tags")),
		Limit:    c.Int("limit"),
	}

	results, err := mgr.Searcher().Search(ctx, query)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No snippets found.")
		return nil
	}

	fmt.Printf("Found %d snippet(s):\n\n", len(results))
	for i, result := range results {
		snippet := result.Snippet
		fmt.Printf("%d. [%s] %s\n", i+1, snippet.Id, snippet.Title)
		fmt.Printf("   Language: %s | Tags: %s\n", snippet.Language, joinOrNone(snippet.Tags))
		if query.Text != "" {
			fmt.Printf("   Match score: %.1f\n", result.Score)
		}
		if c.Bool("show-preview") {
			fmt.Printf("   Preview: %s\n", preview(snippet.Code))
		}
	}

	if c.Bool("interactive") {
		return selectInteractively(mgr, results)
	}
	return nil
}

func listCommand(c *cli.Context) error {
	mgr, err := openManager(c)
	if err != nil {
		return err
	}
	defer mgr.Close()

	results, err := mgr.Searcher().Search(context.Background(), search.Query{
		Language: c.String("language"),
		Limit:    c.Int("limit"),
	})
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No snippets found.")
		return nil
	}

	fmt.Printf("%d snippet(s):\n\n", len(results))
	for _, result := range results {
		snippet := result.Snippet
		fmt.Printf("  [%s] %s\n", snippet.Id, snippet.Title)
		fmt.Printf("       %s | %s | used %dx\n", snippet.Language, joinOrNone(snippet.Tags), snippet.UsageCount)
	}
	return nil
}

func editCommand(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("usage: snipstash edit ID")
	}

	var update core.FieldUpdate
	if c.IsSet("title") {
		update.Title = ptr(c.String("title"))
	}
	if c.IsSet("language") {
		update.Language = ptr(c.String("language"))
	}
	if c.IsSet("tags") {
		update.Tags = ptr(splitTags(c.String("tags")))
	}
	if c.IsSet("description") {
		update.Description = ptr(c.String("description"))
	}
	if c.IsSet("code") || c.IsSet("file") {
		code, err := readCode(c.String("code"), c.String("file"), false)
		if err != nil {
			return err
		}
		update.Code = ptr(code)
	}

	if update.IsZero() {
		return fmt.Errorf("nothing to update: pass at least one field flag")
	}

	mgr, err := openManager(c)
	if err != nil {
		return err
	}
	defer mgr.Close()

	if err := mgr.Store().Update(context.Background(), id, update); err != nil {
		return describeStoreError(err, id)
	}
	fmt.Printf("Snippet updated: %s\n", id)
	return nil
}

func deleteCommand(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("usage: snipstash delete ID")
	}

	if !c.Bool("force") {
		fmt.Printf("Delete snippet %s? [y/N]: ", id)
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	mgr, err := openManager(c)
	if err != nil {
		return err
	}
	defer mgr.Close()

	if err := mgr.Store().Delete(context.Background(), id); err != nil {
		return describeStoreError(err, id)
	}
	fmt.Printf("Snippet deleted: %s\n", id)
	return nil
}

func tagsCommand(c *cli.Context) error {
	mgr, err := openManager(c)
	if err != nil {
		return err
	}
	defer mgr.Close()

	tags := mgr.Store().TagCounts(context.Background())
	if len(tags) == 0 {
		fmt.Println("No tags found.")
		return nil
	}

	fmt.Printf("%d tag(s):\n\n", len(tags))
	for _, tag := range tags {
		fmt.Printf("  %s: %d snippet(s)\n", tag.Name, tag.Count)
	}
	return nil
}

func languagesCommand(c *cli.Context) error {
	mgr, err := openManager(c)
	if err != nil {
		return err
	}
	defer mgr.Close()

	languages := mgr.Store().LanguageCounts(context.Background())
	if len(languages) == 0 {
		fmt.Println("No languages found.")
		return nil
	}

	fmt.Printf("%d language(s):\n\n", len(languages))
	for _, language := range languages {
		fmt.Printf("  %s: %d snippet(s)\n", language.Name, language.Count)
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	mgr, err := openManager(c)
	if err != nil {
		return err
	}
	defer mgr.Close()

	stats := mgr.Store().Stats(context.Background())
	fmt.Println("Snippet collection statistics")
	fmt.Printf("  Total snippets:   %d\n", stats.TotalSnippets)
	fmt.Printf("  Unique languages: %d\n", stats.UniqueLanguages)
	fmt.Printf("  Unique tags:      %d\n", stats.UniqueTags)
	fmt.Printf("  Total usage:      %d\n", stats.TotalUsage)
	return nil
}

func importCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("usage: snipstash import FILE")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	mgr, err := openManager(c)
	if err != nil {
		return err
	}
	defer mgr.Close()

	imported, err := mgr.Store().ImportJSON(context.Background(), data)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	fmt.Printf("Imported %d snippet(s)\n", imported)
	return nil
}

func exportCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("usage: snipstash export FILE")
	}

	mgr, err := openManager(c)
	if err != nil {
		return err
	}
	defer mgr.Close()

	data, err := mgr.Store().ExportJSON(context.Background())
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	fmt.Printf("Exported to %s\n", path)
	return nil
}

// selectInteractively prompts for a result number, shows the snippet, and
// offers to copy its code.
func selectInteractively(mgr *snipstash.Manager, results []core.SearchResult) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("\nEnter number to view (or Enter to skip): ")
	choice, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return err
	}
	n, err := strconv.Atoi(strings.TrimSpace(choice))
	if err != nil || n < 1 || n > len(results) {
		return nil
	}

	selected := results[n-1].Snippet
	theme := mgr.Store().Config(context.Background()).Theme
	printSnippet(os.Stdout, selected, true, theme)

	fmt.Print("Copy to clipboard? [y/N]: ")
	answer, _ := reader.ReadString('\n')
	if strings.ToLower(strings.TrimSpace(answer)) == "y" {
		if err := copyToClipboard(selected.Code); err != nil {
			fmt.Println("Could not copy to clipboard.")
		} else {
			fmt.Println("Copied.")
		}
	}
	return nil
}

// readCode resolves the snippet body from a file, a flag value, or, when
// allowed, interactive stdin.
func readCode(flagValue, filePath string, promptStdin bool) (string, error) {
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	if flagValue != "" {
		return flagValue, nil
	}
	if !promptStdin {
		return "", nil
	}

	fmt.Println("Enter code (Ctrl+D when done):")
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func describeStoreError(err error, id string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("snippet not found: %s", id)
	}
	return err
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}

func joinOrNone(tags []string) string {
	if len(tags) == 0 {
		return "none"
	}
	return strings.Join(tags, ", ")
}

func preview(code string) string {
	flat := strings.ReplaceAll(code, "\n", " ")
	if len(flat) > 100 {
		return flat[:100] + "..."
	}
	return flat
}

func ptr[T any](v T) *T {
	return &v
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".snipstash"
	}
	return filepath.Join(home, ".snipstash")
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
