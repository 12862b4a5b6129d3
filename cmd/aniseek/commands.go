package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/justchokingaround/aniseek/internal/config"
	"github.com/justchokingaround/aniseek/internal/search"
	"github.com/justchokingaround/aniseek/internal/session"
	"github.com/justchokingaround/aniseek/internal/tui/utils"
	"github.com/justchokingaround/aniseek/pkg/types"
)

// configCmd handles configuration operations
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		path := cfgFile
		if path == "" {
			path = config.DefaultConfigPath()
		}
		if err := config.WriteDefault(path, force); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Default configuration written to: %s\n", path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Display configuration file path",
	Run: func(cmd *cobra.Command, args []string) {
		if cfgFile != "" {
			fmt.Fprintln(cmd.OutOrStdout(), cfgFile)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), config.DefaultConfigPath())
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

// searchCmd runs one search and prints the page. It never touches the saved session.
var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search titles and print one page of results",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term := strings.Join(args, " ")
		page, _ := cmd.Flags().GetInt("page")
		typeFlag, _ := cmd.Flags().GetString("type")

		kind, err := types.ParseSearchType(typeFlag)
		if err != nil {
			return err
		}
		if strings.TrimSpace(term) == "" && kind == types.SearchText {
			return fmt.Errorf("search term must not be empty")
		}
		if page < 1 {
			return fmt.Errorf("--page must be at least 1, got %d", page)
		}

		state := session.NewState()
		state.SetIsDub(dubFlag || cfg.UI.Dub)
		state.SetSearchType(kind)

		browser := search.NewBrowser(api, state, cfg.API.PageSize, logger)
		res := browser.SetTerm(cmd.Context(), term)
		for res.Err == nil && res.Page < page && res.HasNextPage {
			res = browser.NextPage(cmd.Context())
		}

		if res.Err != nil {
			return fmt.Errorf("search failed: %s", search.Message(res.Err))
		}
		if res.Page < page {
			fmt.Fprintf(cmd.ErrOrStderr(), "only %d page(s) available\n", res.Page)
		}

		printTitles(cmd.OutOrStdout(), state.Titles(), state.IsDub())

		if kind != types.SearchText {
			fmt.Fprintf(cmd.OutOrStdout(), "no %s listing is available yet\n", kind)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\npage %d", res.Page)
		if res.HasNextPage {
			fmt.Fprintf(cmd.OutOrStdout(), " • next page available (--page %d)", res.Page+1)
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	searchCmd.Flags().IntP("page", "p", 1, "page to show")
	searchCmd.Flags().StringP("type", "t", "text", "search type: text, new, popular, random")
}

func printTitles(w io.Writer, titles []types.Title, dub bool) {
	translation := "sub"
	if dub {
		translation = "dub"
	}
	for i, t := range titles {
		fmt.Fprintf(w, "%3d. %s %4d %s  %s\n",
			i+1, utils.PadRight(t.DisplayName(), 50), t.Episodes(dub), translation, api.TitleURL(t.ID))
	}
}

// sessionCmd inspects the saved session
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Saved session management",
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		snap, ok, err := store.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}
		if !ok {
			fmt.Fprintln(out, "No saved session.")
			return nil
		}

		fmt.Fprintf(out, "Mode:      %s\n", snap.Mode)
		if snap.SearchTerm != nil {
			fmt.Fprintf(out, "Search:    %q\n", *snap.SearchTerm)
		}
		fmt.Fprintf(out, "Dub:       %t\n", snap.IsDub)
		if snap.EpisodeNumber != nil {
			fmt.Fprintf(out, "Episode:   %s\n", *snap.EpisodeNumber)
		}
		if snap.CurrentTitle != nil {
			fmt.Fprintf(out, "Open:      %s (%s)\n", snap.CurrentTitle.DisplayName(), api.TitleURL(snap.CurrentTitle.ID))
		}
		if settings != nil {
			if at, ok, err := settings.UpdatedAt(cmd.Context(), session.StorageKey); err == nil && ok {
				fmt.Fprintf(out, "Saved:     %s\n", humanize.Time(at))
			}
		}
		fmt.Fprintf(out, "Titles:    %d\n\n", len(snap.Titles))
		printTitles(out, snap.Titles, snap.IsDub)
		return nil
	},
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Session cleared.")
		return nil
	},
}

func init() {
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionClearCmd)
}
