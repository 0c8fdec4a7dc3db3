// Package main provides the msgstats CLI for analyzing Messenger export data.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arahm071/Messenger-Analysis/internal/analyze"
	"github.com/arahm071/Messenger-Analysis/internal/clean"
	"github.com/arahm071/Messenger-Analysis/internal/export"
	"github.com/arahm071/Messenger-Analysis/internal/format"
	"github.com/arahm071/Messenger-Analysis/internal/model"
	"github.com/arahm071/Messenger-Analysis/internal/resolver"
	"github.com/arahm071/Messenger-Analysis/internal/view"
)

var version = "dev"

var inboxFlag string

var rootCmd = &cobra.Command{
	Use:     "msgstats",
	Short:   "Analyze downloaded Messenger chat history",
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&inboxFlag, "inbox", "",
		"export inbox directory (env: MSGSTATS_INBOX, default: ./inbox)")

	rootCmd.AddCommand(newChatsCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newWordsCmd())
	rootCmd.AddCommand(newEmojisCmd())
	rootCmd.AddCommand(newShareCmd())
	rootCmd.AddCommand(newFreqCmd())
	rootCmd.AddCommand(newViewCmd())
	rootCmd.AddCommand(newExportCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "msgstats: %v\n", err)
		os.Exit(1)
	}
}

// inboxDir returns the export root from flag, environment variable, or default.
func inboxDir() string {
	if inboxFlag != "" {
		return inboxFlag
	}
	if env := os.Getenv("MSGSTATS_INBOX"); env != "" {
		return env
	}
	return "inbox"
}

// loadTable runs the pipeline for one scope: load, clean, report drops.
func loadTable(errOut io.Writer, chatID string, all bool) (*model.Table, error) {
	if all && chatID != "" {
		return nil, errors.New("--chat cannot be used with --all")
	}
	if !all && chatID == "" {
		return nil, errors.New("provide --chat <id> or --all")
	}

	root := inboxDir()

	var result export.Result
	var err error
	if all {
		result, err = export.LoadAll(root)
	} else {
		result, err = export.LoadChat(root, chatID)
	}
	if err != nil {
		if errors.Is(err, export.ErrChatNotFound) {
			return nil, chatNotFoundError(root, chatID, err)
		}
		return nil, err
	}

	for _, warn := range result.Warnings {
		fmt.Fprintf(errOut, "warning: %v\n", warn) //nolint:errcheck
	}

	table, report := clean.Clean(result.Records)
	if dropped := report.Dropped(); dropped > 0 {
		fmt.Fprintf(errOut, "warning: dropped %d of %d records (media: %d, empty: %d, bad timestamps: %d, ambiguous calls: %d, malformed: %d)\n",
			dropped, report.Loaded, report.MediaRows, report.EmptyRows, report.BadTimestamps, report.AmbiguousCalls, report.Malformed) //nolint:errcheck
	}
	return table, nil
}

// chatNotFoundError decorates a failed exact lookup with ranked suggestions
// from the name matcher.
func chatNotFoundError(root, chatID string, cause error) error {
	chats, listErr := export.ListChats(root)
	if listErr != nil || len(chats) == 0 {
		return cause
	}

	matches := resolver.Levenshtein{}.Resolve(chatID, chats)
	if len(matches) > 3 {
		matches = matches[:3]
	}
	names := make([]string, 0, len(matches))
	for _, match := range matches {
		names = append(names, match.ChatID)
	}
	return fmt.Errorf("%w (closest: %s)", cause, strings.Join(names, ", "))
}

func newChatsCmd() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "chats",
		Short: "List export units, optionally ranked against a name query",
		RunE: func(cmd *cobra.Command, _ []string) error {
			chats, err := export.Chats(inboxDir())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if query == "" {
				for _, chat := range chats {
					fmt.Fprintf(out, "%s\t%s\n", chat.ID, chat.Title) //nolint:errcheck
				}
				return nil
			}

			ids := make([]string, 0, len(chats))
			titles := make(map[string]string, len(chats))
			for _, chat := range chats {
				ids = append(ids, chat.ID)
				titles[chat.ID] = chat.Title
			}
			for _, match := range (resolver.Levenshtein{}).Resolve(query, ids) {
				fmt.Fprintf(out, "%s\t%s\t%d\n", match.ChatID, titles[match.ChatID], match.Distance) //nolint:errcheck
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "match", "m", "", "rank chats against a free-text name")
	return cmd
}

// scopeFlags is the flag set shared by every aggregation command.
type scopeFlags struct {
	chatID     string
	all        bool
	formatFlag string
	noHeader   bool
}

func (f *scopeFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.chatID, "chat", "c", "", "analyze a single chat id")
	flags.BoolVarP(&f.all, "all", "a", false, "analyze every chat combined")
	flags.StringVar(&f.formatFlag, "format", "table", "output format: table, plain, or json")
	flags.BoolVar(&f.noHeader, "no-header", false, "omit the header row")
}

func newStatsCmd() *cobra.Command {
	var scope scopeFlags

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-participant message, word and call totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := loadTable(cmd.ErrOrStderr(), scope.chatID, scope.all)
			if err != nil {
				return err
			}
			return format.WriteStats(cmd.OutOrStdout(), analyze.ParticipantStats(table), !scope.noHeader, scope.formatFlag)
		},
	}

	scope.register(cmd)
	return cmd
}

func newWordsCmd() *cobra.Command {
	var scope scopeFlags
	var topN int

	cmd := &cobra.Command{
		Use:   "words",
		Short: "Show each participant's most used words",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := loadTable(cmd.ErrOrStderr(), scope.chatID, scope.all)
			if err != nil {
				return err
			}
			return format.WriteRanked(cmd.OutOrStdout(), analyze.TopWords(table, topN), "Word", !scope.noHeader, scope.formatFlag)
		},
	}

	scope.register(cmd)
	cmd.Flags().IntVarP(&topN, "top", "n", analyze.DefaultTopN, "ranking depth per participant")
	return cmd
}

func newEmojisCmd() *cobra.Command {
	var scope scopeFlags
	var topN int

	cmd := &cobra.Command{
		Use:   "emojis",
		Short: "Show each participant's most used emojis",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := loadTable(cmd.ErrOrStderr(), scope.chatID, scope.all)
			if err != nil {
				return err
			}
			return format.WriteRanked(cmd.OutOrStdout(), analyze.TopEmojis(table, topN), "Emoji", !scope.noHeader, scope.formatFlag)
		},
	}

	scope.register(cmd)
	cmd.Flags().IntVarP(&topN, "top", "n", analyze.DefaultTopN, "ranking depth per participant")
	return cmd
}

func newShareCmd() *cobra.Command {
	var scope scopeFlags

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Show each participant's percentage of all messages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := loadTable(cmd.ErrOrStderr(), scope.chatID, scope.all)
			if err != nil {
				return err
			}
			return format.WriteShares(cmd.OutOrStdout(), analyze.MessageShare(table), !scope.noHeader, scope.formatFlag)
		},
	}

	scope.register(cmd)
	return cmd
}

func newFreqCmd() *cobra.Command {
	var scope scopeFlags
	var byDate bool

	cmd := &cobra.Command{
		Use:   "freq",
		Short: "Show the weekday-by-hour message frequency matrix",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := loadTable(cmd.ErrOrStderr(), scope.chatID, scope.all)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if byDate {
				return format.WriteFrequencyByDate(out, analyze.FrequencyByDate(table), !scope.noHeader, scope.formatFlag)
			}
			return format.WriteFrequency(out, analyze.TemporalFrequency(table), !scope.noHeader, scope.formatFlag)
		},
	}

	scope.register(cmd)
	cmd.Flags().BoolVar(&byDate, "by-date", false, "bucket by calendar date instead of weekday")
	return cmd
}

func newViewCmd() *cobra.Command {
	var (
		wrap         int
		maxRows      int
		forceColor   bool
		forceNoColor bool
	)

	cmd := &cobra.Command{
		Use:   "view <chat-id>",
		Short: "Render a chat as a terminal transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if forceColor && forceNoColor {
				return errors.New("--color and --no-color cannot be used together")
			}

			table, err := loadTable(cmd.ErrOrStderr(), args[0], false)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			outFile, _ := out.(*os.File)
			return view.Run(table, view.Options{
				Wrap:         wrap,
				MaxRows:      maxRows,
				ForceColor:   forceColor,
				ForceNoColor: forceNoColor,
				Out:          out,
				OutFile:      outFile,
			})
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&wrap, "wrap", 0, "wrap bubbles at the given column width")
	flags.IntVar(&maxRows, "max", 0, "show only the most recent N messages (0 means no limit)")
	flags.BoolVar(&forceColor, "color", false, "force-enable ANSI colors even when stdout is not a TTY")
	flags.BoolVar(&forceNoColor, "no-color", false, "disable ANSI colors regardless of terminal detection")
	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		chatID  string
		all     bool
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the cleaned table to a CSV file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := loadTable(cmd.ErrOrStderr(), chatID, all)
			if err != nil {
				return err
			}

			if outPath == "" {
				name := chatID
				if all {
					name = "all_chats"
				}
				outPath = filepath.Join(inboxDir(), name+".csv")
			}

			if err := format.WriteCSV(outPath, analyze.ExportView(table)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", table.Len(), outPath) //nolint:errcheck
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&chatID, "chat", "c", "", "export a single chat id")
	flags.BoolVarP(&all, "all", "a", false, "export every chat combined")
	flags.StringVarP(&outPath, "out", "o", "", "destination file (default: <inbox>/<chat>.csv)")
	return cmd
}
