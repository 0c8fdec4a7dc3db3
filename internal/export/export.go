// Package export reads Messenger download units and yields raw records.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/arahm071/Messenger-Analysis/internal/model"
)

// ErrChatNotFound is returned when a chat id has no matching export unit.
var ErrChatNotFound = errors.New("chat not found")

// Result holds the loaded records and any non-fatal warnings.
type Result struct {
	Records  []model.RawRecord
	Warnings []error
}

// Chat pairs an export unit's directory id with the display name recorded in
// its message files.
type Chat struct {
	ID    string
	Title string
}

// Chats enumerates the export units under root with their display titles.
func Chats(root string) ([]Chat, error) {
	ids, err := ListChats(root)
	if err != nil {
		return nil, err
	}

	chats := make([]Chat, 0, len(ids))
	for _, id := range ids {
		files, err := messageFiles(filepath.Join(root, id))
		if err != nil || len(files) == 0 {
			continue
		}
		title, err := readChatTitle(files[0])
		if err != nil {
			title = ""
		}
		chats = append(chats, Chat{ID: id, Title: title})
	}
	return chats, nil
}

// ListChats enumerates the chat ids under root, one per export-unit
// directory that contains at least one message file.
func ListChats(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read export root: %w", err)
	}

	var chats []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		files, err := messageFiles(filepath.Join(root, entry.Name()))
		if err != nil || len(files) == 0 {
			continue
		}
		chats = append(chats, entry.Name())
	}
	sort.Strings(chats)
	return chats, nil
}

// LoadChat loads all records of a single export unit. The lookup is exact:
// an unknown id yields ErrChatNotFound, never an empty result.
func LoadChat(root, chatID string) (Result, error) {
	if chatID == "" {
		return Result{}, errors.New("chat id is required")
	}

	dir := filepath.Join(root, chatID)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return Result{}, fmt.Errorf("%w: %s", ErrChatNotFound, chatID)
	}

	files, err := messageFiles(dir)
	if err != nil {
		return Result{}, err
	}
	if len(files) == 0 {
		return Result{}, fmt.Errorf("%w: %s", ErrChatNotFound, chatID)
	}

	return loadUnit(files, chatID), nil
}

// LoadAll loads every export unit under root into one flat record sequence.
// The merge logic is identical to single-chat mode; only the number of chat
// ids spanned differs.
func LoadAll(root string) (Result, error) {
	chats, err := ListChats(root)
	if err != nil {
		return Result{}, err
	}

	var result Result
	for _, chatID := range chats {
		unit, err := LoadChat(root, chatID)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Errorf("load %s: %w", chatID, err))
			continue
		}
		result.Records = append(result.Records, unit.Records...)
		result.Warnings = append(result.Warnings, unit.Warnings...)
	}
	return result, nil
}

func loadUnit(files []string, chatID string) Result {
	var result Result
	for _, path := range files {
		records, err := readMessageFile(path, chatID)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Errorf("parse %s: %w", path, err))
			continue
		}
		result.Records = append(result.Records, records...)
	}
	return result
}

// messageFiles returns the unit's message_*.json files ordered by their
// numeric suffix so that multi-file units load deterministically.
func messageFiles(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "message_*.json"))
	if err != nil {
		return nil, fmt.Errorf("glob message files: %w", err)
	}
	sort.Slice(matches, func(i, j int) bool {
		ni, nj := fileIndex(matches[i]), fileIndex(matches[j])
		if ni != nj {
			return ni < nj
		}
		return matches[i] < matches[j]
	})
	return matches, nil
}

func fileIndex(path string) int {
	name := strings.TrimSuffix(filepath.Base(path), ".json")
	idx := strings.LastIndex(name, "_")
	if idx < 0 {
		return 0
	}
	n, err := strconv.Atoi(name[idx+1:])
	if err != nil {
		return 0
	}
	return n
}
