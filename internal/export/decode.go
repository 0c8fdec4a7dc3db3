package export

import (
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/arahm071/Messenger-Analysis/internal/model"
)

// mediaKeys are raw-record fields that mark attachment-only payloads. Rows
// carrying any of them are purged during cleaning.
var mediaKeys = []string{"photos", "videos", "gifs", "sticker", "share", "audio_files", "files"}

type rawFile struct {
	Title    string            `json:"title"`
	Messages []json.RawMessage `json:"messages"`
}

type rawMessage struct {
	SenderName    string        `json:"sender_name"`
	TimestampMS   int64         `json:"timestamp_ms"`
	Content       string        `json:"content"`
	Reactions     []rawReaction `json:"reactions"`
	CallDuration  *int          `json:"call_duration"`
	CallInitiator string        `json:"call_initiator"`
	Missed        *bool         `json:"missed"`
}

type rawReaction struct {
	Reaction string `json:"reaction"`
	Actor    string `json:"actor"`
}

func readMessageFile(path, chatID string) ([]model.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read message file: %w", err)
	}

	var file rawFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal message file: %w", err)
	}

	records := make([]model.RawRecord, 0, len(file.Messages))
	for _, raw := range file.Messages {
		rec, err := decodeRecord(raw, chatID)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// readChatTitle extracts the display name from a message file. The title
// carries the same escaped-byte mojibake as message content.
func readChatTitle(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read message file: %w", err)
	}

	var file rawFile
	if err := json.Unmarshal(data, &file); err != nil {
		return "", fmt.Errorf("unmarshal message file: %w", err)
	}
	return repairMojibake(file.Title), nil
}

func decodeRecord(raw json.RawMessage, chatID string) (model.RawRecord, error) {
	var msg rawMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return model.RawRecord{}, fmt.Errorf("unmarshal record: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return model.RawRecord{}, fmt.Errorf("unmarshal record fields: %w", err)
	}

	rec := model.RawRecord{
		SenderName:  repairMojibake(msg.SenderName),
		TimestampMS: msg.TimestampMS,
		Content:     repairMojibake(msg.Content),
		ChatID:      chatID,
	}

	for _, reaction := range msg.Reactions {
		rec.Reactions = append(rec.Reactions, model.Reaction{
			Reaction: repairMojibake(reaction.Reaction),
			Actor:    repairMojibake(reaction.Actor),
		})
	}

	if msg.CallDuration != nil || msg.Missed != nil {
		call := &model.CallEvent{Initiator: repairMojibake(msg.CallInitiator)}
		if msg.CallDuration != nil {
			call.DurationSeconds = *msg.CallDuration
		}
		if call.Initiator == "" {
			// The export records calls under the caller's name.
			call.Initiator = rec.SenderName
		}
		if msg.Missed != nil && *msg.Missed {
			call.DurationSeconds = 0
		}
		rec.Call = call
	}

	for _, key := range mediaKeys {
		if _, ok := fields[key]; ok {
			rec.HasMedia = true
			break
		}
	}

	return rec, nil
}

// repairMojibake undoes the export's escaped-byte encoding: non-ASCII text is
// stored as UTF-8 bytes that were each widened to a latin-1 code point.
// Narrowing the runes back to bytes and reinterpreting them as UTF-8 restores
// the intended characters. Strings that are already plain ASCII, contain
// runes outside latin-1, or do not narrow to valid UTF-8 pass through
// unchanged.
func repairMojibake(s string) string {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return s
	}

	narrowed, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		return s
	}
	if !utf8.ValidString(narrowed) {
		return s
	}
	return narrowed
}
