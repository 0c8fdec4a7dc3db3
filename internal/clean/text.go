package clean

import (
	"strings"
	"unicode"

	"github.com/forPelevin/gomoji"
)

// stopWords is the fixed exclusion set for word rankings: pronouns, articles,
// auxiliaries and the chat shorthand that would otherwise dominate every list.
var stopWords = buildStopWords(
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you", "your", "yours",
	"yourself", "yourselves", "he", "him", "his", "himself", "she", "her", "hers", "herself",
	"it", "its", "itself", "they", "them", "their", "theirs", "themselves", "what", "which",
	"who", "whom", "this", "that", "these", "those", "am", "is", "are", "was", "were", "be",
	"been", "being", "have", "has", "had", "having", "do", "does", "did", "doing", "a", "an",
	"the", "and", "but", "if", "or", "because", "as", "until", "while", "of", "at", "by", "for",
	"with", "about", "against", "between", "into", "through", "during", "before", "after",
	"above", "below", "to", "from", "up", "down", "in", "out", "on", "off", "over", "under",
	"again", "further", "then", "once", "here", "there", "when", "where", "why", "how", "all",
	"any", "both", "each", "few", "more", "most", "other", "some", "such", "no", "nor", "not",
	"only", "own", "same", "so", "than", "too", "very", "s", "t", "can", "will", "just", "don",
	"should", "now", "d", "ll", "m", "o", "re", "ve", "y", "ain", "aren", "couldn", "didn",
	"doesn", "hadn", "hasn", "haven", "isn", "ma", "mightn", "mustn", "needn", "shan", "shouldn",
	"wasn", "weren", "won", "wouldn", "ur", "u", "r", "c", "k", "b", "n", "ppl", "btw", "cuz",
	"bc", "dm", "kk", "wat", "ok", "yeah", "im", "like",
)

func buildStopWords(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, word := range words {
		set[word] = true
	}
	return set
}

// IsStopWord reports whether word belongs to the fixed stop-word set.
func IsStopWord(word string) bool {
	return stopWords[strings.ToLower(word)]
}

// Words tokenizes message content for word counting: emojis are stripped so
// they are never double-counted, URL-bearing messages contribute no words,
// punctuation is removed (apostrophes survive), and the remainder is split on
// whitespace.
func Words(content string) []string {
	if content == "" {
		return nil
	}
	if strings.Contains(content, "http") {
		return nil
	}

	text := gomoji.RemoveEmojis(content)

	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' {
			builder.WriteRune(r)
		} else {
			builder.WriteRune(' ')
		}
	}

	fields := strings.Fields(builder.String())
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Emojis returns every emoji occurrence in content, in order. Multi-codepoint
// sequences (skin tones, flags) come back as a single element.
func Emojis(content string) []string {
	found := gomoji.CollectAll(content)
	if len(found) == 0 {
		return nil
	}
	out := make([]string, 0, len(found))
	for _, e := range found {
		out = append(out, e.Character)
	}
	return out
}

// TitleWord capitalizes the first rune and lowercases the rest, the casing
// used for word rankings.
func TitleWord(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}
