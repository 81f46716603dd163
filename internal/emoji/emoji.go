package emoji

// emojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"error":    {"❌", "[ERR]"},
	"warning":  {"⚠️", "[WRN]"},
	"info":     {"ℹ️", "[INF]"},
	"success":  {"✅", "[OK]"},
	"video":    {"🎬", "[VID]"},
	"upload":   {"📤", "[UP]"},
	"live":     {"🔴", "[LIVE]"},
	"exercise": {"🏋️", "[EX]"},
	"file":     {"📁", "[FILE]"},
	"risk":     {"🩺", "[RISK]"},
	"link":     {"🔗", "[URL]"},
	"message":  {"💬", "[MSG]"},
	"watch":    {"👀", "[WATCH]"},
	"theme":    {"🎨", "[THEME]"},
	"help":     {"❓", "[?]"},
	"door":     {"🚪", "[EXIT]"},
	"rocket":   {"🚀", "[JIM]"},
}

var emojiDisabled bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled = disabled
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled {
			return mapping[1]
		}
		return mapping[0]
	}
	return "[?]"
}
