package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Video Icon = iota + 1
	Link
	Pending
	Processing
	Completed
	Failed
	Source
	Copy
	Download
	Clear
	Question
	Check
	Cross
)

var icons = map[Icon]*iconDef{
	Video: {
		emoji:   "🎬",
		nerd:    "",
		plain:   "Video",
		kaomoji: "(▶‿▶)",
		squares: "▣",
	},
	Link: {
		emoji:   "🔗",
		nerd:    "",
		plain:   "URL",
		kaomoji: "(¬‿¬)",
		squares: "▤",
	},
	Pending: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "...",
		kaomoji: "(・_・;)",
		squares: "□",
	},
	Processing: {
		emoji:   "⚙️",
		nerd:    "",
		plain:   "~",
		kaomoji: "(⊙_⊙)",
		squares: "◧",
	},
	Completed: {
		emoji:   "✅",
		nerd:    "",
		plain:   "OK",
		kaomoji: "(^▽^)",
		squares: "■",
	},
	Failed: {
		emoji:   "❌",
		nerd:    "",
		plain:   "ERR",
		kaomoji: "(╥﹏╥)",
		squares: "▨",
	},
	Source: {
		emoji:   "📚",
		nerd:    "",
		plain:   "Src",
		kaomoji: "φ(._.)",
		squares: "▦",
	},
	Copy: {
		emoji:   "📋",
		nerd:    "",
		plain:   "Copy",
		kaomoji: "(っ˘ω˘)っ",
		squares: "▥",
	},
	Download: {
		emoji:   "💾",
		nerd:    "",
		plain:   "Save",
		kaomoji: "ヽ(•‿•)ノ",
		squares: "▼",
	},
	Clear: {
		emoji:   "🧹",
		nerd:    "",
		plain:   "Clear",
		kaomoji: "(ノ°□°)ノ",
		squares: "▢",
	},
	Question: {
		emoji:   "❓",
		nerd:    "",
		plain:   "?",
		kaomoji: "(?_?)",
		squares: "◫",
	},
	Check: {
		emoji:   "✔️",
		nerd:    "",
		plain:   "✓",
		kaomoji: "(o^▽^o)",
		squares: "▪",
	},
	Cross: {
		emoji:   "✖️",
		nerd:    "",
		plain:   "x",
		kaomoji: "(×_×)",
		squares: "▫",
	},
}
