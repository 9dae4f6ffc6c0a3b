package constant

// ExportTemplate is the plain-text layout shared by every downloadable file format.
const ExportTemplate = "Title: {{ .Title }}\nURL: {{ .URL }}\n\nFull Transcription:\n\n{{ .Transcription }}"

// ClipboardTemplate is the layout copied to the clipboard for a completed entry.
const ClipboardTemplate = "Title: {{ .Title }}\nURL: {{ .URL }}\n\nTranscript:\n{{ .Transcription }}"

// RetrievalPrompt is the instruction sent with every video link. The single verb is the URL.
const RetrievalPrompt = `Find the exact video title and the complete, full transcription for this YouTube video: %s.
Use Google Search to locate the transcript if necessary. If the video is long, ensure you retrieve as much text as possible to provide a full transcription.
Return the response in JSON format.`
