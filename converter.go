package nport

// Converter converts filing HTML to Markdown.
type Converter interface {
	// Convert transforms filing HTML into Markdown suitable for reading
	// in a terminal or plain-text context.
	Convert(html string) (string, error)
}
