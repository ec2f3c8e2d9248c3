package events

const (
	// TopicEditorMessage carries raw payloads posted by the editor web view.
	TopicEditorMessage = "editor-message"
	// TopicDeepLinkNewURL carries one URL per event, as delivered by the OS.
	TopicDeepLinkNewURL = "deep-link://new-url"
)
