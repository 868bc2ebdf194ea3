package ui

// infoMessage is the text behind the "?" key on each screen.
type infoMessage struct {
	Title   string
	Message string
}

var infoMessages = map[screen]infoMessage{
	screenPortals: {
		Title:   "Welcome to newsdeck",
		Message: "newsdeck is made for catching up on the go. Swipe through the news and be up to date in five minutes.",
	},
	screenFeed: {
		Title:   "How does the news view work?",
		Message: "Drag left or right, or use the arrow keys, to move between stories. Press enter to read the whole article.",
	},
	screenArticle: {
		Title:   "Read the full story",
		Message: "The whole article is shown here. Press esc to go back to the news view.",
	},
}
