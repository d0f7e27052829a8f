package tui

// renderFooter renders the key binding help footer at full terminal width.
// When app.showHelp is true, shows all key bindings; otherwise a pending
// toast or a brief hint.
func renderFooter(app *App) string {
	width, _ := app.size()
	if app.showHelp {
		return StyleDim.Width(width).Render(helpText)
	}
	if app.toast != "" {
		return StyleToast.Render(app.toast)
	}
	return StyleDim.Width(width).Render("? for help")
}
