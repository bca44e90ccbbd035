package ui

const (
	labUniversity = "국립한밭대학교"
	labName       = "무선통신소프트웨어연구실"
	labAddress    = "대전광역시 유성구 동서대로 125(덕명동) 한밭대학교 유성캠퍼스 N5동 503호"
	labContact    = "CONTACT@WISOFT.IO"
)

// renderFooter renders the lab details and the short key help.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{
		bg.Render(labUniversity, styles.Text.Bold(true)),
		bg.Render(labName, styles.Text),
	}
	if m.width >= LayoutWideWidth {
		parts = append(parts, bg.Render(labAddress, styles.MutedText))
	}
	parts = append(parts, bg.Render(labContact, styles.AccentText))

	info := styles.Footer.Width(m.width).Render(bg.Join(parts, " · "))
	keys := styles.Footer.Width(m.width).Render(m.help.ShortHelpView(m.keys.ShortHelp()))
	return info + "\n" + keys
}
