package tui

import "github.com/gerunddev/scrapfolio/internal/styles"

var (
	titleStyle     = styles.TitleStyle
	labelStyle     = styles.LabelStyle
	valueStyle     = styles.ValueStyle
	helpStyle      = styles.HelpStyle
	successStyle   = styles.SuccessStyle
	errorStyle     = styles.ErrorStyle
	highlightStyle = styles.HighlightStyle
	tableStyle     = styles.TableStyle
)
