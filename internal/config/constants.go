package config

import "time"

const (
	// Backend request timeout
	RequestTimeout = 90 * time.Second

	// es-ES formatting for default chat titles
	TitleDateFormat = "02/01/2006"
	TitleTimeFormat = "15:04"

	// Prompt length limit (mirrors the backend's contenido constraint)
	MaxPromptLen = 8000

	// Report download filename pattern
	ReportFilePattern = "conversacion_%d.pdf"
)
