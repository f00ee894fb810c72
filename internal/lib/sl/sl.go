// Package sl содержит помощники для структурированного логирования через slog.
package sl

import "log/slog"

// Err возвращает атрибут "error" с текстом ошибки. Для nil пишет пустую строку,
// чтобы логирование не падало на ветках, где ошибка необязательна.
//
//	log.Error("failed to list courses", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}
