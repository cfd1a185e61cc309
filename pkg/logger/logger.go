package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего сервера.
var Log *logrus.Logger

// Init инициализирует глобальный логгер из переменных окружения.
// Должна быть вызвана один раз при старте (main.go, TestMain).
func Init() {
	Configure(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), os.Stdout)
}

// Configure пересобирает логгер с явными параметрами.
// Пустой level означает "info", формат "json" включает JSONFormatter.
func Configure(level, format string, out io.Writer) {
	l := logrus.New()

	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)

	// "json" - для продакшена и сбора логов, "text" - для разработки.
	if strings.ToLower(format) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	l.SetOutput(out)
	Log = l
}

// Component возвращает entry с полем component, так логи разных подсистем
// легко фильтровать.
func Component(name string) *logrus.Entry {
	if Log == nil {
		Init()
	}
	return Log.WithField("component", name)
}
