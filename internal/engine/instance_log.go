package engine

import (
	"hazard-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// AddLog пишет результат команды хоста в лог раунда
func (i *Instance) AddLog(text, logType string) {
	entry := logger.Log.WithFields(logrus.Fields{
		"round_id":  i.ID,
		"component": "round_log",
		"log_type":  logType,
		"tick":      i.CurrentTick,
	})
	if logType == "ERROR" {
		entry.Warn(text)
		return
	}
	entry.Info(text)
}
