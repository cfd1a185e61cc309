package domain

import "time"

// PlayerEntry - запись таблицы рекордов. Создается один раз в конце раунда
// и больше не меняется; одна и та же запись может лежать сразу в таблице
// сложности и в общей таблице.
type PlayerEntry struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Score      int        `json:"score"`
	Difficulty Difficulty `json:"difficulty"`
	RecordedAt time.Time  `json:"recordedAt"`
}
