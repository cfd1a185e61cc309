package main

import (
	"fmt"
	"hazard-server/internal/infrastructure/storage"
	"os"
	"strconv"
	"time"
)

func main() {
	if len(os.Args) < 3 {
		printHelp()
		return
	}

	// Load читает по абсолютному пути, каталог сервису не нужен
	svc := &storage.ReplayService{}
	session, err := svc.Load(os.Args[2])
	if err != nil {
		fmt.Printf("Invalid replay: %v\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "info":
		fmt.Printf("round:      %s\n", session.RoundID)
		fmt.Printf("seed:       %d\n", session.Seed)
		fmt.Printf("difficulty: %s\n", session.Difficulty)
		fmt.Printf("tick rate:  %d\n", session.TickRate)
		fmt.Printf("recorded:   %s\n", time.Unix(session.Timestamp, 0).Format(time.RFC3339))
		fmt.Printf("score:      %d\n", session.FinalScore)
		fmt.Printf("actions:    %d\n", len(session.Actions))
	case "actions":
		for _, a := range session.Actions {
			fmt.Printf("%6d  %-12s %s\n", a.Tick, a.Action, string(a.Payload))
		}
	case "at":
		if len(os.Args) < 4 {
			fmt.Println("Usage: replayinfo at <file> <tick>")
			return
		}
		tick, err := strconv.Atoi(os.Args[3])
		if err != nil {
			fmt.Printf("Invalid tick: %v\n", err)
			return
		}
		if session.TickRate <= 0 {
			fmt.Println("Replay has no tick rate")
			return
		}
		elapsed := time.Duration(tick) * time.Second / time.Duration(session.TickRate)
		fmt.Println(elapsed)
	default:
		printHelp()
	}
}

func printHelp() {
	fmt.Println(`Replay Utility - просмотр записей раундов (.hzrp)
Commands:
  info <file>            - заголовок записи: сид, сложность, итоговые очки
  actions <file>         - список действий с номерами тиков
  at <file> <tick>       - время раунда, соответствующее тику`)
}
