package main

import (
	"context"
	"sync/atomic"
	"time"

	client "github.com/hugolgst/rich-go/client"

	"treasureisland/world"
)

var (
	discordReady atomic.Bool
	discordStart time.Time
)

func initDiscordRPC(ctx context.Context, appID string) {
	if err := client.Login(appID); err != nil {
		logError("discord rpc login: %v", err)
		return
	}
	discordStart = time.Now()
	discordReady.Store(true)
	go func() {
		<-ctx.Done()
		discordReady.Store(false)
		client.Logout()
	}()
}

func discordDetails(m world.Mode) string {
	switch m {
	case world.ModeUsernamePrompt:
		return "Choosing a name"
	case world.ModeWaitingForPlayers:
		return "Waiting for players"
	case world.ModeGame:
		return "Hunting for treasure"
	}
	return m.String()
}

func updateDiscordMode(m world.Mode) {
	if !discordReady.Load() {
		return
	}
	if err := client.SetActivity(client.Activity{
		State:   "Treasure Island",
		Details: discordDetails(m),
		Timestamps: &client.Timestamps{
			Start: &discordStart,
		},
	}); err != nil {
		logWarn("discord rpc activity: %v", err)
	}
}
