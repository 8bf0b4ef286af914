package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
)

const settingsFile = "settings.json"

type Settings struct {
	Host          string `json:"host"`
	Fullscreen    bool   `json:"fullscreen"`
	WindowWidth   int    `json:"windowWidth"`
	WindowHeight  int    `json:"windowHeight"`
	LastUsername  string `json:"lastUsername"`
	DiscordAppID  string `json:"discordAppID"`
	ErrorDialogs  bool   `json:"errorDialogs"`
	Notifications bool   `json:"notifications"`
	PacketDumpLen int    `json:"packetDumpLen"`
}

var gsdef = Settings{
	Host:          "127.0.0.1:4000",
	WindowWidth:   1280,
	WindowHeight:  720,
	ErrorDialogs:  true,
	Notifications: true,
	PacketDumpLen: 64,
}

var (
	gs            = gsdef
	settingsDirty bool
)

func loadSettings() bool {
	path := filepath.Join(baseDir, settingsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	s := gsdef
	if err := json.Unmarshal(data, &s); err != nil {
		log.Printf("load settings: %v", err)
		return false
	}
	if s.WindowWidth <= 0 || s.WindowHeight <= 0 {
		s.WindowWidth, s.WindowHeight = gsdef.WindowWidth, gsdef.WindowHeight
	}
	if s.Host == "" {
		s.Host = gsdef.Host
	}
	gs = s
	return true
}

func applySettings() {
	debugPacketDumpLen = gs.PacketDumpLen
	ebiten.SetWindowSize(gs.WindowWidth, gs.WindowHeight)
	ebiten.SetFullscreen(gs.Fullscreen)
}

func saveSettings() {
	data, err := json.MarshalIndent(gs, "", "  ")
	if err != nil {
		log.Printf("save settings: %v", err)
		return
	}
	path := filepath.Join(baseDir, settingsFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("save settings: %v", err)
	}
}
