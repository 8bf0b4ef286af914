package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"treasureisland/netsync"
	"treasureisland/pcapreplay"
	"treasureisland/proto"
	"treasureisland/screen"
	"treasureisland/world"
)

var (
	host      string
	baseDir   string
	username  string
	debugMode bool

	pcapPath     string
	pcapPort     int
	pcapRealtime bool
)

var (
	store   *world.Store
	outbox  chan proto.Message
	machine *screen.Machine
)

func main() {
	flag.StringVar(&host, "host", "", "server address (host:port), overrides settings.json")
	flag.BoolVar(&debugMode, "debug", false, "verbose/debug logging")
	flag.StringVar(&username, "name", "", "prefill the username prompt")
	flag.StringVar(&pcapPath, "pcap", "", "replay server traffic from a .pcap/.pcapng file")
	flag.IntVar(&pcapPort, "pcap-port", pcapreplay.DefaultServerPort, "server TCP port inside the capture")
	flag.BoolVar(&pcapRealtime, "realtime", false, "replay the capture at its recorded pace")
	flag.Parse()
	if pcapPort <= 0 || pcapPort > 65535 {
		log.Fatalf("invalid -pcap-port %d", pcapPort)
	}

	baseDir = os.Getenv("PWD")
	if baseDir == "" {
		var err error
		if baseDir, err = os.Getwd(); err != nil {
			log.Fatalf("get working directory: %v", err)
		}
	}

	loadSettings()
	if host == "" {
		host = gs.Host
	}
	setupLogging(debugMode)
	applySettings()
	defer func() {
		if r := recover(); r != nil {
			logError("panic: %v\n%s", r, debug.Stack())
			panic(r)
		}
	}()

	store = world.NewStore()
	outbox = make(chan proto.Message, netsync.OutboxSize)
	machine = screen.New(store, outbox)
	if username != "" {
		machine.Prefill(username)
	} else {
		machine.Prefill(gs.LastUsername)
	}
	modeChanges := store.SubscribeMode()
	initClipboard()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if gs.DiscordAppID != "" {
		initDiscordRPC(ctx, gs.DiscordAppID)
	}
	go watchMode(ctx, store, modeChanges, onModeChange)

	go func() {
		if err := runNetwork(ctx); err != nil {
			handleDisconnect(err)
		}
	}()

	runGame(ctx)
	cancel()
	saveSettings()

	if err := sessionFailure(); err != nil {
		os.Exit(1)
	}
}

// watchMode serialises the reactions to screen changes on one goroutine so
// that slow side effects never hold up the receiver or the game loop. Each
// wakeup acts on the store's current mode, which may be newer than the event.
func watchMode(ctx context.Context, st *world.Store, changes <-chan world.ModeChange, apply func(prev, next world.Mode)) {
	last := st.Mode()
	apply(last, last)
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			cur := st.Mode()
			if cur == last {
				continue
			}
			apply(last, cur)
			last = cur
		}
	}
}

func onModeChange(prev, next world.Mode) {
	if prev != next {
		logDebug("screen %v -> %v", prev, next)
	}
	updateDiscordMode(next)
	if next == world.ModeGame && prev != next {
		notifyDesktop("Treasure Island", "The game has started.")
	}
}
