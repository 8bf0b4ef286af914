package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sqweek/dialog"

	"treasureisland/netsync"
	"treasureisland/pcapreplay"
)

var (
	fatalErr     error
	fatalErrMu   sync.Mutex
	fatalErrOnce sync.Once
)

// sessionFailure returns the error that ended the session, if any.
func sessionFailure() error {
	fatalErrMu.Lock()
	defer fatalErrMu.Unlock()
	return fatalErr
}

// handleDisconnect reports a session failure. Once stored, the error stops
// the game loop, so the dialog is shown first while the window is still up.
func handleDisconnect(err error) {
	fatalErrOnce.Do(func() {
		logError("disconnected: %v", err)
		addMessage("Disconnected from server.")
		if gs.ErrorDialogs {
			dialog.Message("%v", err).Title("Treasure Island").Error()
		}
		fatalErrMu.Lock()
		fatalErr = err
		fatalErrMu.Unlock()
	})
}

// runNetwork connects to the server, or opens the capture given with -pcap,
// and runs the session until it ends or ctx is canceled.
func runNetwork(ctx context.Context) error {
	var sess *netsync.Session
	if pcapPath != "" {
		f, err := os.Open(pcapPath)
		if err != nil {
			return fmt.Errorf("open capture: %w", err)
		}
		defer f.Close()
		in := pcapreplay.Stream(ctx, f, pcapreplay.Options{
			ServerPort: uint16(pcapPort),
			Realtime:   pcapRealtime,
		})
		sess = netsync.NewReplaySession(in, io.Discard, store, outbox)
		addMessage("Replaying " + pcapPath)
	} else {
		conn, err := netsync.Dial(ctx, host)
		if err != nil {
			return err
		}
		sess = netsync.NewSession(conn, store, outbox)
		logDebug("connected to %v", conn.RemoteAddr())
	}
	if debugMode {
		sess.SetDebug(logDebug, logDebugPacket)
	}

	err := sess.Run(ctx)
	logDebug("session: %v", sess.Stats)

	switch {
	case ctx.Err() != nil:
		return nil
	case pcapPath != "" && errors.Is(err, io.EOF):
		addMessage("Replay finished.")
		return nil
	}
	return err
}
