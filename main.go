package main

import (
	"flag"
	"log"

	"InkBoard/internal/board"
	"InkBoard/internal/net"
	"InkBoard/internal/state"
	"InkBoard/internal/ui"
)

const watchPort = 8889

func main() {
	width := flag.Int("width", board.DefaultWidth, "surface width in pixels")
	height := flag.Int("height", board.DefaultHeight, "surface height in pixels")
	share := flag.Bool("share", false, "serve a websocket watcher endpoint and advertise it via mDNS")
	flag.Parse()

	engine := board.New(board.Config{Width: *width, Height: *height})

	if *share {
		hub := net.NewHub()
		engine.OnCommit = hub.BroadcastPath
		engine.OnClear = hub.BroadcastClear
		engine.OnToolDown = func(p state.Point) { hub.BroadcastPointer("down", &p) }
		engine.OnToolMove = func(p state.Point) { hub.BroadcastPointer("move", &p) }
		engine.OnToolUp = func() { hub.BroadcastPointer("up", nil) }

		go func() {
			if err := hub.Listen(watchPort); err != nil {
				log.Printf("Watcher endpoint stopped: %v", err)
			}
		}()

		if server, err := net.Advertise(watchPort); err != nil {
			log.Printf("mDNS advertise failed: %v", err)
		} else {
			defer server.Shutdown()
		}

		if ip, err := net.OutgoingIP(); err == nil {
			log.Printf("Watch this board at ws://%s:%d/watch", ip, watchPort)
		}
	}

	ui.RunApp(engine)
}
