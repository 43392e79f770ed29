package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"golang.org/x/net/websocket"

	"team-lab/domain/event"
	"team-lab/gateway"
	"team-lab/projection"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const timelineDepth = 200

// Config defines the client-side environment variables.
type Config struct {
	GatewayAddr string `env:"GATEWAY_ADDR,default=localhost:8080"`
	TeamID      int64  `env:"TEAM_ID,default=1"`
	UserToken   string `env:"USER_TOKEN,required=true"`
	LogLevel    string `env:"LOG_LEVEL,required=true"`
	Colours     bool   `env:"CLIENT_COLOURS,default=true"`
}

func main() {
	// The main function manages the OS exit code based on run()'s return.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v", err)
	}
	os.Exit(code)
}

// run handles the websocket client lifecycle, configuration loading, and the
// event feed loop. This pattern ensures clean resource management and error
// propagation.
func run() (int, error) {
	// 1. Load configuration from environment variables.
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Setup context to handle termination signals (Ctrl+C).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Establish the socket connection to the gateway.
	origin := fmt.Sprintf("http://%s", config.GatewayAddr)
	url := fmt.Sprintf("ws://%s/ws?token=%s", config.GatewayAddr, config.UserToken)
	conn, err := websocket.Dial(url, "", origin)
	if err != nil {
		return exitRuntime, fmt.Errorf("could not connect to gateway at %s: %w", config.GatewayAddr, err)
	}
	defer func() {
		log.Info("Closing connection...")
		_ = conn.Close()
	}()

	// Close the socket when the user interrupts, which unblocks the
	// blocking Decode below.
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	// 4. Join the team room.
	join, err := json.Marshal(map[string]any{"teamId": config.TeamID})
	if err != nil {
		return exitRuntime, err
	}
	if err := json.NewEncoder(conn).Encode(gateway.Frame{Event: event.JoinTeam, Data: join}); err != nil {
		return exitRuntime, fmt.Errorf("failed to join team %d: %w", config.TeamID, err)
	}

	log.Info(fmt.Sprintf(">>> Connected to %s! Listening team %d (Ctrl+C to quit)...",
		config.GatewayAddr, config.TeamID))

	// 5. Event reception loop.
	// This loop runs until the context is canceled or the gateway closes
	// the connection.
	timeline := projection.NewTimeline(config.TeamID, timelineDepth)
	decoder := json.NewDecoder(conn)
	for {
		var frame gateway.Frame
		if err := decoder.Decode(&frame); err != nil {
			// Normal exit if the user triggered a shutdown.
			if ctx.Err() != nil || err == io.EOF {
				log.Info("Stopping client...")
				return exitOK, nil
			}
			return exitRuntime, fmt.Errorf("socket error: %w", err)
		}
		render(config, timeline, frame)
	}
}

// render prints one frame, folding activity events through the local
// timeline so duplicates stay silent.
func render(config Config, timeline *projection.Timeline, frame gateway.Frame) {
	stamp := time.Now().Format(time.TimeOnly)

	switch frame.Event {
	case event.Error:
		var payload event.ErrorPayload
		_ = json.Unmarshal(frame.Data, &payload)
		printLine(config, color.FgRed, fmt.Sprintf("[%s] ERROR %s: %s", stamp, payload.Code, payload.Message))
	case event.JoinedTeam, event.LeftTeam:
		printLine(config, color.FgCyan, fmt.Sprintf("[%s] %s", stamp, frame.Event))
	case event.OnlineUsers:
		var payload event.OnlineUsersPayload
		_ = json.Unmarshal(frame.Data, &payload)
		printLine(config, color.FgCyan, fmt.Sprintf("[%s] %d online", stamp, payload.TotalCount))
	default:
		entry, ok := timeline.Consume(frame.Event, frame.Data)
		if !ok {
			return
		}
		printLine(config, color.FgGreen, fmt.Sprintf("[%s] %s", stamp, entry.Summary))
	}
}

func printLine(config Config, fg color.Color, line string) {
	if config.Colours {
		fg.Println(line)
		return
	}
	fmt.Println(line)
}
