// Package main runs the pagepilot tool host: a line-delimited JSON
// driver over stdin/stdout for the browser automation tool suite.
// Each request line is {"tool": "...", "arguments": {...}}; each
// response line is the uniform result envelope.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/embermark/pagepilot/pkg/browser"
	"github.com/embermark/pagepilot/pkg/config"
	"github.com/embermark/pagepilot/pkg/logging"
	"github.com/embermark/pagepilot/pkg/tools"
	toolsbrowser "github.com/embermark/pagepilot/pkg/tools/browser"
)

const version = "0.1.0"

// request is one inbound tool invocation.
type request struct {
	Tool      string          `json:"tool"`
	Arguments json.RawMessage `json:"arguments"`
}

func main() {
	configPath := flag.String("config", "", "path to config file (default ~/.pagepilot/config.yaml)")
	showVersion := flag.Bool("version", false, "print version and exit")
	listTools := flag.Bool("list-tools", false, "print the tool catalog and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("pagepilot %s\n", version)
		return
	}

	if err := run(*configPath, *listTools); err != nil {
		fmt.Fprintf(os.Stderr, "pagepilot: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, listTools bool) error {
	logger, err := logging.NewLogger("host")
	if err != nil {
		logger = logging.Nop()
	}
	defer logger.Close()

	cfg, err := config.LoadBrowser(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	manager := browser.NewManager(cfg, logger, nil)
	defer manager.Shutdown()

	executor := browser.NewExecutor(manager, manager.Artifacts(), float64(cfg.TypingDelayMS), logger)

	dispatcher := tools.NewDispatcher(logger)
	dispatcher.RegisterAll(toolsbrowser.NewToolSet(manager, executor, logger))

	if listTools {
		for _, name := range dispatcher.Names() {
			fmt.Println(name)
		}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		logger.Infof("signal received, shutting down")
		cancel()
	}()

	logger.Infof("pagepilot %s ready, %d tools registered", version, len(dispatcher.Names()))
	return serve(ctx, dispatcher, os.Stdin, os.Stdout, logger)
}

// serve processes one request per input line until EOF or cancellation.
// Requests run sequentially; a malformed line yields a failure envelope
// rather than terminating the loop.
func serve(ctx context.Context, dispatcher *tools.Dispatcher, in *os.File, out *os.File, logger *logging.Logger) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	encoder := json.NewEncoder(out)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req request
		var result *tools.Result
		if err := json.Unmarshal(line, &req); err != nil {
			result = tools.Errorf("invalid request: %v", err)
		} else if req.Tool == "" {
			result = tools.Errorf("request is missing a tool name")
		} else {
			logger.Debugf("dispatching %s", req.Tool)
			result = dispatcher.Dispatch(ctx, req.Tool, req.Arguments)
		}

		if err := encoder.Encode(result); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}
	return scanner.Err()
}
