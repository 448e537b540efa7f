package main

import (
	"fmt"
	"os"

	"github.com/akamensky/argparse"
	"github.com/coreos/go-systemd/daemon"
	"github.com/cyclopcam/logs"

	"github.com/posecare/posecare/server"
	"github.com/posecare/posecare/server/session"
)

func main() {
	parser := argparse.NewParser("posecare", "Rehabilitation exercise rep counting service")
	port := parser.String("p", "port", &argparse.Options{Help: "Port to listen on", Default: ":8080"})
	history := parser.Int("", "history", &argparse.Options{Help: "Number of recent frame results kept per session", Default: 256})
	kpConf := parser.Float("", "minconf", &argparse.Options{Help: "Keypoint confidence floor", Default: 0.35})
	dwell := parser.Int("", "dwell", &argparse.Options{Help: "Frames a phase transition must hold", Default: 3})
	err := parser.Parse(os.Args)
	if err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	logger, err := logs.NewLog()
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	cfg := session.DefaultConfig()
	cfg.HistorySize = *history
	cfg.Stabilizer.MinConfidence = float32(*kpConf)
	cfg.Exercise.MinDwell = *dwell

	srv := server.NewServer(logger, cfg)

	daemon.SdNotify(false, daemon.SdNotifyReady)

	if err := srv.SetupHTTP(*port); err != nil {
		logger.Errorf("HTTP server failed: %v", err)
		os.Exit(1)
	}
}
