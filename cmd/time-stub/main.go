package main

import (
	"context"
	"os/signal"
	"syscall"

	timestub "github.com/AlexZav1327/word-of-the-day/internal/time-stub"
	"github.com/sirupsen/logrus"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	logger := logrus.StandardLogger()
	clock := timestub.NewClock(nil, logger)
	server := timestub.New("", 8090, clock, logger)

	err := server.Run(ctx)
	if err != nil {
		logger.Panicf("server.Run: %s", err)
	}
}
