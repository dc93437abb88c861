package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/cutout-dev/cutout"
	"github.com/cutout-dev/cutout/internal/api"
)

// listenAddr resolves the listen address: an explicit -addr flag wins, then
// the PORT environment variable, then the default.
func listenAddr(flagAddr, port string) string {
	if flagAddr != "" {
		return flagAddr
	}
	if port != "" {
		return ":" + port
	}
	return ":8080"
}

func main() {
	modelPath := flag.String("model", "models/rmbg.onnx", "path to the ONNX model")
	addrFlag := flag.String("addr", "", "listen address (default :$PORT, or :8080)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	engine, err := cutout.New(&cutout.Config{
		ModelPath:         *modelPath,
		IntraOpNumThreads: 2,
		InterOpNumThreads: 1,
		MemPattern:        true,
	})
	if err != nil {
		logger.Error("load model", "path", *modelPath, "err", err)
		os.Exit(1)
	}
	defer engine.Close()

	addr := listenAddr(*addrFlag, os.Getenv("PORT"))

	r := gin.Default()
	api.NewHandler(engine, logger).Register(r)

	logger.Info("listening", "addr", addr, "model", *modelPath)
	if err := r.Run(addr); err != nil {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
