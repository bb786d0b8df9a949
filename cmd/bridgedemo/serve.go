package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hostbridge/hostbridge/config"
	"github.com/hostbridge/hostbridge/legacy"
	"github.com/hostbridge/hostbridge/transport"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the script-side counter over HTTP",
		Long: "Serve answers bridge frames over HTTP so an external host can\n" +
			"drive the demo counter. Binary frames ride the binary header;\n" +
			"legacy JSON documents ride theirs and reach the demo natives.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "localhost:8640", "listen address")
	return cmd
}

// logUI satisfies the legacy demo natives by logging instead of
// mutating a page.
type logUI struct {
	log *zap.Logger
}

func (u logUI) Alert(message string) {
	u.log.Info("alert", zap.String("message", message))
}

func (u logUI) SetText(target, text string) {
	u.log.Info("set text", zap.String("target", target), zap.String("text", text))
}

func (u logUI) AddEventListener(target, event string, callbackID uint64) {
	u.log.Info("listener registered",
		zap.String("target", target),
		zap.String("event", event),
		zap.Uint64("callback", callbackID))
}

func runServe(cmd *cobra.Command, addr string) error {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	// Served sessions never initiate calls, so the script side needs no
	// working outbound transport.
	script := newScriptSide(unreachableTransport{}, cfg)
	natives := legacy.NewDemoRegistry(log, logUI{log: log})

	binary := transport.NewHandler(script.HandleFrame,
		transport.WithHandlerHeader(cfg.BinaryHeader),
		transport.WithMaxFrameSize(cfg.MaxFrameSize))

	mux := http.NewServeMux()
	mux.HandleFunc("/"+cfg.Endpoint, func(w http.ResponseWriter, r *http.Request) {
		if encoded := r.Header.Get(cfg.LegacyHeader); encoded != "" {
			resp, err := natives.HandleHeader(encoded)
			if err != nil {
				log.Warn("legacy call failed", zap.Error(err))
				w.WriteHeader(http.StatusOK)
				return
			}
			fmt.Fprint(w, resp)
			return
		}
		binary.ServeHTTP(w, r)
	})

	log.Info("serving bridge", zap.String("addr", addr), zap.String("endpoint", "/"+cfg.Endpoint))
	return http.ListenAndServe(addr, mux)
}

// unreachableTransport rejects outbound calls; the served demo is
// answer-only.
type unreachableTransport struct{}

func (unreachableTransport) RoundTrip([]byte) ([]byte, error) {
	return nil, fmt.Errorf("session is serve-only, outbound calls unsupported")
}
