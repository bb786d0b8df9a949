package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hostbridge/hostbridge"
	"github.com/hostbridge/hostbridge/config"
	"github.com/hostbridge/hostbridge/heap"
	"github.com/hostbridge/hostbridge/remote"
	"github.com/hostbridge/hostbridge/transport"
	"github.com/hostbridge/hostbridge/wire"
)

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Drive a script-side counter over an in-process loopback",
		RunE: func(cmd *cobra.Command, args []string) error {
			if term.IsTerminal(int(os.Stdout.Fd())) {
				return runInteractive()
			}
			return runScripted(cmd)
		},
	}
}

// demoSession wires both sides of a loopback bridge and hands back the
// host session with the script side already serving.
func demoSession() (*hostbridge.Session, func(), error) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	hostEnd, scriptEnd := transport.Pair()
	script := newScriptSide(scriptEnd, cfg)
	host := hostbridge.NewSession(hostEnd, cfg)

	go scriptEnd.Serve(script.HandleFrame)

	return host, hostEnd.Close, nil
}

// newCounter asks the script side for a fresh counter and wraps the
// returned handle.
func newCounter(host *hostbridge.Session, start uint32) (*remote.Object, error) {
	e := wire.NewExportEvaluate("Counter::new")
	e.PushU32(start)
	reply, err := host.Call(e)
	if err != nil {
		return nil, err
	}
	handle, err := reply.U32()
	if err != nil {
		return nil, err
	}
	return remote.NewObject(host.Dispatcher(), "Counter", heap.ID(handle)), nil
}

func runScripted(cmd *cobra.Command) error {
	host, closeBridge, err := demoSession()
	if err != nil {
		return err
	}
	defer closeBridge()

	c, err := newCounter(host, 10)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "counter handle: %d\n", c.Handle())

	for _, delta := range []uint32{5, 7} {
		reply, err := c.Invoke("increment", delta)
		if err != nil {
			return err
		}
		n, err := reply.U32()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "increment(%d) -> %d\n", delta, n)
	}

	reply, err := c.Get("value")
	if err != nil {
		return err
	}
	n, err := reply.U32()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "value -> %d\n", n)

	c.Release()
	host.Dispatcher().FlushReleases()
	fmt.Fprintf(cmd.OutOrStdout(), "transport exchanges: %d\n", host.Dispatcher().Exchanges())
	return nil
}
