package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/frondster/frondster/internal/config"
	"github.com/frondster/frondster/internal/server"
	"k8s.io/klog/v2"
)

// CLI flags override the values of the configuration file.
type CLI struct {
	Config      string         `kong:"help='TOML configuration file'"`
	Addr        *string        `kong:"help='Address to listen on (default: auto-port on localhost)'"`
	WebDir      *string        `kong:"name='web-dir',help='Directory served under /web/ (app.wasm, css)'"`
	IdleTimeout *time.Duration `kong:"name='idle-timeout',help='Drop games without clients after this long'"`
	Verbosity   int            `kong:"short='v',default='0',help='klog verbosity level'"`
}

func (c *CLI) config() (config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return cfg, err
	}
	if c.Addr != nil {
		cfg.Addr = *c.Addr
	}
	if c.WebDir != nil {
		cfg.WebDir = *c.WebDir
	}
	if c.IdleTimeout != nil {
		cfg.IdleTimeout = config.Duration{Duration: *c.IdleTimeout}
	}
	return cfg, cfg.Validate()
}

func (c *CLI) Run() error {
	fs := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fs)
	_ = fs.Set("v", strconv.Itoa(c.Verbosity))
	defer klog.Flush()

	cfg, err := c.config()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	started := make(chan *server.ServerState, 1)
	go func() {
		state := <-started
		fmt.Printf("Frondster server listening on http://%s\n", state.Address)
	}()
	return server.Run(ctx, cfg, started)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("frondster"),
		kong.Description("Serves the Frondster Set puzzle"),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
