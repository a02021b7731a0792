package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/oantby/homebridge-api/internal/config"
	"github.com/oantby/homebridge-api/internal/controller"
	"github.com/oantby/homebridge-api/internal/discovery"
	"github.com/oantby/homebridge-api/internal/homebridge"
	"github.com/oantby/homebridge-api/internal/hub"
	"github.com/oantby/homebridge-api/internal/models"
	"github.com/oantby/homebridge-api/internal/render"
	"github.com/oantby/homebridge-api/internal/repos"
	"github.com/oantby/homebridge-api/internal/shell"
	"github.com/oantby/homebridge-api/internal/writer"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const usage = `usage: homie [flags] <command> [args]

commands:
  list                          list accessories
  show <name>                   describe an accessory
  set <name> <attribute> <val>  write an attribute
  on <name> / off <name>        switch an accessory
  alloff                        switch everything off
  dump [--yaml]                 print every accessory as JSON (or YAML)
  discover                      look for hubs on the local network
  shell                         interactive prompt
  watch                         refresh periodically and report unreachable accessories

flags:
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("homie", pflag.ContinueOnError)
	config.Flags(fs)
	asYAML := fs.Bool("yaml", false, "dump as YAML")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("no command given")
	}
	cmd, cmdArgs := fs.Arg(0), fs.Args()[1:]

	cfg, err := config.ReadConfig(viper.New(), fs)
	if err != nil {
		return err
	}

	logger := newLogger(cfg)

	// discovery doesn't need a hub connection
	if cmd == "discover" {
		return discover(logger, cfg)
	}

	if cfg.Auth == "" {
		logger.Warn("no auth token configured, the hub will probably refuse requests")
	}

	// create/wire up services
	api := homebridge.NewHomebridgeAPIService(logger, homebridge.BaseURL(cfg.Host, cfg.Port), cfg.Auth, cfg.RequestTimeoutDuration())
	cw := writer.NewCharacteristicWriter(logger, api, cfg.WriteAttempts)
	hc := hub.NewHubClient(logger, api, cw, cfg.CacheTTLDuration())

	db, err := repos.OpenDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()
	repo, err := repos.NewAccessoryRepo(logger, db)
	if err != nil {
		return err
	}

	ctrl := controller.NewController(logger, hc, repo, cfg.ThrottleInterval())

	switch cmd {
	case "list":
		accessories, err := ctrl.List()
		if err != nil {
			return err
		}
		fmt.Println(render.Accessories(accessories))

	case "show":
		if len(cmdArgs) == 0 {
			return errors.New("usage: homie show <name>")
		}
		desc, err := ctrl.Describe(strings.Join(cmdArgs, " "))
		if err != nil {
			return err
		}
		fmt.Println(desc)

	case "set":
		if len(cmdArgs) < 3 {
			return errors.New("usage: homie set <name> <attribute> <value>")
		}
		name := strings.Join(cmdArgs[:len(cmdArgs)-2], " ")
		attribute, raw := cmdArgs[len(cmdArgs)-2], cmdArgs[len(cmdArgs)-1]
		outcome, err := ctrl.Set(name, attribute, raw)
		return report(name, attribute, outcome, err)

	case "on", "off":
		if len(cmdArgs) == 0 {
			return fmt.Errorf("usage: homie %s <name>", cmd)
		}
		name := strings.Join(cmdArgs, " ")
		fn := ctrl.TurnOn
		if cmd == "off" {
			fn = ctrl.TurnOff
		}
		outcome, err := fn(name)
		return report(name, "on", outcome, err)

	case "alloff":
		return ctrl.TurnAllOff()

	case "dump":
		return dump(ctrl, *asYAML, os.Stdout)

	case "shell":
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
		defer stop()
		return shell.NewShell(logger, ctrl, os.Stdout).Run(ctx)

	case "watch":
		watch(logger, ctrl, cfg.CacheTTLDuration())

	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}

	return nil
}

func newLogger(cfg *config.Config) *log.Logger {
	var out io.Writer = os.Stderr
	if cfg.LogFile != "" {
		out = &lumberjack.Logger{
			Filename: cfg.LogFile,
			MaxAge:   3,
		}
	}

	return log.NewWithOptions(out, log.Options{
		Level:           logLevel(cfg.LogLevel),
		ReportTimestamp: true,
		TimeFormat:      "2006/01/02 15:04:05",
	})
}

func logLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func report(name string, attribute string, outcome models.WriteOutcome, err error) error {
	if err != nil {
		return err
	}
	fmt.Println(render.Outcome(name, attribute, outcome))
	if outcome == models.WriteRejected || outcome == models.WriteExhausted {
		return fmt.Errorf("write %s", outcome)
	}
	return nil
}

func dump(ctrl *controller.Controller, asYAML bool, out io.Writer) error {
	summaries, err := ctrl.Snapshot()
	if err != nil {
		return err
	}

	if asYAML {
		s, err := render.YAML(summaries)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, s)
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{"accessories": summaries})
}

func discover(logger *log.Logger, cfg *config.Config) error {
	hubs, err := discovery.NewBrowser(logger).Discover(context.Background(), cfg.DiscoveryTimeoutDuration())
	if err != nil {
		return err
	}
	if len(hubs) == 0 {
		fmt.Println("no hubs found")
		return nil
	}
	for _, h := range hubs {
		fmt.Printf("%s\t%s:%d\n", h.Name, h.Address(), h.Port)
	}
	return nil
}

// watch re-syncs every interval until interrupted, logging accessories whose
// last write failed.
func watch(logger *log.Logger, ctrl *controller.Controller, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	logger.Info("watching hub", "interval", interval)

	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sync := func() {
		accessories, err := ctrl.Sync()
		if err != nil {
			logger.Error("refresh failed", "err", err)
			return
		}
		logger.Info("refreshed", "accessories", len(accessories))

		unreachable, err := ctrl.Unreachable()
		if err != nil {
			logger.Error("reading reachability", "err", err)
			return
		}
		for _, s := range unreachable {
			logger.Warn("unreachable", "aid", s.Aid, "name", s.Name, "attribute", s.LastAttribute)
		}
	}

	sync()
	for {
		select {
		case <-ticker.C:
			sync()
		case <-quitChannel:
			logger.Info("homie is closing")
			return
		}
	}
}
