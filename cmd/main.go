// Astra - remote input command server
// Lets a phone or browser drive the mouse, keyboard and media keys of this machine.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"astra/internal/activity"
	"astra/internal/api"
	"astra/internal/autostart"
	"astra/internal/config"
	"astra/internal/input"
	"astra/internal/keys"
	"astra/internal/launcher"
	"astra/internal/network"
	"astra/internal/osutils"
	"astra/internal/tray"
	"astra/internal/voice"
)

var (
	version    = "0.1.0"
	showVer    = flag.Bool("version", false, "Show version")
	configPath = flag.String("config", "", "Path to config file (default: per-user config dir)")
	port       = flag.Int("port", 0, "Listen port (overrides config)")
	bind       = flag.String("bind", "", "Bind address (overrides config)")
	backend    = flag.String("backend", "", "Input backend: auto, xdotool or noop (overrides config)")
	showTray   = flag.Bool("tray", false, "Show a system tray icon")
	noMDNS     = flag.Bool("no-mdns", false, "Do not advertise the server over mDNS")
	saveConfig = flag.Bool("save-config", false, "Write the effective configuration and exit")
	listKeys   = flag.Bool("keys", false, "List recognized key names")
	parseVoice = flag.String("parse", "", "Show how a voice command would be interpreted")
	scanLAN    = flag.Bool("scan", false, "Scan the local network for Astra servers")
	probeUDP   = flag.String("probe", "", "Check the UDP trackpad path to host:port")
	autoStart  = flag.String("autostart", "", "Start on login: on, off or status")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("astra version %s\n", version)
		return
	}

	if *listKeys {
		fmt.Println(strings.Join(keys.Names(), "\n"))
		return
	}

	if *parseVoice != "" {
		describeVoice(*parseVoice)
		return
	}

	if *probeUDP != "" {
		runProbe(*probeUDP)
		return
	}

	if *autoStart != "" {
		handleAutostart(*autoStart)
		return
	}

	// Initialize config
	cfgMgr, err := newConfigManager()
	if err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}
	if err := cfgMgr.Load(); err != nil {
		log.Printf("Warning: failed to load config: %v", err)
	}

	cfg := *cfgMgr.Get()
	applyFlagOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	cfgMgr.Set(&cfg)

	if *saveConfig {
		if err := cfgMgr.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}
		fmt.Printf("Configuration written to %s\n", cfgMgr.Path())
		return
	}

	if *scanLAN {
		runScan(cfg.Server.Port)
		return
	}

	// Default: run the server
	runServer(&cfg)
}

func newConfigManager() (*config.Manager, error) {
	if *configPath != "" {
		return config.NewManagerAt(*configPath), nil
	}
	return config.NewManager()
}

// applyFlagOverrides copies explicitly set flags over the loaded config
func applyFlagOverrides(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Server.Port = *port
		case "bind":
			cfg.Server.BindAddr = *bind
		case "backend":
			cfg.Input.Backend = *backend
		case "tray":
			cfg.General.ShowTray = *showTray
		case "no-mdns":
			cfg.Server.Advertise = !*noMDNS
		}
	})
}

func describeVoice(text string) {
	intent := voice.Parse(text)
	act, err := voice.ToAction(intent)
	if err != nil {
		fmt.Printf("%q: %v\n", text, err)
		os.Exit(1)
	}
	fmt.Printf("%q -> %s (%s)\n", text, act, voice.Describe(intent))
}

func runProbe(addr string) {
	client, err := network.DialUDP(addr)
	if err != nil {
		log.Fatalf("Failed to dial %s: %v", addr, err)
	}
	defer client.Close()

	if !client.Probe(3, 500*time.Millisecond) {
		fmt.Printf("UDP path to %s is blocked\n", addr)
		os.Exit(1)
	}
	fmt.Printf("UDP path to %s is open\n", addr)
}

func handleAutostart(mode string) {
	switch mode {
	case "on":
		// Started from login there is no terminal, so show the tray
		if err := autostart.Enable("-tray"); err != nil {
			log.Fatalf("Failed to enable auto-start: %v", err)
		}
		fmt.Println("Auto-start enabled")
	case "off":
		if err := autostart.Disable(); err != nil {
			log.Fatalf("Failed to disable auto-start: %v", err)
		}
		fmt.Println("Auto-start disabled")
	case "status":
		fmt.Printf("Auto-start enabled: %v\n", autostart.IsEnabled())
	default:
		log.Fatalf("Unknown -autostart mode %q (want on, off or status)", mode)
	}
}

func runScan(port int) {
	log.Printf("Scanning local network on port %d...", port)
	hosts, err := network.ScanLAN(port)
	if err != nil {
		log.Fatalf("Scan failed: %v", err)
	}
	if len(hosts) == 0 {
		fmt.Println("No Astra servers found")
		return
	}
	fmt.Println("Astra Servers:")
	fmt.Println("--------------")
	for _, h := range hosts {
		fmt.Println(h.URL())
	}
}

func runServer(cfg *config.Config) {
	dev, err := input.NewDevice(cfg.Input.Backend)
	if err != nil {
		log.Fatalf("Failed to initialize input backend: %v", err)
	}

	actuator := input.NewActuator(dev, launcher.New(), input.Options{
		DoubleClickDelay:       cfg.DoubleClickDelay(),
		ReverseModifierRelease: cfg.Input.ReverseModifierRelease,
	})
	recent := activity.New(cfg.General.ActivityLogSize)

	if runtime.GOOS == "windows" {
		go func() {
			if err := osutils.EnsureFirewallRule(cfg.Server.Port); err != nil {
				log.Printf("Firewall warning: %v", err)
			}
		}()
	}

	server := api.NewServer(actuator, recent)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(cfg.Addr())
	}()

	// The trackpad channel shares the HTTP port number
	udp := network.NewUDPListener(actuator, recent)
	if err := udp.Start(cfg.Addr()); err != nil {
		log.Printf("Warning: UDP trackpad channel disabled: %v", err)
		udp = nil
	}

	var adv *network.Advertiser
	if cfg.Server.Advertise {
		adv, err = network.Advertise(cfg.Server.InstanceName, cfg.Server.Port, version)
		if err != nil {
			log.Printf("Warning: %v", err)
		}
	}

	urls := serverURLs(cfg.Server.Port)
	for _, u := range urls {
		log.Printf("Connect your device to %s", u)
	}

	shutdown := func() {
		log.Println("Shutting down...")
		adv.Shutdown()
		if udp != nil {
			udp.Stop()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("Warning: shutdown: %v", err)
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if cfg.General.ShowTray {
		t := tray.NewServerTray(urls, recent, nil)
		go func() {
			select {
			case <-sigCh:
			case err := <-errCh:
				if err != nil {
					log.Printf("Server error: %v", err)
				}
			}
			t.Stop()
		}()
		log.Println("Astra running. Use the tray menu or Ctrl+C to stop.")
		t.Run()
		shutdown()
		return
	}

	log.Println("Astra running. Press Ctrl+C to stop.")
	select {
	case <-sigCh:
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}
	shutdown()
}

// serverURLs lists the addresses a device on the LAN can use
func serverURLs(port int) []string {
	ips, err := network.GetLocalIPs()
	if err != nil || len(ips) == 0 {
		if ip, err := network.GetLocalIP(); err == nil {
			ips = []string{ip}
		}
	}
	urls := make([]string, 0, len(ips))
	for _, ip := range ips {
		urls = append(urls, network.DiscoveredHost{IP: ip, Port: port}.URL())
	}
	return urls
}
