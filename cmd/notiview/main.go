package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"notiview/internal/config"
	"notiview/internal/domain"
	"notiview/internal/eventbus"
	"notiview/internal/ntfy"
	"notiview/internal/store"
	"notiview/internal/ui"
	"notiview/internal/ui/services/binding"
)

type options struct {
	configPath     string
	subscriptionID int64
	topic          string
	baseURL        string
	live           bool
	memory         bool
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to the config file")
	flag.Int64Var(&opts.subscriptionID, "s", 0, "Subscription id to open")
	flag.StringVar(&opts.topic, "t", "", "Topic to open (subscribed automatically if unknown)")
	flag.StringVar(&opts.baseURL, "base", "", "Server for a new topic subscription")
	flag.BoolVar(&opts.live, "live", false, "Stream new notifications from the server while open")
	flag.BoolVar(&opts.memory, "memory", false, "Keep notifications in memory instead of the database")
	flag.Parse()

	if opts.topic == "" && flag.NArg() > 0 {
		opts.topic = flag.Arg(0)
	}
	return opts
}

func main() {
	opts := parseFlags()

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	// Load configuration
	configSvc := config.NewConfigServiceWithBus(bus, opts.configPath)
	cfg, err := configSvc.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Set up logging
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		log.Printf("Could not create log directory: %v", err)
	}
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	sub, err := resolveSubscription(configSvc, cfg, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	st, closeStore, err := openStore(ctx, cfg, bus, opts.memory)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening notification store: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	sender := ntfy.NewSender(&http.Client{})

	// Errors from the store and the subscriber are shown on the screen. The
	// screen reports its own errors directly. Subscribed before the model so
	// a failing first load is not missed.
	eventChan := make(chan eventbus.DomainEvent, 100)
	unsubscribeErrors := bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		event, ok := e.(eventbus.ErrorEvent)
		if !ok || event.Source == ui.ErrorSource {
			return
		}
		select {
		case eventChan <- event:
		default:
			log.Println("Event channel full, dropping event")
		}
	})
	defer unsubscribeErrors()

	// Create UI model
	uiModel, err := ui.NewModel(bus, cfg, st, sender, sub)
	if err != nil {
		if errors.Is(err, binding.ErrMissingSubscription) {
			log.Printf("Cannot open history: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Cannot open history: %v\n", err)
		os.Exit(1)
	}

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Start forwarding events to UI in background
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	if opts.live {
		uiModel.SetLive(true)
		subscriber := ntfy.NewSubscriber(*sub, func(n domain.Notification) {
			if _, err := st.Add(ctx, n); err != nil {
				log.Printf("Failed to store notification %s: %v", n.ID, err)
				bus.Publish(eventbus.ErrorEvent{Source: "subscriber", Message: "Could not store incoming notification", Err: err})
			}
		})
		subscriber.OnConnect = func() { p.Send(ui.ConnectionMsg{Connected: true}) }
		subscriber.OnDisconnect = func() { p.Send(ui.ConnectionMsg{Connected: false}) }
		go subscriber.Run(ctx)
	}

	// Quit the program when a signal cancels the context
	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	// Run the UI
	log.Printf("Opening history for %s", ntfy.TopicShortURL(sub.BaseURL, sub.Topic))
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")

	if result := uiModel.Result(); result != nil {
		if cfg.RemoveSubscription(result.SubscriptionID) {
			if err := configSvc.Save(cfg); err != nil {
				log.Printf("Failed to save config: %v", err)
				fmt.Fprintf(os.Stderr, "Failed to save config: %v\n", err)
			}
		}
		fmt.Printf("Unsubscribed from %s (subscription %d)\n", result.Topic, result.SubscriptionID)
	}
}

// resolveSubscription finds the subscription named on the command line,
// subscribing to a new topic when needed
func resolveSubscription(configSvc config.ConfigService, cfg *config.Config, opts options) (*domain.Subscription, error) {
	if opts.subscriptionID == 0 && opts.topic == "" {
		if len(cfg.Subscriptions) == 0 {
			return nil, errors.New("no subscriptions configured; pass a topic with -t")
		}
		return cfg.Subscriptions[0].ToDomain(cfg.DefaultBaseURL), nil
	}

	sub, err := cfg.FindSubscription(opts.subscriptionID, opts.topic)
	if err == nil {
		return sub, nil
	}
	if !errors.Is(err, config.ErrSubscriptionNotFound) || opts.topic == "" || opts.subscriptionID != 0 {
		return nil, err
	}

	baseURL := opts.baseURL
	if baseURL == "" {
		baseURL = cfg.DefaultBaseURL
	}
	sub = cfg.AddSubscription(baseURL, opts.topic)
	if err := configSvc.Save(cfg); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
	log.Printf("Subscribed to %s as subscription %d", opts.topic, sub.ID)
	return sub, nil
}

// openStore opens the database-backed store and watches it for writes from
// other processes, or returns an in-memory store
func openStore(ctx context.Context, cfg *config.Config, bus eventbus.EventBus, memory bool) (store.NotificationStore, func(), error) {
	if memory {
		return store.NewMemoryStore(bus), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	db, err := store.OpenSQLite(cfg.DatabasePath, bus)
	if err != nil {
		return nil, nil, err
	}

	watcher, err := store.NewWatcher(db.Path(), bus)
	if err != nil {
		log.Printf("Not watching %s for external changes: %v", db.Path(), err)
	} else {
		go watcher.Run(ctx)
	}

	return db, func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}, nil
}
