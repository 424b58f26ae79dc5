package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-queue/internal/appointment"
	"github.com/clinicdesk/clinic-queue/internal/config"
	"github.com/clinicdesk/clinic-queue/internal/session"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	logger.Info().Msg("clinic console starting up")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config load error")
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := session.NewStore(cfg.SessionFile)
	authClient := session.NewClient(cfg.APIBaseURL, store, logger)

	// Reuse a persisted session when one is still valid; otherwise log in
	// with the configured credential if we have one. The board itself works
	// without a session, triage actions do not.
	if store.Current() == nil && cfg.AdminPassword != "" {
		loginCtx, cancel := context.WithTimeout(rootCtx, 10*time.Second)
		sess, err := authClient.Login(loginCtx, cfg.AdminPassword)
		cancel()
		if err != nil {
			logger.Warn().Err(err).Msg("admin login failed, continuing read-only")
		} else {
			logger.Info().Time("expires_at", sess.ExpiresAt).Msg("admin session established")
		}
	}

	repo := appointment.NewRESTRepository(cfg.APIBaseURL, store)
	controller := appointment.NewController(repo, logger)

	go controller.Run(rootCtx, cfg.PollInterval)

	render(controller)
	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rootCtx.Done():
			logger.Info().Msg("shutting down console")
			return
		case <-ticker.C:
			render(controller)
		}
	}
}

func render(controller *appointment.Controller) {
	state := controller.State()
	summary := controller.Summary()

	fmt.Println()
	fmt.Println(strings.Repeat("=", 72))
	fmt.Printf("CLINIC QUEUE  %s\n", time.Now().Format("Mon Jan 02 2006 15:04"))
	fmt.Println(strings.Repeat("=", 72))

	if state.Err != "" {
		fmt.Printf("! %s\n", state.Err)
	}

	fmt.Printf("total=%d today=%d waiting=%d completed_today=%d online=%d in_person=%d\n",
		summary.TotalAppointments, summary.ScheduledToday, summary.WaitingCount,
		summary.CompletedToday, summary.OnlineCount, summary.InPersonCount)

	var breakdown []string
	for _, row := range summary.StatusBreakdown {
		breakdown = append(breakdown, fmt.Sprintf("%s: %d", row.Label, row.Count))
	}
	fmt.Println(strings.Join(breakdown, "  "))

	if summary.NextAppointment != nil {
		next := summary.NextAppointment
		fmt.Printf("next up: %s at %s (%s)\n",
			next.FullName, next.ScheduledFor.Format("Mon Jan 02 15:04"), next.Status.Label())
	}

	for _, group := range controller.Board() {
		fmt.Printf("\n%s\n", group.Label)
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, appt := range group.Items {
			fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%s\n",
				appt.ID,
				appt.ScheduledFor.Format("15:04"),
				appt.FullName,
				appt.VisitType,
				appt.Status.Label(),
			)
		}
		w.Flush()
	}
}
