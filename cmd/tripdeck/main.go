package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/voyago/tripdeck/pkg/api"
	"github.com/voyago/tripdeck/pkg/config"
	"github.com/voyago/tripdeck/pkg/events"
	"github.com/voyago/tripdeck/pkg/log"
	"github.com/voyago/tripdeck/pkg/session"
	"github.com/voyago/tripdeck/pkg/store"
	"github.com/voyago/tripdeck/pkg/transport"
)

func main() {
	login := flag.String("login", "", "log in as email:password")
	register := flag.String("register", "", "create an account as email:password")
	fullName := flag.String("name", "", "full name for -register")
	logout := flag.Bool("logout", false, "clear the persisted session")
	trip := flag.String("trip", "", "show detail for a trip id")
	calendar := flag.Bool("calendar", false, "show the itinerary grouped by date")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := log.Init(&cfg.Logging); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := log.GetLogger()

	// Open the persisted session store
	sess, err := session.OpenBadger(cfg.Storage.Dir)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open session storage")
	}
	defer func() {
		if err := sess.Close(); err != nil {
			logger.WithError(err).Error("Failed to close session storage")
		}
	}()

	bus := events.NewBus()
	tr := transport.New(sess, bus, logger)
	apiClient := api.New(&cfg.API, tr)
	st := store.New(apiClient, sess, bus, logger)
	defer st.Close()

	ctx := context.Background()

	if *logout {
		st.Logout()
		fmt.Println("Logged out.")
		return
	}

	if *register != "" {
		email, password, ok := splitCredentials(*register)
		if !ok {
			fmt.Println("Usage: -register email:password")
			os.Exit(1)
		}
		if res := st.Register(ctx, email, password, *fullName); !res.OK {
			fmt.Printf("Registration failed: %s\n", res.Error)
			os.Exit(1)
		}
	} else if *login != "" {
		email, password, ok := splitCredentials(*login)
		if !ok {
			fmt.Println("Usage: -login email:password")
			os.Exit(1)
		}
		if res := st.Login(ctx, email, password); !res.OK {
			fmt.Printf("Login failed: %s\n", res.Error)
			os.Exit(1)
		}
	} else {
		st.Bootstrap(ctx)
	}

	state := st.Snapshot()
	if state.Auth.Status != store.AuthAuthenticated {
		fmt.Println("Not logged in. Use -login email:password or -register email:password.")
		os.Exit(1)
	}

	switch {
	case *trip != "":
		printTripDetail(st.SelectedTrip(*trip))
	case *calendar:
		printCalendar(st.ItineraryByDate())
	default:
		printDashboard(state)
	}
}

// splitCredentials parses an email:password argument
func splitCredentials(arg string) (email, password string, ok bool) {
	email, password, ok = strings.Cut(arg, ":")
	if email == "" || password == "" {
		return "", "", false
	}
	return email, password, ok
}

func printDashboard(state store.State) {
	if state.Auth.User != nil {
		fmt.Printf("Signed in as %s\n\n", state.Auth.User.Email)
	}

	fmt.Printf("Trips (%d)\n", len(state.Data.Trips))
	for _, t := range state.Data.Trips {
		dates := formatRange(t.StartDate, t.EndDate)
		if dates != "" {
			fmt.Printf("  [%s] %s  %s\n", t.ID, t.Name, dates)
		} else {
			fmt.Printf("  [%s] %s\n", t.ID, t.Name)
		}
	}

	fmt.Printf("\nDestinations: %d  Itinerary items: %d  Bookings: %d  Favorites: %d\n",
		len(state.Data.Destinations), len(state.Data.ItineraryItems),
		len(state.Data.Bookings), len(state.Data.Favorites))

	printErrors(state.Status.Error)
}

func printTripDetail(detail store.TripDetail) {
	if detail.Trip == nil {
		fmt.Println("Trip not found.")
		os.Exit(1)
	}

	fmt.Printf("%s  %s\n", detail.Trip.Name, formatRange(detail.Trip.StartDate, detail.Trip.EndDate))
	if detail.Trip.Notes != "" {
		fmt.Printf("  %s\n", detail.Trip.Notes)
	}

	fmt.Printf("\nDestinations (%d)\n", len(detail.Destinations))
	for _, d := range detail.Destinations {
		fmt.Printf("  [%s] %s, %s\n", d.ID, d.Name, d.Country)
	}

	fmt.Printf("\nItinerary (%d)\n", len(detail.ItineraryItems))
	for _, item := range detail.ItineraryItems {
		fmt.Printf("  %s  %s\n", item.Date, item.Title)
	}

	fmt.Printf("\nBookings (%d)\n", len(detail.Bookings))
	for _, b := range detail.Bookings {
		fmt.Printf("  [%s] %s %s (%s)\n", b.ID, b.Type, b.Provider, b.Reference)
	}
}

func printCalendar(days []store.DaySchedule) {
	if len(days) == 0 {
		fmt.Println("No dated itinerary items.")
		return
	}
	for _, day := range days {
		fmt.Println(day.Date)
		for _, item := range day.Items {
			if item.StartTime != "" {
				fmt.Printf("  %s  %s\n", item.StartTime, item.Title)
			} else {
				fmt.Printf("        %s\n", item.Title)
			}
		}
	}
}

func printErrors(errs store.ResourceErrors) {
	for resource, msg := range map[string]string{
		"trips":        errs.Trips,
		"destinations": errs.Destinations,
		"itinerary":    errs.Itinerary,
		"bookings":     errs.Bookings,
		"favorites":    errs.Favorites,
	} {
		if msg != "" {
			fmt.Printf("warning: %s failed to load: %s\n", resource, msg)
		}
	}
}

func formatRange(start, end string) string {
	switch {
	case start != "" && end != "":
		return start + " to " + end
	case start != "":
		return "from " + start
	case end != "":
		return "until " + end
	default:
		return ""
	}
}
