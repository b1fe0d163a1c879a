package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"jobmarket-go/internal/config"
	"jobmarket-go/internal/gateway"
	"jobmarket-go/internal/guard"
	"jobmarket-go/internal/jobs"
	"jobmarket-go/internal/models"
	"jobmarket-go/internal/session"
	"jobmarket-go/internal/uploader"
	"jobmarket-go/pkg/httpclient"
)

func main() {
	var (
		configFile  = flag.String("config", "config.json", "Configuration file path")
		command     = flag.String("cmd", "jobs", "Command to run: register, login, logout, whoami, onboard, jobs, post")
		email       = flag.String("email", "", "Email address (register, login, post)")
		password    = flag.String("password", "", "Password (register, login)")
		name        = flag.String("name", "", "Display name (onboard)")
		username    = flag.String("username", "", "Username (onboard)")
		role        = flag.String("role", "", "Role (onboard)")
		image       = flag.String("image", "", "Image path or URL (onboard, post)")
		title       = flag.String("title", "", "Listing title (post)")
		category    = flag.String("category", "", "Listing category (post)")
		description = flag.String("description", "", "Listing description (post)")
		location    = flag.String("location", "", "Listing location (post)")
		contactName = flag.String("contact-name", "", "Contact name (post)")
		phone       = flag.String("phone", "", "Contact phone number (post)")
		negotiable  = flag.Bool("negotiable", false, "Price is negotiable (post)")
		minPrice    = flag.String("min-price", "", "Minimum price (post)")
		maxPrice    = flag.String("max-price", "", "Maximum price (post)")
		jobID       = flag.String("id", "", "Listing id to show (jobs)")
		output      = flag.String("output", "console", "Output format: console, json")
		help        = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		printUsage()
		os.Exit(0)
	}

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	app, err := newApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Resolve the startup session before any navigation decision is made.
	app.sessions.Restore(ctx)

	switch *command {
	case "register":
		app.runRegister(ctx, *email, *password)
	case "login":
		app.runLogin(ctx, *email, *password)
	case "logout":
		app.runLogout(ctx)
	case "whoami":
		app.runWhoami(*output)
	case "onboard":
		app.runOnboard(ctx, *name, *username, *role, *image)
	case "jobs":
		app.runJobs(ctx, *jobID, *output)
	case "post":
		app.runPost(ctx, jobs.CreateJobInput{
			Title:       *title,
			Category:    *category,
			Description: *description,
			Location:    *location,
			Email:       *email,
			ContactName: *contactName,
			PhoneNumber: *phone,
			Negotiable:  *negotiable,
			MinPrice:    *minPrice,
			MaxPrice:    *maxPrice,
			ImageSource: *image,
		}, *output)
	default:
		fmt.Printf("Unknown command: %s\n", *command)
		printUsage()
		os.Exit(1)
	}
}

// app wires the gateway, session store, guard state and repositories the
// way the mobile shell wires its providers.
type app struct {
	backend  *gateway.Supabase
	sessions *session.Store
	jobs     *jobs.Repository
	images   *uploader.Uploader
	route    guard.Route
}

func newApp(cfg *config.Config) (*app, error) {
	sessionFile := cfg.Client.SessionFile
	if sessionFile == "" {
		var err error
		sessionFile, err = gateway.DefaultSessionFile()
		if err != nil {
			return nil, err
		}
	}

	backend, err := gateway.NewSupabase(cfg.Supabase.URL, cfg.Supabase.Key, &gateway.TokenCache{Path: sessionFile})
	if err != nil {
		return nil, err
	}

	remote := httpclient.NewHttpClient(cfg.Client.RequestTimeout)
	images := uploader.New(backend, remote)
	sessions := session.NewStore(backend, backend)

	a := &app{
		backend:  backend,
		sessions: sessions,
		jobs:     jobs.NewRepository(sessions, backend, images),
		images:   images,
		route:    guard.RouteLogin,
	}

	// Re-evaluate the guard whenever the session changes, the way the
	// mobile shell reacts to auth state.
	sessions.Subscribe(func(snap session.Snapshot) {
		if d := guard.Decide(a.route, snap); d.Action == guard.Redirect {
			a.route = d.Target
		}
	})
	return a, nil
}

// open moves to a route if the guard allows it; a redirect means the
// command is not available in the current session state.
func (a *app) open(route guard.Route) error {
	switch d := guard.Decide(route, a.sessions.Current()); d.Action {
	case guard.Hold:
		return fmt.Errorf("session is still resolving, try again")
	case guard.Redirect:
		return fmt.Errorf("cannot open %s: redirected to %s", route, d.Target)
	}
	a.route = route
	return nil
}

func (a *app) runRegister(ctx context.Context, email, password string) {
	if email == "" || password == "" {
		log.Fatalf("register requires -email and -password")
	}
	if err := a.open(guard.RouteLogin); err != nil {
		log.Fatalf("Already signed in: %v", err)
	}

	// Strict variant: refuse addresses that already have a profile.
	existing, err := a.backend.ProfileByEmail(ctx, email)
	if err != nil {
		log.Fatalf("Failed to check email: %v", err)
	}
	if existing != nil {
		log.Fatalf("An account with %s already exists", email)
	}

	if err := a.sessions.SignUp(ctx, email, password); err != nil {
		fatalUserError("Sign up failed", err)
	}
	fmt.Printf("Registered %s. Check your inbox to confirm the address.\n", email)
	fmt.Printf("Now at %s\n", a.route)
}

func (a *app) runLogin(ctx context.Context, email, password string) {
	if email == "" || password == "" {
		log.Fatalf("login requires -email and -password")
	}
	if err := a.sessions.SignIn(ctx, email, password); err != nil {
		fatalUserError("Sign in failed", err)
	}

	user := a.sessions.Current().User
	fmt.Printf("Signed in as %s\n", user.Email)
	if !user.OnboardingCompleted {
		fmt.Println("Profile incomplete: run -cmd onboard to finish setting up")
	}
	fmt.Printf("Now at %s\n", a.route)
}

func (a *app) runLogout(ctx context.Context) {
	if err := a.sessions.SignOut(ctx); err != nil {
		log.Printf("Warning: backend sign-out failed: %v", err)
	}
	fmt.Println("Signed out")
}

func (a *app) runWhoami(output string) {
	if err := a.open(guard.RouteTabs); err != nil {
		log.Fatalf("%v", err)
	}

	user := a.sessions.Current().User
	if output == "json" {
		outputJSON(user)
		return
	}
	fmt.Printf("ID:       %s\n", user.ID)
	fmt.Printf("Name:     %s\n", user.Name)
	fmt.Printf("Email:    %s\n", user.Email)
	fmt.Printf("Username: %s\n", user.Username)
	fmt.Printf("Role:     %s\n", user.Role)
}

func (a *app) runOnboard(ctx context.Context, name, username, role, image string) {
	if err := a.open(guard.RouteOnboarding); err != nil {
		log.Fatalf("%v", err)
	}
	if name == "" || username == "" || role == "" {
		log.Fatalf("onboard requires -name, -username and -role")
	}
	if len(username) < 3 {
		log.Fatalf("Username must be at least 3 characters")
	}

	user := a.sessions.Current().User
	taken, err := a.backend.ProfileByUsername(ctx, username, user.ID)
	if err != nil {
		log.Fatalf("Failed to check username: %v", err)
	}
	if taken != nil {
		log.Fatalf("The username %q is already taken, choose another one", username)
	}

	update := session.UserUpdate{
		Name:                &name,
		Username:            &username,
		Role:                &role,
		OnboardingCompleted: boolPtr(true),
	}
	if image != "" {
		url, err := a.images.UploadProfileImage(ctx, user.ID, image)
		if err != nil {
			// Not fatal; the profile completes without an image.
			log.Printf("Warning: profile image upload failed: %v", err)
		} else {
			update.ProfileImageURL = &url
		}
	}

	if err := a.sessions.UpdateUser(ctx, update); err != nil {
		fatalUserError("Failed to complete onboarding", err)
	}
	fmt.Printf("Welcome, %s!\n", name)
	fmt.Printf("Now at %s\n", a.route)
}

func (a *app) runJobs(ctx context.Context, jobID, output string) {
	if err := a.open(guard.RouteTabs); err != nil {
		log.Fatalf("%v", err)
	}

	listings, err := a.jobs.ListActiveJobs(ctx)
	if err != nil {
		log.Fatalf("Failed to load jobs: %v", err)
	}

	if jobID != "" {
		job := jobs.FindByID(listings, jobID)
		if job == nil {
			log.Fatalf("Job %s not found", jobID)
		}
		if output == "json" {
			outputJSON(job)
		} else {
			printJobDetails(job)
		}
		return
	}

	if output == "json" {
		outputJSON(listings)
		return
	}
	if len(listings) == 0 {
		fmt.Println("No active jobs right now.")
		return
	}
	fmt.Printf("%d active jobs:\n", len(listings))
	now := time.Now()
	for _, job := range listings {
		owner := ""
		if job.Owner != nil {
			owner = " by @" + job.Owner.Username
		}
		fmt.Printf("- [%s] %s (%s, %s)%s, %s\n",
			job.ID, job.Title, job.Category, priceLabel(job), owner,
			jobs.FormatTimeAgo(job.CreatedAt, now))
	}
}

func (a *app) runPost(ctx context.Context, input jobs.CreateJobInput, output string) {
	if err := a.open(guard.Route("(job)/addJob")); err != nil {
		log.Fatalf("%v", err)
	}

	job, err := a.jobs.CreateJob(ctx, input)
	if err != nil {
		fatalUserError("Failed to post job", err)
	}
	fmt.Printf("Posted %q, visible until %s\n", job.Title, job.ExpiresAt.Format("2006-01-02"))

	// Refresh the listing snapshot, as the screens do after a submit.
	listings, err := a.jobs.ListActiveJobs(ctx)
	if err != nil {
		log.Printf("Warning: could not refresh jobs: %v", err)
		return
	}
	if output == "json" {
		outputJSON(listings)
	} else {
		fmt.Printf("%d jobs now active\n", len(listings))
	}
}

func printJobDetails(job *models.Job) {
	fmt.Printf("%s\n", job.Title)
	fmt.Printf("Category:  %s\n", job.Category)
	fmt.Printf("Price:     %s\n", priceLabel(*job))
	fmt.Printf("Location:  %s\n", job.Location)
	fmt.Printf("Posted:    %s\n", jobs.FormatTimeAgo(job.CreatedAt, time.Now()))
	fmt.Printf("\n%s\n\n", job.Description)
	fmt.Println("Contact:")
	if job.ContactName != "" {
		fmt.Printf("  %s\n", job.ContactName)
	}
	fmt.Printf("  %s\n", job.Email)
	if job.PhoneNumber != "" {
		fmt.Printf("  %s\n", job.PhoneNumber)
	}
}

func priceLabel(job models.Job) string {
	if job.Negotiable {
		return "negotiable"
	}
	return fmt.Sprintf("%s-%s EUR", job.MinPrice, job.MaxPrice)
}

// fatalUserError prints validation failures in field terms and everything
// else verbatim.
func fatalUserError(prefix string, err error) {
	var vErr *gateway.ValidationError
	if errors.As(err, &vErr) {
		log.Fatalf("%s: %s (%s)", prefix, vErr.Message, vErr.Field)
	}
	if errors.Is(err, gateway.ErrNotAuthenticated) {
		log.Fatalf("%s: sign in first", prefix)
	}
	log.Fatalf("%s: %v", prefix, err)
}

func boolPtr(b bool) *bool { return &b }

func outputJSON(data interface{}) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		log.Printf("Failed to encode JSON: %v", err)
	}
}

func printUsage() {
	fmt.Println("Job Marketplace CLI")
	fmt.Println("Usage:")
	fmt.Println("  jobmarket-cli [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  -cmd register  - Create an account (-email, -password)")
	fmt.Println("  -cmd login     - Sign in (-email, -password)")
	fmt.Println("  -cmd logout    - Sign out")
	fmt.Println("  -cmd whoami    - Show the signed-in user")
	fmt.Println("  -cmd onboard   - Complete your profile (-name, -username, -role, [-image])")
	fmt.Println("  -cmd jobs      - Browse active jobs ([-id] for details)")
	fmt.Println("  -cmd post      - Post a listing (-title, -category, -description, -email, ...)")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -config string  Configuration file path (default: config.json)")
	fmt.Println("  -output string  Output format: console, json (default: console)")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  SUPABASE_URL, SUPABASE_KEY (also read from .env)")
}
