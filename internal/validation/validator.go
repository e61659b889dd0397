package validation

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"prism/internal/models"
)

// ScenarioValidator drives a running instance through the full user
// journey: register, log in, browse, star, book, cancel, log out. The
// client carries a cookie jar so the session survives across steps.
type ScenarioValidator struct {
	baseURL string
	client  *http.Client
	email   string
}

// NewScenarioValidator creates the validator. The email is randomized
// per run so repeated runs do not trip the unique constraint.
func NewScenarioValidator(baseURL string) *ScenarioValidator {
	jar, _ := cookiejar.New(nil)
	return &ScenarioValidator{
		baseURL: baseURL,
		client:  &http.Client{Jar: jar},
		email:   fmt.Sprintf("validator+%d@example.com", time.Now().UnixNano()),
	}
}

// ValidateAll runs the journey end to end and fails on the first
// broken step.
func (v *ScenarioValidator) ValidateAll() error {
	log.Println("Validating the user journey...")

	steps := []struct {
		name string
		run  func() error
	}{
		{"register", v.validateRegister},
		{"login", v.validateLogin},
		{"catalog", v.validateCatalog},
		{"booking", v.validateBooking},
		{"logout", v.validateLogout},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			return fmt.Errorf("%s validation failed: %w", step.name, err)
		}
		log.Printf("Step %q passed", step.name)
	}

	log.Println("All steps passed")
	return nil
}

func (v *ScenarioValidator) validateRegister() error {
	resp, err := v.postForm("/register", url.Values{
		"full_name": {"Validation User"},
		"email":     {v.email},
		"password":  {"validator-pass"},
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("POST /register: expected 200 after redirect, got %d", resp.StatusCode)
	}
	return nil
}

func (v *ScenarioValidator) validateLogin() error {
	resp, err := v.postForm("/login", url.Values{
		"email":    {v.email},
		"password": {"validator-pass"},
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("POST /login: expected 200 after redirect, got %d", resp.StatusCode)
	}

	// The dashboard requires a session, so a 200 here proves login took.
	resp, err = v.get("/dashboard")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /dashboard: expected 200, got %d", resp.StatusCode)
	}
	return nil
}

func (v *ScenarioValidator) validateCatalog() error {
	resp, err := v.get("/events")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /events: expected 200, got %d", resp.StatusCode)
	}

	var events models.EventListResponse
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return fmt.Errorf("GET /events: failed to decode response: %w", err)
	}

	resp, err = v.get("/venues")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /venues: expected 200, got %d", resp.StatusCode)
	}

	resp, err = v.get("/search?q=a")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /search: expected 200, got %d", resp.StatusCode)
	}
	return nil
}

// validateBooking books the first event in the catalog, confirms it
// shows up under /booked, then cancels it. Skips when the catalog is
// empty.
func (v *ScenarioValidator) validateBooking() error {
	resp, err := v.get("/events")
	if err != nil {
		return err
	}
	var events models.EventListResponse
	err = json.NewDecoder(resp.Body).Decode(&events)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("GET /events: failed to decode response: %w", err)
	}

	if len(events.Events) == 0 {
		log.Println("No events in the catalog, skipping the booking steps")
		return nil
	}
	eventID := events.Events[0].ID

	resp, err = v.postForm("/star-item/event/"+eventID, nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("POST /star-item: expected 200 after redirect, got %d", resp.StatusCode)
	}

	resp, err = v.postForm("/book-event/"+eventID, nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("POST /book-event: expected 200 after redirect, got %d", resp.StatusCode)
	}

	resp, err = v.get("/booked")
	if err != nil {
		return err
	}
	var booked struct {
		Bookings []models.Booking `json:"bookings"`
	}
	err = json.NewDecoder(resp.Body).Decode(&booked)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("GET /booked: failed to decode response: %w", err)
	}
	if len(booked.Bookings) == 0 {
		return fmt.Errorf("GET /booked: expected the fresh booking in the list")
	}

	bookingID := booked.Bookings[0].ID
	resp, err = v.postForm(fmt.Sprintf("/cancel-booking/%d", bookingID), nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("POST /cancel-booking: expected 200 after redirect, got %d", resp.StatusCode)
	}
	return nil
}

func (v *ScenarioValidator) validateLogout() error {
	resp, err := v.postForm("/logout", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("POST /logout: expected 200 after redirect, got %d", resp.StatusCode)
	}
	return nil
}

func (v *ScenarioValidator) get(path string) (*http.Response, error) {
	resp, err := v.client.Get(v.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	return resp, nil
}

func (v *ScenarioValidator) postForm(path string, form url.Values) (*http.Response, error) {
	body := ""
	if form != nil {
		body = form.Encode()
	}
	req, err := http.NewRequest(http.MethodPost, v.baseURL+path, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	return resp, nil
}

// RunValidation validates the instance on the default local port.
func RunValidation() {
	validator := NewScenarioValidator("http://localhost:8080")
	if err := validator.ValidateAll(); err != nil {
		log.Fatalf("Validation failed: %v", err)
	}
}
