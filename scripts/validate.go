package main

import (
	"flag"
	"log"

	"prism/internal/validation"
)

func main() {
	var baseURL string
	flag.StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the running instance")
	flag.Parse()

	log.Printf("Starting validation against: %s", baseURL)

	validator := validation.NewScenarioValidator(baseURL)
	if err := validator.ValidateAll(); err != nil {
		log.Fatalf("Validation failed: %v", err)
	}

	log.Println("Validation passed")
}
