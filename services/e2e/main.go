package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/goccy/go-json"
)

func baseURL() string {
	if url := os.Getenv("E2E_BASE_URL"); url != "" {
		return url
	}
	switch os.Getenv("ENV") {
	case "CI":
		return "http://filmorate-app:8080"
	}
	return "http://localhost:8080"
}

type filmRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	ReleaseDate string         `json:"releaseDate"`
	Duration    int            `json:"duration"`
	Mpa         map[string]int `json:"mpa"`
}

type userRequest struct {
	Email    string `json:"email"`
	Login    string `json:"login"`
	Birthday string `json:"birthday"`
}

type entity struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Likes   int     `json:"likes"`
	Friends []int64 `json:"friends"`
}

func main() {
	fmt.Println("Starting E2E tests for Filmorate API...")

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	if err := run(client, baseURL()); err != nil {
		fmt.Printf("E2E failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\n All E2E tests passed!")
}

func run(client *http.Client, base string) error {
	if !waitForService(client, base) {
		return fmt.Errorf("service at %s is not ready", base)
	}

	fmt.Println("\n Step 1: Creating users...")
	stamp := time.Now().UnixNano()
	var users []entity
	for i := 0; i < 2; i++ {
		var u entity
		login := fmt.Sprintf("e2e%d_%d", stamp, i)
		err := call(client, http.MethodPost, base+"/users", userRequest{
			Email:    login + "@e2e.io",
			Login:    login,
			Birthday: "1990-01-01",
		}, http.StatusCreated, &u)
		if err != nil {
			return err
		}
		users = append(users, u)
	}

	fmt.Println("\n Step 2: Creating film...")
	var film entity
	err := call(client, http.MethodPost, base+"/films", filmRequest{
		Name:        "Inception",
		Description: "A thief who steals corporate secrets through dream-sharing.",
		ReleaseDate: "2010-07-16",
		Duration:    148,
		Mpa:         map[string]int{"id": 3},
	}, http.StatusCreated, &film)
	if err != nil {
		return err
	}
	fmt.Printf("Film created successfully. ID: %d\n", film.ID)

	fmt.Println("\n Step 3: Liking film...")
	for _, u := range users {
		path := fmt.Sprintf("%s/films/%d/like/%d", base, film.ID, u.ID)
		if err := call(client, http.MethodPut, path, nil, http.StatusOK, &film); err != nil {
			return err
		}
	}
	if film.Likes != len(users) {
		return fmt.Errorf("film has %d likes, want %d", film.Likes, len(users))
	}

	fmt.Println("\n Step 4: Befriending users...")
	var u entity
	path := fmt.Sprintf("%s/users/%d/friends/%d", base, users[0].ID, users[1].ID)
	if err := call(client, http.MethodPut, path, nil, http.StatusOK, &u); err != nil {
		return err
	}
	var friends []entity
	path = fmt.Sprintf("%s/users/%d/friends", base, users[1].ID)
	if err := call(client, http.MethodGet, path, nil, http.StatusOK, &friends); err != nil {
		return err
	}
	if len(friends) != 1 || friends[0].ID != users[0].ID {
		return fmt.Errorf("friendship is not mutual: %+v", friends)
	}

	fmt.Println("\n Step 5: Getting popular films...")
	var popular []entity
	if err := call(client, http.MethodGet, base+"/films/popular?count=1", nil, http.StatusOK, &popular); err != nil {
		return err
	}
	if len(popular) != 1 {
		return fmt.Errorf("popular returned %d films, want 1", len(popular))
	}
	fmt.Printf("Most popular film: %s (%d likes)\n", popular[0].Name, popular[0].Likes)

	return nil
}

func waitForService(client *http.Client, base string) bool {
	fmt.Println(" Waiting for service to be ready...")

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		resp, err := client.Get(base + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				fmt.Println(" Service is ready!")
				return true
			}
		}

		if i < maxRetries-1 {
			fmt.Printf(" Service not ready yet (attempt %d/%d)...\n", i+1, maxRetries)
			time.Sleep(2 * time.Second)
		}
	}

	fmt.Println(" Service didn't start in time")
	return false
}

func call(client *http.Client, method, url string, in any, wantStatus int, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != wantStatus {
		return fmt.Errorf("%s %s returned status %d: %s", method, url, resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
