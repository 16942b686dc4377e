package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type client struct {
	baseURL string
	token   string
	http    *http.Client
}

func (c *client) send(method, path string, body interface{}) (int, *envelope, error) {
	var bodyReader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return resp.StatusCode, nil, fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return resp.StatusCode, &env, nil
}

// step runs one call and exits on transport errors or an unexpected status.
func (c *client) step(title, method, path string, body interface{}, wantStatus int, out interface{}) {
	color.Yellow("\n%s", title)
	status, env, err := c.send(method, path, body)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	if status != wantStatus {
		color.Red("Status: %d (want %d) %s", status, wantStatus, env.Message)
		os.Exit(1)
	}
	color.Green("Status: %d %s", status, env.Message)
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			color.Red("Failed to decode data: %v", err)
			os.Exit(1)
		}
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8001/api", "API base URL")
	flag.Parse()

	c := &client{baseURL: *baseURL, http: &http.Client{Timeout: 90 * time.Second}}
	color.Cyan("🚀 Healthcare chatbot smoke test against %s", *baseURL)

	c.step("1. Health", http.MethodGet, "/health", nil, http.StatusOK, nil)

	email := fmt.Sprintf("smoke-%s@example.com", uuid.NewString()[:8])
	var auth struct {
		AccessToken string `json:"access_token"`
		User        struct {
			Id string `json:"id"`
		} `json:"user"`
	}
	c.step("2. Register "+email, http.MethodPost, "/auth/register", map[string]interface{}{
		"email":               email,
		"password":            "smoke-pass",
		"full_name":           "Smoke Tester",
		"age":                 30,
		"existing_conditions": []string{"seasonal allergies"},
	}, http.StatusOK, &auth)
	c.token = auth.AccessToken

	c.step("3. Duplicate register is rejected", http.MethodPost, "/auth/register", map[string]interface{}{
		"email": email, "password": "smoke-pass", "full_name": "Smoke Tester",
	}, http.StatusBadRequest, nil)

	c.step("4. Profile", http.MethodGet, "/auth/me", nil, http.StatusOK, nil)

	var reply struct {
		SessionId   string   `json:"session_id"`
		Content     string   `json:"content"`
		Severity    string   `json:"severity"`
		Suggestions []string `json:"suggestions"`
	}
	c.step("5. Chat", http.MethodPost, "/chat/message", map[string]string{
		"message": "I have had a mild headache since this morning",
	}, http.StatusOK, &reply)
	fmt.Printf("severity=%s suggestions=%v\n%s\n", reply.Severity, reply.Suggestions, reply.Content)

	c.step("6. Follow-up in the same session", http.MethodPost, "/chat/message", map[string]string{
		"message":    "It gets worse when I look at screens",
		"session_id": reply.SessionId,
	}, http.StatusOK, nil)

	c.step("7. Session history", http.MethodGet, "/chat/sessions/"+reply.SessionId+"/messages", nil, http.StatusOK, nil)

	var doctors []struct {
		Id             string   `json:"id"`
		Name           string   `json:"name"`
		AvailableSlots []string `json:"available_slots"`
	}
	c.step("8. Doctors", http.MethodGet, "/doctors", nil, http.StatusOK, &doctors)
	if len(doctors) == 0 || len(doctors[0].AvailableSlots) == 0 {
		color.Red("No bookable doctor found")
		os.Exit(1)
	}

	var appointment struct {
		Id     string `json:"id"`
		Status string `json:"status"`
	}
	c.step("9. Book with "+doctors[0].Name, http.MethodPost, "/appointments", map[string]string{
		"doctor_id": doctors[0].Id,
		"slot":      doctors[0].AvailableSlots[0],
		"symptoms":  "recurring headache",
	}, http.StatusOK, &appointment)

	c.step("10. Unknown slot is rejected", http.MethodPost, "/appointments", map[string]string{
		"doctor_id": doctors[0].Id,
		"slot":      "Never 0:00 AM",
		"symptoms":  "recurring headache",
	}, http.StatusBadRequest, nil)

	c.step("11. Cancel", http.MethodPatch, "/appointments/"+appointment.Id+"/cancel", nil, http.StatusOK, &appointment)
	fmt.Printf("status=%s\n", appointment.Status)

	c.step("12. Voices", http.MethodGet, "/voice/voices", nil, http.StatusOK, nil)

	c.step("13. Delete session", http.MethodDelete, "/chat/sessions/"+reply.SessionId, nil, http.StatusOK, nil)

	color.Cyan("\n✅ Smoke test passed")
}
