package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// simulate drives realistic patient and staff traffic against a
// running api-server: each patient worker signs up, signs in, loads
// the booking form data and books a consulta; one staff worker keeps
// approving whatever is pending.

type SimConfig struct {
	APIBaseURL    string
	Duration      time.Duration
	Patients      int
	AdminEmail    string
	AdminPassword string
}

type Metrics struct {
	Signups   int64
	Bookings  int64
	Approvals int64
	Errors    int64
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := SimConfig{}
	flag.StringVar(&cfg.APIBaseURL, "api", "http://localhost:8080", "api-server base URL")
	flag.DurationVar(&cfg.Duration, "duration", 30*time.Second, "how long to run")
	flag.IntVar(&cfg.Patients, "patients", 5, "concurrent patient workers")
	flag.StringVar(&cfg.AdminEmail, "admin-email", "admin@agendavida.dev", "admin account email")
	flag.StringVar(&cfg.AdminPassword, "admin-password", "senha123", "admin account password")
	flag.Parse()

	gofakeit.Seed(time.Now().UnixNano())

	log.Printf("simulate starting: api=%s duration=%s patients=%d", cfg.APIBaseURL, cfg.Duration, cfg.Patients)

	var metrics Metrics
	deadline := time.Now().Add(cfg.Duration)

	var wg sync.WaitGroup
	for i := 0; i < cfg.Patients; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			patientLoop(cfg, &metrics, deadline)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		staffLoop(cfg, &metrics, deadline)
	}()

	wg.Wait()

	log.Printf("simulate done: signups=%d bookings=%d approvals=%d errors=%d",
		atomic.LoadInt64(&metrics.Signups),
		atomic.LoadInt64(&metrics.Bookings),
		atomic.LoadInt64(&metrics.Approvals),
		atomic.LoadInt64(&metrics.Errors))
}

func patientLoop(cfg SimConfig, metrics *Metrics, deadline time.Time) {
	client := &http.Client{Timeout: 10 * time.Second}

	for time.Now().Before(deadline) {
		email := gofakeit.Email()
		password := "senha" + fmt.Sprint(gofakeit.Number(100000, 999999))

		_, err := postJSON(client, cfg.APIBaseURL+"/auth/signup", "", map[string]string{
			"name":     gofakeit.Name(),
			"email":    email,
			"password": password,
		})
		if err != nil {
			atomic.AddInt64(&metrics.Errors, 1)
			continue
		}
		atomic.AddInt64(&metrics.Signups, 1)

		token, err := signIn(client, cfg.APIBaseURL, email, password)
		if err != nil {
			atomic.AddInt64(&metrics.Errors, 1)
			continue
		}

		if err := bookConsulta(client, cfg.APIBaseURL, token); err != nil {
			atomic.AddInt64(&metrics.Errors, 1)
			continue
		}
		atomic.AddInt64(&metrics.Bookings, 1)

		time.Sleep(time.Duration(rand.Intn(500)) * time.Millisecond)
	}
}

func staffLoop(cfg SimConfig, metrics *Metrics, deadline time.Time) {
	client := &http.Client{Timeout: 10 * time.Second}

	token, err := signIn(client, cfg.APIBaseURL, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		log.Printf("staff sign-in failed, approvals disabled: %v", err)
		return
	}

	for time.Now().Before(deadline) {
		var consultas []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		}
		if err := getJSON(client, cfg.APIBaseURL+"/api/consultas", token, &consultas); err != nil {
			atomic.AddInt64(&metrics.Errors, 1)
			time.Sleep(time.Second)
			continue
		}

		for _, c := range consultas {
			if c.Status != "pendente" {
				continue
			}
			_, err := postJSON(client, cfg.APIBaseURL+"/api/consultas/"+c.ID+"/approve", token, nil)
			if err != nil {
				atomic.AddInt64(&metrics.Errors, 1)
				continue
			}
			atomic.AddInt64(&metrics.Approvals, 1)
		}

		time.Sleep(time.Second)
	}
}

func signIn(client *http.Client, baseURL, email, password string) (string, error) {
	body, err := postJSON(client, baseURL+"/auth/signin", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func bookConsulta(client *http.Client, baseURL, token string) error {
	var especialidades []string
	if err := getJSON(client, baseURL+"/api/especialidades", token, &especialidades); err != nil {
		return err
	}
	if len(especialidades) == 0 {
		return fmt.Errorf("no specialties available, run the seed first")
	}

	spec := especialidades[rand.Intn(len(especialidades))]

	var profissionais []struct {
		ID string `json:"id"`
	}
	if err := getJSON(client, baseURL+"/api/profissionais?especialidade="+spec, token, &profissionais); err != nil {
		return err
	}
	if len(profissionais) == 0 {
		return fmt.Errorf("no professionals for %s", spec)
	}

	_, err := postJSON(client, baseURL+"/api/consultas", token, map[string]any{
		"data":            time.Now().AddDate(0, 0, rand.Intn(30)+1).Format(time.RFC3339),
		"descricao":       gofakeit.Sentence(6),
		"especialidade":   spec,
		"profissional_id": profissionais[rand.Intn(len(profissionais))].ID,
	})
	return err
}

func postJSON(client *http.Client, url, token string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("POST %s: status %d: %s", url, resp.StatusCode, data)
	}
	return data, nil
}

func getJSON(client *http.Client, url, token string, out any) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s: status %d: %s", url, resp.StatusCode, data)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
