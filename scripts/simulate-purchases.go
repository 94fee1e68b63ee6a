package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

type apiResp[T any] struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      T      `json:"data"`
}

type sessionOut struct {
	Token string `json:"token"`
}

type wallet struct {
	Connected  bool   `json:"connected"`
	Connecting bool   `json:"connecting"`
	Address    string `json:"address"`
}

type transaction struct {
	ID       string `json:"id"`
	State    string `json:"state"`
	TicketID string `json:"ticket_id"`
	Reason   string `json:"reason"`
}

type session struct {
	ID          string       `json:"id"`
	Wallet      wallet       `json:"wallet"`
	Transaction *transaction `json:"transaction"`
}

var (
	baseURL      = flag.String("url", "http://localhost:8080", "Base URL of the marketplace")
	eventID      = flag.String("event", "1", "Event ID to buy tickets for")
	numUsers     = flag.Int("users", 50, "Number of simulated buyers")
	purchases    = flag.Int("purchases", 3, "Purchases per buyer")
	concurrency  = flag.Int("concurrency", 10, "Buyers running at the same time")
	pollInterval = flag.Duration("poll", 250*time.Millisecond, "Interval between status polls")
	timeout      = flag.Duration("timeout", 30*time.Second, "Max time to wait for one step to settle")
)

type stats struct {
	mu      sync.Mutex
	outcome map[string]int
	errors  int
}

func (s *stats) record(state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcome[state]++
}

func (s *stats) fail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors++
}

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := &http.Client{Timeout: 10 * time.Second}
	st := &stats{outcome: make(map[string]int)}

	fmt.Printf("🚀 Simulating %d buyers x %d purchases against %s (event %s)\n", *numUsers, *purchases, *baseURL, *eventID)
	startTime := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*concurrency)

	for i := 0; i < *numUsers; i++ {
		g.Go(func() error {
			if err := runBuyer(gctx, cli, st); err != nil {
				fmt.Printf("❌ buyer %d: %v\n", i+1, err)
				st.fail()
			}
			return nil
		})
	}
	_ = g.Wait()

	elapsed := time.Since(startTime)
	report(st, elapsed)
}

func runBuyer(ctx context.Context, cli *http.Client, st *stats) error {
	var ss apiResp[sessionOut]
	if err := call(ctx, cli, http.MethodPost, "/api/v1/sessions", "", nil, &ss); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	token := ss.Data.Token
	defer func() {
		_ = call(context.Background(), cli, http.MethodDelete, "/api/v1/session", token, nil, nil)
	}()

	if err := call(ctx, cli, http.MethodPost, "/api/v1/wallet/connect", token, nil, nil); err != nil {
		return fmt.Errorf("connect wallet: %w", err)
	}

	if _, err := waitFor(ctx, cli, token, func(s session) bool { return s.Wallet.Connected }); err != nil {
		return fmt.Errorf("wait for wallet: %w", err)
	}

	for p := 0; p < *purchases; p++ {
		var tx apiResp[transaction]
		err := call(ctx, cli, http.MethodPost, "/api/v1/purchases", token, map[string]string{"event_id": *eventID}, &tx)
		if err != nil {
			return fmt.Errorf("buy ticket: %w", err)
		}

		txID := tx.Data.ID
		s, err := waitFor(ctx, cli, token, func(s session) bool {
			return s.Transaction != nil && s.Transaction.ID == txID && s.Transaction.State != "pending"
		})
		if err != nil {
			return fmt.Errorf("wait for purchase: %w", err)
		}

		st.record(s.Transaction.State)
	}

	return nil
}

func waitFor(ctx context.Context, cli *http.Client, token string, done func(s session) bool) (session, error) {
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	ticker := time.NewTicker(*pollInterval)
	defer ticker.Stop()

	for {
		var resp apiResp[session]
		if err := call(ctx, cli, http.MethodGet, "/api/v1/session", token, nil, &resp); err != nil {
			return session{}, err
		}
		if done(resp.Data) {
			return resp.Data, nil
		}

		select {
		case <-ctx.Done():
			return session{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

func call(ctx context.Context, cli *http.Client, method, path, token string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, *baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Session-Token", token)
	}

	res, err := cli.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		var e apiResp[any]
		_ = json.NewDecoder(res.Body).Decode(&e)
		return fmt.Errorf("%s %s: status %d: %s", method, path, res.StatusCode, e.Message)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func report(st *stats, elapsed time.Duration) {
	st.mu.Lock()
	defer st.mu.Unlock()

	total := 0
	for _, n := range st.outcome {
		total += n
	}

	fmt.Printf("\n⏱️  Completed in %v\n", elapsed)
	fmt.Printf("📊 Resolved purchases: %d, buyer errors: %d\n", total, st.errors)
	for _, state := range []string{"success", "fraud", "failed"} {
		n := st.outcome[state]
		pct := 0.0
		if total > 0 {
			pct = float64(n) / float64(total) * 100
		}
		fmt.Printf("   %-8s %5d (%.1f%%)\n", state, n, pct)
	}

	minted := st.outcome["success"] + st.outcome["fraud"]
	if minted > 0 {
		fmt.Printf("🎯 Fraud ratio among settled purchases: %.1f%%\n", float64(st.outcome["fraud"])/float64(minted)*100)
	}
}
