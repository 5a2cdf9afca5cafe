// loggen feeds a running loglens instance with realistic sample log
// lines, for local development and demo purposes.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"net/http"
	"time"
)

var sampleLines = []string{
	"2024-01-15T10:30:00Z ERROR: connection to database failed: ECONNREFUSED 127.0.0.1:5432",
	"2024-01-15T10:30:05Z ERROR: Request timeout on /api/v1/users after 30000ms",
	"FATAL: password authentication failed for user \"admin\"",
	"FATAL ERROR: Reached heap limit Allocation failed - JavaScript heap out of memory",
	"kernel: Out of memory: Killed process 12345 (java) total-vm:8192000kB",
	"nginx[1234]: upstream timed out (110: Connection timed out) while reading response header",
	"ERROR: deadlock detected: Process 4211 waits for ShareLock on transaction 563",
	"WARN: disk usage at 91% on /var/lib/postgresql",
	"ERROR: No space left on device: '/var/log/app.log'",
	"sshd[2201]: Failed password for invalid user root from 203.0.113.7 port 51122 ssh2",
	"ERROR: certificate has expired or is not yet valid: api.internal.example.com",
	"WARN: config key 'cache.addr' missing, using default",
	"INFO: scheduled backup completed in 42s",
	"ERROR: panic: runtime error: invalid memory address or nil pointer dereference",
	"HTTP/1.1 502 Bad Gateway from upstream payments-svc",
	"ERROR: getaddrinfo ENOTFOUND db.internal.example.com",
	"the quick brown fox jumps over the lazy dog",
}

func main() {
	var (
		target   = flag.String("target", "http://localhost:8080", "loglens base URL")
		interval = flag.Duration("interval", 2*time.Second, "delay between requests")
		source   = flag.String("source", "loggen", "source tag to attach")
		count    = flag.Int("count", 0, "number of lines to send (0 = forever)")
	)
	flag.Parse()

	logger := log.New(log.Writer(), "loggen ", log.LstdFlags|log.Lmicroseconds)
	client := &http.Client{Timeout: 5 * time.Second}
	endpoint := *target + "/api/v1/explain"

	sent := 0
	for *count == 0 || sent < *count {
		line := sampleLines[rand.Intn(len(sampleLines))]
		if err := send(client, endpoint, line, *source, logger); err != nil {
			logger.Printf("send failed: %v", err)
		}
		sent++
		time.Sleep(*interval)
	}
}

func send(client *http.Client, endpoint, line, source string, logger *log.Logger) error {
	payload, err := json.Marshal(map[string]string{"log": line, "source": source})
	if err != nil {
		return err
	}

	resp, err := client.Post(endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var result struct {
		PatternID     string  `json:"patternId"`
		Severity      string  `json:"severity"`
		SeverityScore int     `json:"severityScore"`
		Confidence    float64 `json:"confidence"`
		Summary       string  `json:"summary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}

	logger.Printf("%d %-20s %-8s score=%-3d conf=%.2f %s",
		resp.StatusCode, result.PatternID, result.Severity, result.SeverityScore, result.Confidence, truncate(line, 60))
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
