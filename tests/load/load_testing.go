package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	neturl "net/url"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const (
	targetHost = "http://localhost:8080"
	rps        = 10
	duration   = 1 * time.Minute
)

var (
	httpc = &http.Client{Timeout: 10 * time.Second}

	statuses = []string{"", "Connected", "Offline"}
	roles    = []string{"", "Admin", "User", "Power User"}
	sorts    = []string{"id:asc", "name:asc", "name:desc", "servers:desc"}
)

func checkHealth() error {
	resp, err := httpc.Get(targetHost + "/api/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health returned %d", resp.StatusCode)
	}
	return nil
}

func usersTarget() vegeta.Target {
	url := fmt.Sprintf("%s/api/users?page=%d&pageSize=20&sort=%s",
		targetHost, rand.Intn(3)+1, sorts[rand.Intn(len(sorts))])
	if s := statuses[rand.Intn(len(statuses))]; s != "" {
		url += "&status=" + s
	}
	if r := roles[rand.Intn(len(roles))]; r != "" {
		url += "&role=" + neturl.QueryEscape(r)
	}
	return vegeta.Target{Method: http.MethodGet, URL: url}
}

func patchTarget() vegeta.Target {
	status := statuses[rand.Intn(2)+1]
	body, _ := json.Marshal(map[string]string{"status": status})
	return vegeta.Target{
		Method: http.MethodPatch,
		URL:    fmt.Sprintf("%s/api/users/%d", targetHost, rand.Intn(5)+1),
		Header: http.Header{"Content-Type": []string{"application/json"}},
		Body:   body,
	}
}

func main() {
	if err := checkHealth(); err != nil {
		log.Fatalf("service is not reachable: %v", err)
	}

	targeter := func(tgt *vegeta.Target) error {
		if tgt == nil {
			return vegeta.ErrNilTarget
		}
		switch rand.Intn(10) {
		case 0:
			*tgt = patchTarget()
		case 1:
			*tgt = vegeta.Target{Method: http.MethodGet, URL: targetHost + "/api/stats"}
		case 2:
			*tgt = vegeta.Target{Method: http.MethodGet, URL: targetHost + "/api/dashboard"}
		default:
			*tgt = usersTarget()
		}
		return nil
	}

	attacker := vegeta.NewAttacker()
	rate := vegeta.Rate{Freq: rps, Per: time.Second}

	var metrics vegeta.Metrics
	for res := range attacker.Attack(targeter, rate, duration, "lunar-dashboard") {
		metrics.Add(res)
	}
	metrics.Close()

	fmt.Printf("Requests:  %d\n", metrics.Requests)
	fmt.Printf("Success:   %.2f%%\n", metrics.Success*100)
	fmt.Printf("p50:       %s\n", metrics.Latencies.P50)
	fmt.Printf("p95:       %s\n", metrics.Latencies.P95)
	fmt.Printf("p99:       %s\n", metrics.Latencies.P99)
	fmt.Printf("Max:       %s\n", metrics.Latencies.Max)
	for code, count := range metrics.StatusCodes {
		fmt.Printf("status %s: %d\n", code, count)
	}
}
