// Command benchmark times parses against a running gridiron server.
//
//	go run ./scripts/benchmark -runs 3 -max-age 600000
//
// With -max-age set, every run after the first should be served from the
// fetch cache, so the report separates fetch time from parse time.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"
)

var (
	apiURL = flag.String("api-url", "http://localhost:8080", "gridiron API base URL")
	apiKey = flag.String("api-key", "", "API key for authenticated requests")
	runs   = flag.Int("runs", 3, "runs per page")
	maxAge = flag.Int("max-age", 0, "max_age in ms sent with each request (0 disables the cache)")
	output = flag.String("output", "benchmark-results.json", "JSON output file path")
)

var targets = []struct {
	Label  string
	Page   string
	Params map[string]string
}{
	{"Season", "season", map[string]string{"year": "2023"}},
	{"Schedule", "schedule", map[string]string{"year": "2023"}},
	{"Draft", "draft", map[string]string{"year": "2023"}},
	{"Player", "player", map[string]string{"letter": "M", "player_id": "MahoPa00"}},
	{"Box score", "game", map[string]string{"game_id": "202402110kan"}},
	{"Hall of Fame", "hof", nil},
}

type parseRequest struct {
	Page    string            `json:"page"`
	Params  map[string]string `json:"params,omitempty"`
	Timeout int               `json:"timeout"`
	MaxAge  int               `json:"max_age,omitempty"`
}

type parseResponse struct {
	Success     bool                       `json:"success"`
	StatusCode  int                        `json:"status_code"`
	EngineUsed  string                     `json:"engine_used"`
	CacheStatus string                     `json:"cache_status"`
	Document    map[string]json.RawMessage `json:"document"`
	Timing      struct {
		TotalMs int64 `json:"total_ms"`
		FetchMs int64 `json:"fetch_ms"`
		ParseMs int64 `json:"parse_ms"`
	} `json:"timing"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type runResult struct {
	Run       int    `json:"run"`
	TotalMs   int64  `json:"total_ms"`
	FetchMs   int64  `json:"fetch_ms"`
	ParseMs   int64  `json:"parse_ms"`
	Sections  int    `json:"sections"`
	Engine    string `json:"engine,omitempty"`
	CacheHit  bool   `json:"cache_hit"`
	Success   bool   `json:"success"`
	ErrorCode string `json:"error_code,omitempty"`
	Error     string `json:"error,omitempty"`
}

type pageAverages struct {
	TotalMs float64 `json:"total_ms"`
	FetchMs float64 `json:"fetch_ms"`
	ParseMs float64 `json:"parse_ms"`
}

type pageResult struct {
	Label    string        `json:"label"`
	Page     string        `json:"page"`
	Runs     []runResult   `json:"runs"`
	Averages *pageAverages `json:"averages,omitempty"`
}

type benchmarkReport struct {
	Timestamp   string       `json:"timestamp"`
	APIURL      string       `json:"api_url"`
	RunsPerPage int          `json:"runs_per_page"`
	Results     []pageResult `json:"results"`
}

func main() {
	flag.Parse()

	fmt.Println("=== gridiron benchmark ===")
	fmt.Printf("API URL:   %s\n", *apiURL)
	fmt.Printf("Runs/page: %d\n", *runs)
	fmt.Printf("Output:    %s\n\n", *output)

	if err := checkAPI(*apiURL); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot reach API at %s: %v\n", *apiURL, err)
		fmt.Fprintf(os.Stderr, "Start the server first: gridiron serve\n")
		os.Exit(1)
	}

	report := benchmarkReport{
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		APIURL:      *apiURL,
		RunsPerPage: *runs,
	}
	client := &http.Client{Timeout: 150 * time.Second}

	for _, t := range targets {
		fmt.Printf("Benchmarking [%s] %s ...\n", t.Label, t.Page)
		pr := pageResult{Label: t.Label, Page: t.Page}
		for i := 1; i <= *runs; i++ {
			fmt.Printf("  Run %d/%d ... ", i, *runs)
			rr := parseOnce(client, parseRequest{Page: t.Page, Params: t.Params, Timeout: 120, MaxAge: *maxAge}, i)
			if rr.Success {
				fmt.Printf("OK  %dms (fetch %dms, parse %dms) %d sections\n", rr.TotalMs, rr.FetchMs, rr.ParseMs, rr.Sections)
			} else {
				fmt.Printf("FAILED: [%s] %s\n", rr.ErrorCode, rr.Error)
			}
			pr.Runs = append(pr.Runs, rr)
		}
		pr.Averages = computeAverages(pr.Runs)
		report.Results = append(report.Results, pr)
		fmt.Println()
	}

	printTable(report.Results)

	data, err := json.MarshalIndent(report, "", "  ")
	if err == nil {
		err = os.WriteFile(*output, data, 0o644)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing JSON output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nDetailed results written to %s\n", *output)
}

func checkAPI(baseURL string) error {
	resp, err := (&http.Client{Timeout: 10 * time.Second}).Get(baseURL + "/api/v1/health")
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func parseOnce(client *http.Client, body parseRequest, run int) runResult {
	rr := runResult{Run: run}

	payload, err := json.Marshal(body)
	if err != nil {
		rr.Error = fmt.Sprintf("marshal error: %v", err)
		return rr
	}
	req, err := http.NewRequest(http.MethodPost, *apiURL+"/api/v1/parse", bytes.NewReader(payload))
	if err != nil {
		rr.Error = fmt.Sprintf("request error: %v", err)
		return rr
	}
	req.Header.Set("Content-Type", "application/json")
	if *apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+*apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		rr.Error = fmt.Sprintf("request failed: %v", err)
		return rr
	}
	defer resp.Body.Close()

	var pr parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		rr.Error = fmt.Sprintf("decode error: %v", err)
		return rr
	}

	rr.Success = pr.Success
	rr.TotalMs = pr.Timing.TotalMs
	rr.FetchMs = pr.Timing.FetchMs
	rr.ParseMs = pr.Timing.ParseMs
	rr.Sections = len(pr.Document)
	rr.Engine = pr.EngineUsed
	rr.CacheHit = pr.CacheStatus == "hit"
	if pr.Error != nil {
		rr.ErrorCode = pr.Error.Code
		rr.Error = pr.Error.Message
	}
	return rr
}

func computeAverages(runs []runResult) *pageAverages {
	var avg pageAverages
	n := 0
	for _, r := range runs {
		if !r.Success {
			continue
		}
		n++
		avg.TotalMs += float64(r.TotalMs)
		avg.FetchMs += float64(r.FetchMs)
		avg.ParseMs += float64(r.ParseMs)
	}
	if n == 0 {
		return nil
	}
	avg.TotalMs /= float64(n)
	avg.FetchMs /= float64(n)
	avg.ParseMs /= float64(n)
	return &avg
}

func printTable(results []pageResult) {
	fmt.Println(strings.Repeat("-", 72))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Page\tAvg Total\tAvg Fetch\tAvg Parse\tEngine\tCache Hits\n")
	for _, r := range results {
		if r.Averages == nil {
			fmt.Fprintf(w, "%s\tFAILED\t-\t-\t-\t-\n", r.Label)
			continue
		}
		hits, engine := 0, ""
		for _, run := range r.Runs {
			if run.CacheHit {
				hits++
			}
			if engine == "" {
				engine = run.Engine
			}
		}
		fmt.Fprintf(w, "%s\t%dms\t%dms\t%dms\t%s\t%d/%d\n",
			r.Label, int64(r.Averages.TotalMs), int64(r.Averages.FetchMs), int64(r.Averages.ParseMs), engine, hits, len(r.Runs))
	}
	w.Flush()
	fmt.Println(strings.Repeat("-", 72))
}
