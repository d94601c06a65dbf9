// Command shadow_compare replays a set of read-only requests against the
// legacy lesson-plan backend and this service, then reports status and
// body differences. Used while cutting traffic over.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"
)

type probe struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type probeFile struct {
	Probes []probe `json:"probes"`
}

type outcome struct {
	Probe          probe
	LegacyStatus   int
	GoStatus       int
	StatusMatch    bool
	BodyMatch      bool
	Err            error
	DurationGo     time.Duration
	DurationLegacy time.Duration
}

// Fields that legitimately differ between the two stacks and must not
// count as a diff.
var volatileFields = map[string]bool{
	"request_id": true,
	"issued_at":  true,
	"created_at": true,
	"timestamp":  true,
}

func main() {
	var (
		goBase     string
		legacyBase string
		probesPath string
		token      string
		timeout    time.Duration
	)

	flag.StringVar(&goBase, "go-base", "http://localhost:8080", "Go API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:8000", "Legacy API base URL")
	flag.StringVar(&probesPath, "probes", filepath.Join("scripts", "shadow_compare", "probes.json"), "Path to JSON probe file")
	flag.StringVar(&token, "token", os.Getenv("LBG_COMPARE_TOKEN"), "Bearer token valid on both stacks")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	probes, err := loadProbes(probesPath)
	if err != nil {
		log.Fatalf("failed to load probes: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	var (
		outcomes []outcome
		breaking int
		minor    int
	)

	for _, p := range probes {
		out := compareProbe(client, goBase, legacyBase, token, p)
		if out.Err != nil || !out.StatusMatch || !out.BodyMatch {
			if p.Critical {
				breaking++
			} else if out.Err == nil {
				minor++
			}
		}
		outcomes = append(outcomes, out)
	}

	printReport(outcomes)

	fmt.Printf("Breaking diffs: %d, Minor diffs: %d\n", breaking, minor)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadProbes(path string) ([]probe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file probeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Probes) == 0 {
		return nil, fmt.Errorf("no probes defined in %s", path)
	}
	return file.Probes, nil
}

func compareProbe(client *http.Client, goBase, legacyBase, token string, p probe) outcome {
	out := outcome{Probe: p}
	goResp, goDur, goErr := performRequest(client, goBase, token, p)
	legacyResp, legacyDur, legacyErr := performRequest(client, legacyBase, token, p)
	out.DurationGo = goDur
	out.DurationLegacy = legacyDur

	if goErr != nil {
		out.Err = fmt.Errorf("go request failed: %w", goErr)
		return out
	}
	if legacyErr != nil {
		out.Err = fmt.Errorf("legacy request failed: %w", legacyErr)
		return out
	}

	defer goResp.Body.Close()
	defer legacyResp.Body.Close()

	out.GoStatus = goResp.StatusCode
	out.LegacyStatus = legacyResp.StatusCode
	out.StatusMatch = out.GoStatus == out.LegacyStatus

	goBody, err := io.ReadAll(goResp.Body)
	if err != nil {
		out.Err = fmt.Errorf("read go body: %w", err)
		return out
	}
	legacyBody, err := io.ReadAll(legacyResp.Body)
	if err != nil {
		out.Err = fmt.Errorf("read legacy body: %w", err)
		return out
	}

	out.BodyMatch = bodiesEqual(goBody, legacyBody)
	return out
}

func performRequest(client *http.Client, base, token string, p probe) (*http.Response, time.Duration, error) {
	if client == nil {
		return nil, 0, errors.New("nil client")
	}
	method := strings.ToUpper(strings.TrimSpace(p.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := p.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	url := strings.TrimRight(base, "/") + path

	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return nil, 0, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	return resp, time.Since(start), nil
}

func bodiesEqual(a, b []byte) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	normalize(&aj)
	normalize(&bj)
	return reflect.DeepEqual(aj, bj)
}

// normalize strips volatile fields and collapses whole-valued floats so
// that 5 and 5.0 compare equal across serializers.
func normalize(v *interface{}) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		for k := range val {
			if volatileFields[k] {
				delete(val, k)
			}
		}
		for k, v2 := range val {
			normalize(&v2)
			val[k] = v2
		}
	case []interface{}:
		for i, v2 := range val {
			normalize(&v2)
			val[i] = v2
		}
	case float64:
		if val == float64(int64(val)) {
			*v = int64(val)
		}
	}
}

func printReport(results []outcome) {
	fmt.Println("Shadow Compare Report")
	fmt.Println("======================")
	for _, res := range results {
		status := "OK"
		if res.Err != nil {
			status = "ERROR"
		} else if !res.StatusMatch || !res.BodyMatch {
			status = "DIFF"
		}
		fmt.Printf("[%s] %s %s\n", status, res.Probe.Method, res.Probe.Path)
		fmt.Printf("  Go Status: %d (%s)\n", res.GoStatus, res.DurationGo)
		fmt.Printf("  Legacy Status: %d (%s)\n", res.LegacyStatus, res.DurationLegacy)
		if res.Err != nil {
			fmt.Printf("  Error: %v\n", res.Err)
		} else {
			fmt.Printf("  Status match: %t | Body match: %t | Critical: %t\n", res.StatusMatch, res.BodyMatch, res.Probe.Critical)
		}
	}
}
