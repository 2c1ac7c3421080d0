// Command harness encodes a message once and replays it through
// internal/harness's channel-condition matrix, printing a PASS/FAIL
// table, and exits non-zero if any case misses an exact match.
package main

import (
	"flag"
	"fmt"
	"os"

	"aethersteg/internal/config"
	"aethersteg/internal/harness"
	"aethersteg/internal/modem"
)

func main() {
	text := flag.String("text", "", "message to send (required)")
	configPath := flag.String("config", "", "optional YAML config overriding wire defaults")
	flag.Parse()

	if *text == "" {
		fmt.Fprintln(os.Stderr, "Usage: harness -text \"message\" [-config file.yml]")
		os.Exit(2)
	}

	var cfg *config.Config
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	params := cfg.ApplyParams(modem.DefaultParams(44100))
	key, iv, err := cfg.KeyIV()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	results := harness.Run(harness.DefaultCases, *text, params, nil, key, iv)

	allPass := true
	for _, r := range results {
		status := "PASS"
		if !r.ExactMatch || r.Err != nil {
			status = "FAIL"
			allPass = false
		}
		errText := ""
		if r.Err != nil {
			errText = fmt.Sprintf("  err=%v", r.Err)
		}
		fmt.Printf("%-4s  %-22s  sim=%.4f  len=%d%s\n", status, r.Case.Name, r.Similarity, r.DecryptedLen, errText)
	}

	if !allPass {
		os.Exit(1)
	}
}
